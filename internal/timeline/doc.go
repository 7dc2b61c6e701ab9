// Package timeline holds the shared subtitle track model: timed caption
// entries, ordering and overlap semantics, and gap queries over a bounded
// range. Every other subtitle component builds on these definitions.
package timeline
