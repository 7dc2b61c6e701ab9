// Package queue persists the per-video processing state in SQLite so that
// interrupted runs resume where they left off instead of repeating finished
// stages.
package queue
