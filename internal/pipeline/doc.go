// Package pipeline orchestrates the subtitle workflow per queue item:
// transcribe all whisper passes, merge and normalize, translate, and align
// into the bilingual SRT. The run loop scans the library, enqueues new
// videos, and processes actionable items with bounded parallelism under a
// single-instance lock.
package pipeline
