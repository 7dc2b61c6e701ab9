// Package normalize turns raw transcription tracks into clean subtitle
// tracks: malformed timing and recognizer spam are dropped, split-off
// fragments are reassembled, overlaps are repaired, and sub-floor entries
// are stretched. The result satisfies the normalized-track invariant the
// merger and aligner depend on.
package normalize
