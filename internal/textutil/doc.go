// Package textutil provides caption text helpers: comparison normalization,
// visible-character counting, and word-overlap similarity. The normalizer
// and the pass merger use these to compare noisy transcription text across
// Latin and Cyrillic scripts.
package textutil
