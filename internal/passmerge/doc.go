// Package passmerge combines multiple transcription passes of the same
// audio into one track. The primary pass is trusted and kept verbatim;
// secondary passes only fill its coverage gaps, under a containment
// acceptance rule and rank-based conflict resolution.
package passmerge
