package normalize

import (
	"time"

	"subweave/internal/textutil"
	"subweave/internal/timeline"
)

// Config holds the normalizer thresholds. All values are exposed through the
// application config; the defaults below are a documented contract surface.
type Config struct {
	// MinDuration and MinChars gate the noise drop: an entry is discarded
	// only when it is below both. A short blip with real text, or a long
	// cue with a single character, survives.
	MinDuration time.Duration
	MinChars    int
	// MergeGap is the largest silence between adjacent entries still
	// eligible for fragment or duplicate merging.
	MergeGap time.Duration
	// FragmentChars is the visible-character count under which an entry is
	// treated as a split-off fragment of a longer spoken line.
	FragmentChars int
	// Floor is the hard minimum display duration. Entries below it are
	// stretched forward, never past the next entry's start minus one
	// millisecond.
	Floor time.Duration
}

// DefaultConfig returns the normalizer defaults.
func DefaultConfig() Config {
	return Config{
		MinDuration:   200 * time.Millisecond,
		MinChars:      2,
		MergeGap:      300 * time.Millisecond,
		FragmentChars: 10,
		Floor:         400 * time.Millisecond,
	}
}

// Normalize turns one raw transcription track into a clean track: sorted,
// non-overlapping, free of malformed timing, noise blips, and recognizer
// spam, with adjacent fragments reassembled. It is a pure function; the
// input track is never modified. An empty result is not an error — it means
// there is nothing to merge downstream.
//
// The passes run until the track stops changing: the floor stretch can
// narrow a gap back under MergeGap and a merge can produce a new fragment
// or noise candidate, so a single sweep does not always normalize to
// itself. Every change either removes an entry or extends one toward a
// fixed bound, so the loop terminates.
func Normalize(raw timeline.Track, cfg Config) timeline.Track {
	entries := normalizePass(raw, cfg)
	for {
		next := normalizePass(entries, cfg)
		if tracksEqual(next, entries) {
			return next
		}
		entries = next
	}
}

func normalizePass(raw timeline.Track, cfg Config) timeline.Track {
	entries := make(timeline.Track, 0, len(raw))
	for _, entry := range raw.Sorted() {
		if !entry.Valid() {
			continue
		}
		if IsNoiseText(entry.Text) {
			continue
		}
		if entry.Duration() < cfg.MinDuration && textutil.LetterCount(entry.Text) < cfg.MinChars {
			continue
		}
		entries = append(entries, entry)
	}

	entries = mergeAdjacent(entries, cfg)
	entries = resolveOverlaps(entries)
	stretchToFloor(entries, cfg.Floor)
	return entries
}

func tracksEqual(a, b timeline.Track) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// duplicateOverlap is the shared-word ratio at which two adjacent captions
// count as the same line repeated. High enough that long neighbors sharing
// common words stay separate.
const duplicateOverlap = 0.9

// mergeAdjacent reassembles sentences split across false segment boundaries
// and collapses near-duplicate repeats. Both rules require the inter-entry
// gap to be within MergeGap.
func mergeAdjacent(entries timeline.Track, cfg Config) timeline.Track {
	if len(entries) == 0 {
		return entries
	}
	out := make(timeline.Track, 0, len(entries))
	for _, entry := range entries {
		if len(out) == 0 {
			out = append(out, entry)
			continue
		}
		prev := &out[len(out)-1]
		gap := entry.Start - prev.End
		if gap <= cfg.MergeGap {
			if isNearDuplicate(prev.Text, entry.Text) {
				// The recognizer repeated itself; keep the fuller variant.
				if textutil.LetterCount(entry.Text) > textutil.LetterCount(prev.Text) {
					prev.Text = entry.Text
				}
				if entry.End > prev.End {
					prev.End = entry.End
				}
				continue
			}
			if isFragment(prev.Text, cfg) && isFragment(entry.Text, cfg) {
				prev.Text = prev.Text + " " + entry.Text
				if entry.End > prev.End {
					prev.End = entry.End
				}
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}

func isFragment(text string, cfg Config) bool {
	return textutil.LetterCount(text) < cfg.FragmentChars
}

// isNearDuplicate reports whether two captions carry the same line, exactly
// or with small recognizer variations ("Къде си" / "Къде си сега").
func isNearDuplicate(a, b string) bool {
	na, nb := textutil.Normalize(a), textutil.Normalize(b)
	if na == nb {
		return true
	}
	return textutil.WordOverlap(na, nb) >= duplicateOverlap
}

// resolveOverlaps clamps each entry's end to the next entry's start. An
// entry clamped to zero duration was fully subsumed and is dropped.
func resolveOverlaps(entries timeline.Track) timeline.Track {
	out := entries[:0]
	for _, entry := range entries {
		for len(out) > 0 {
			prev := &out[len(out)-1]
			if entry.Start >= prev.End {
				break
			}
			prev.End = entry.Start
			if prev.End > prev.Start {
				break
			}
			out = out[:len(out)-1]
		}
		out = append(out, entry)
	}
	return out
}

// stretchToFloor extends sub-floor entries forward. The stretch never
// crosses the next entry's start minus one millisecond and never shrinks an
// entry, so already-clamped neighbors are left alone.
func stretchToFloor(entries timeline.Track, floor time.Duration) {
	for i := range entries {
		if entries[i].Duration() >= floor {
			continue
		}
		target := entries[i].Start + floor
		if i+1 < len(entries) {
			limit := entries[i+1].Start - time.Millisecond
			if target > limit {
				target = limit
			}
		}
		if target > entries[i].End {
			entries[i].End = target
		}
	}
}
