package timeline

import (
	"sort"
	"strings"
	"time"
)

// Entry is a single timed caption. Text holds one or more display lines
// separated by newlines. Timing is inclusive on both ends with millisecond
// resolution at the SRT boundary.
type Entry struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Duration returns the on-screen time of the entry.
func (e Entry) Duration() time.Duration {
	return e.End - e.Start
}

// Valid reports whether the entry has positive duration and non-empty text.
// Raw transcription output routinely violates both.
func (e Entry) Valid() bool {
	return e.Start < e.End && strings.TrimSpace(e.Text) != ""
}

// Overlaps reports whether two entries share any time.
func (e Entry) Overlaps(other Entry) bool {
	return e.Start < other.End && other.Start < e.End
}

// Lines splits the entry text into display lines.
func (e Entry) Lines() []string {
	return strings.Split(e.Text, "\n")
}

// Span is a half-open view of a time interval used for gap queries.
type Span struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the length of the span.
func (s Span) Duration() time.Duration {
	return s.End - s.Start
}

// Track is an ordered sequence of entries for one language or pass.
// A normalized track is sorted ascending by Start with no overlaps; a raw
// track carries no such guarantee.
type Track []Entry

// Sorted returns a copy of the track ordered by (Start, End) ascending.
// The receiver is not modified.
func (t Track) Sorted() Track {
	out := make(Track, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

// Bounds returns the minimum start and maximum end over all valid entries.
// The second return is false when the track has no valid entries.
func (t Track) Bounds() (Span, bool) {
	found := false
	var bounds Span
	for _, entry := range t {
		if !entry.Valid() {
			continue
		}
		if !found {
			bounds = Span{Start: entry.Start, End: entry.End}
			found = true
			continue
		}
		if entry.Start < bounds.Start {
			bounds.Start = entry.Start
		}
		if entry.End > bounds.End {
			bounds.End = entry.End
		}
	}
	return bounds, found
}

// Gaps returns the ordered maximal intervals inside outer that no entry in
// the track covers. The track must be normalized (sorted, non-overlapping);
// callers pass either the track's own bounds or a wider outer span.
func (t Track) Gaps(outer Span) []Span {
	if outer.Start >= outer.End {
		return nil
	}
	var gaps []Span
	cursor := outer.Start
	for _, entry := range t.Sorted() {
		if entry.End <= cursor || entry.Start >= outer.End {
			continue
		}
		if entry.Start > cursor {
			gaps = append(gaps, Span{Start: cursor, End: entry.Start})
		}
		if entry.End > cursor {
			cursor = entry.End
		}
	}
	if cursor < outer.End {
		gaps = append(gaps, Span{Start: cursor, End: outer.End})
	}
	return gaps
}
