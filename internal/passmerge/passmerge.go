package passmerge

import (
	"sort"
	"time"

	"subweave/internal/timeline"
)

// DefaultAcceptance is the fraction of a secondary entry's duration that
// must fall inside a primary-track gap before the entry is accepted.
// Secondary passes are noisier, so entries are never allowed to intrude on
// a trusted primary caption; straddling entries are clipped to the gap.
const DefaultAcceptance = 0.90

// Pass is one independent transcription run at fixed decoding settings.
// Higher Rank is consulted first when gap-fill candidates conflict.
type Pass struct {
	Name  string
	Rank  int
	Track timeline.Track
}

// Merge combines a normalized primary track with normalized secondary
// passes. Primary entries are kept untouched; secondary entries are inserted
// only into coverage gaps under the acceptance rule. A gap no pass can fill
// stays silent — the merger never fabricates captions.
//
// If the primary track is empty, the highest-rank secondary becomes the new
// primary so coverage is never worse than using one pass alone. All inputs
// empty yields an empty track.
func Merge(primary timeline.Track, secondaries []Pass) timeline.Track {
	return MergeWithAcceptance(primary, secondaries, DefaultAcceptance)
}

// MergeWithAcceptance is Merge with an explicit containment threshold in
// (0, 1]. Values outside that range fall back to DefaultAcceptance.
func MergeWithAcceptance(primary timeline.Track, secondaries []Pass, acceptance float64) timeline.Track {
	if acceptance <= 0 || acceptance > 1 {
		acceptance = DefaultAcceptance
	}

	passes := byRank(secondaries)
	for len(primary) == 0 && len(passes) > 0 {
		primary = passes[0].Track
		passes = passes[1:]
	}
	if len(primary) == 0 {
		return timeline.Track{}
	}

	merged := primary.Sorted()
	bounds := combinedBounds(merged, passes)
	var fills timeline.Track
	for _, gap := range merged.Gaps(bounds) {
		fills = append(fills, fillGap(gap, passes, acceptance)...)
	}
	if len(fills) == 0 {
		return merged
	}
	return append(merged, fills...).Sorted()
}

// byRank orders passes highest rank first, keeping declaration order among
// equal ranks, and drops empty tracks.
func byRank(secondaries []Pass) []Pass {
	passes := make([]Pass, 0, len(secondaries))
	for _, p := range secondaries {
		if len(p.Track) > 0 {
			passes = append(passes, p)
		}
	}
	sort.SliceStable(passes, func(i, j int) bool {
		return passes[i].Rank > passes[j].Rank
	})
	return passes
}

func combinedBounds(primary timeline.Track, passes []Pass) timeline.Span {
	bounds, _ := primary.Bounds()
	for _, p := range passes {
		if b, ok := p.Track.Bounds(); ok {
			if b.Start < bounds.Start {
				bounds.Start = b.Start
			}
			if b.End > bounds.End {
				bounds.End = b.End
			}
		}
	}
	return bounds
}

// candidate pairs a clipped gap-fill entry with the rank of the pass that
// produced it, for conflict resolution inside one gap.
type candidate struct {
	entry timeline.Entry
	rank  int
}

// fillGap selects secondary entries for one gap. Candidates must have at
// least the acceptance fraction of their duration inside the gap and are
// clipped to it. Mutually overlapping candidates are resolved by rank, then
// by duration; losing entries are discarded outright — concatenating two
// secondary texts risks fabricating a sentence that was never spoken
// together.
func fillGap(gap timeline.Span, passes []Pass, acceptance float64) timeline.Track {
	var candidates []candidate
	for _, p := range passes {
		for _, entry := range p.Track {
			if !entry.Valid() {
				continue
			}
			inside := overlapDuration(entry, gap)
			if inside <= 0 {
				continue
			}
			if float64(inside) < acceptance*float64(entry.Duration()) {
				continue
			}
			clipped := clip(entry, gap)
			if clipped.Start >= clipped.End {
				continue
			}
			candidates = append(candidates, candidate{entry: clipped, rank: p.Rank})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Higher rank wins; among equals the longer caption wins.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank > candidates[j].rank
		}
		return candidates[i].entry.Duration() > candidates[j].entry.Duration()
	})

	var accepted timeline.Track
	for _, c := range candidates {
		conflict := false
		for _, a := range accepted {
			if c.entry.Overlaps(a) {
				conflict = true
				break
			}
		}
		if !conflict {
			accepted = append(accepted, c.entry)
		}
	}
	return accepted
}

func overlapDuration(entry timeline.Entry, gap timeline.Span) time.Duration {
	start := entry.Start
	if gap.Start > start {
		start = gap.Start
	}
	end := entry.End
	if gap.End < end {
		end = gap.End
	}
	if end <= start {
		return 0
	}
	return end - start
}

func clip(entry timeline.Entry, gap timeline.Span) timeline.Entry {
	if entry.Start < gap.Start {
		entry.Start = gap.Start
	}
	if entry.End > gap.End {
		entry.End = gap.End
	}
	return entry
}
