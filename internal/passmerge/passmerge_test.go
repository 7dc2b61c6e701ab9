package passmerge

import (
	"testing"
	"time"

	"subweave/internal/timeline"
)

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func checkInvariant(t *testing.T, track timeline.Track) {
	t.Helper()
	for i := 0; i < len(track); i++ {
		if track[i].Start >= track[i].End {
			t.Fatalf("entry %d has non-positive duration: %+v", i, track[i])
		}
		if i > 0 && track[i-1].End > track[i].Start {
			t.Fatalf("entries %d and %d overlap: %+v / %+v", i-1, i, track[i-1], track[i])
		}
	}
}

func primaryTrack() timeline.Track {
	return timeline.Track{
		{Start: ms(0), End: ms(2000), Text: "първа базова реплика"},
		{Start: ms(5000), End: ms(7000), Text: "втора базова реплика"},
	}
}

func TestMergePrefersHigherRankInGap(t *testing.T) {
	balanced := Pass{Name: "balanced", Rank: 2, Track: timeline.Track{
		{Start: ms(2500), End: ms(4800), Text: "от балансирания проход"},
	}}
	coverage := Pass{Name: "coverage", Rank: 1, Track: timeline.Track{
		{Start: ms(2400), End: ms(4900), Text: "от покривния проход"},
	}}

	got := Merge(primaryTrack(), []Pass{balanced, coverage})
	checkInvariant(t, got)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %+v", got)
	}
	fill := got[1]
	if fill.Start != ms(2500) || fill.End != ms(4800) || fill.Text != "от балансирания проход" {
		t.Fatalf("gap fill = %+v, want the higher-rank [2500,4800] entry", fill)
	}
}

func TestMergeKeepsPrimaryUnchanged(t *testing.T) {
	primary := primaryTrack()
	secondary := Pass{Name: "balanced", Rank: 2, Track: timeline.Track{
		{Start: ms(1000), End: ms(2600), Text: "застъпва базова реплика"},
		{Start: ms(2500), End: ms(4800), Text: "чисто запълване"},
	}}
	got := Merge(primary, []Pass{secondary})
	checkInvariant(t, got)
	for _, want := range primary {
		found := false
		for _, entry := range got {
			if entry == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("primary entry %+v missing or modified in %+v", want, got)
		}
	}
	for _, entry := range got {
		for _, p := range primary {
			if entry != p && entry.Overlaps(p) {
				t.Fatalf("fill %+v overlaps primary %+v", entry, p)
			}
		}
	}
}

func TestMergeClipsStraddlingEntry(t *testing.T) {
	// 2000..5000 gap; candidate [1900,4800] has 2800/2900 ≈ 96.6% inside.
	secondary := Pass{Name: "balanced", Rank: 2, Track: timeline.Track{
		{Start: ms(1900), End: ms(4800), Text: "клипната реплика"},
	}}
	got := Merge(primaryTrack(), []Pass{secondary})
	checkInvariant(t, got)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %+v", got)
	}
	if got[1].Start != ms(2000) || got[1].End != ms(4800) {
		t.Fatalf("fill = %+v, want clipped to [2000,4800]", got[1])
	}
}

func TestMergeRejectsMostlyOutsideEntry(t *testing.T) {
	// [500,4000] has 2000/3500 ≈ 57% inside the 2000..5000 gap.
	secondary := Pass{Name: "balanced", Rank: 2, Track: timeline.Track{
		{Start: ms(500), End: ms(4000), Text: "твърде навън"},
	}}
	got := Merge(primaryTrack(), []Pass{secondary})
	if len(got) != 2 {
		t.Fatalf("expected straddler to be rejected, got %+v", got)
	}
}

func TestMergeSameRankKeepsLonger(t *testing.T) {
	secondary := Pass{Name: "balanced", Rank: 2, Track: timeline.Track{
		{Start: ms(2600), End: ms(3400), Text: "къса"},
		{Start: ms(2500), End: ms(4800), Text: "дълга"},
	}}
	got := Merge(primaryTrack(), []Pass{secondary})
	checkInvariant(t, got)
	if len(got) != 3 || got[1].Text != "дълга" {
		t.Fatalf("expected longer same-rank entry to win, got %+v", got)
	}
}

func TestMergeAcceptsDisjointFillsInOneGap(t *testing.T) {
	secondary := Pass{Name: "balanced", Rank: 2, Track: timeline.Track{
		{Start: ms(2200), End: ms(3000), Text: "първо запълване"},
		{Start: ms(3500), End: ms(4500), Text: "второ запълване"},
	}}
	got := Merge(primaryTrack(), []Pass{secondary})
	checkInvariant(t, got)
	if len(got) != 4 {
		t.Fatalf("expected both disjoint fills accepted, got %+v", got)
	}
}

func TestMergeExtendsBeyondPrimaryBounds(t *testing.T) {
	// Secondary coverage after the last primary entry is a gap too.
	secondary := Pass{Name: "coverage", Rank: 1, Track: timeline.Track{
		{Start: ms(8000), End: ms(9000), Text: "след края на базовата"},
	}}
	got := Merge(primaryTrack(), []Pass{secondary})
	checkInvariant(t, got)
	if len(got) != 3 || got[2].Start != ms(8000) {
		t.Fatalf("expected trailing fill, got %+v", got)
	}
}

func TestMergeEmptyPrimaryFallsBack(t *testing.T) {
	balanced := Pass{Name: "balanced", Rank: 2, Track: timeline.Track{
		{Start: ms(0), End: ms(1000), Text: "нова базова"},
	}}
	coverage := Pass{Name: "coverage", Rank: 1, Track: timeline.Track{
		{Start: ms(2000), End: ms(3000), Text: "запълваща"},
	}}
	got := Merge(nil, []Pass{coverage, balanced})
	checkInvariant(t, got)
	if len(got) != 2 {
		t.Fatalf("expected fallback primary plus fill, got %+v", got)
	}
	if got[0].Text != "нова базова" || got[1].Text != "запълваща" {
		t.Fatalf("unexpected order or content: %+v", got)
	}
}

func TestMergeAllEmpty(t *testing.T) {
	got := Merge(nil, []Pass{{Name: "balanced", Rank: 2}, {Name: "coverage", Rank: 1}})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestMergeNoSecondariesLeavesGapsSilent(t *testing.T) {
	got := Merge(primaryTrack(), nil)
	if len(got) != 2 {
		t.Fatalf("expected primary unchanged, got %+v", got)
	}
}
