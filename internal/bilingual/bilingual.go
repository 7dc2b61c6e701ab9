package bilingual

import (
	"fmt"
	"strings"
	"time"

	"subweave/internal/timeline"
)

// Entry carries one caption in both languages under the primary track's
// timing. Each language is flattened to a single display line so a bilingual
// block always renders as primary line first, secondary line second. Entries
// are created only by Align and never mutated afterward.
type Entry struct {
	Start         time.Duration
	End           time.Duration
	PrimaryText   string
	SecondaryText string
}

// Track is an ordered bilingual caption sequence.
type Track []Entry

// MismatchError reports unequal entry counts between the two tracks being
// combined. Alignment is strictly ordinal, so a count mismatch means the
// pairing between speech and translation is already lost; a partial zip
// would silently corrupt it.
type MismatchError struct {
	PrimaryCount   int
	SecondaryCount int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("subtitle count mismatch (%d vs %d)", e.PrimaryCount, e.SecondaryCount)
}

// Align zips a primary-language track and a secondary-language track into
// one bilingual track by ordinal position. The secondary track's timing is
// discarded: the source-language transcription carries the trustworthy
// timing, while the translated track's timing was re-estimated by the
// translation service. Output order equals primary order.
func Align(primary, secondary timeline.Track) (Track, error) {
	if len(primary) != len(secondary) {
		return nil, &MismatchError{PrimaryCount: len(primary), SecondaryCount: len(secondary)}
	}
	out := make(Track, 0, len(primary))
	for i := range primary {
		out = append(out, Entry{
			Start:         primary[i].Start,
			End:           primary[i].End,
			PrimaryText:   flatten(primary[i].Text),
			SecondaryText: flatten(secondary[i].Text),
		})
	}
	return out, nil
}

func flatten(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
}
