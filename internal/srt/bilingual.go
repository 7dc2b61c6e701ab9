package srt

import (
	"strconv"
	"strings"

	"subweave/internal/bilingual"
)

// RenderBilingual writes a bilingual track as SRT blocks with the
// primary-language line first and the secondary-language line second. This
// is the block shape media servers auto-detect as a single subtitle stream.
func RenderBilingual(track bilingual.Track) []byte {
	var b strings.Builder
	for i, entry := range track {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("\n")
		b.WriteString(FormatTimestamp(entry.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(entry.End))
		b.WriteString("\n")
		b.WriteString(entry.PrimaryText)
		b.WriteString("\n")
		b.WriteString(entry.SecondaryText)
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// ParseBilingual reads bilingual SRT content produced by RenderBilingual.
// The first text line of each block is the primary language; any remaining
// lines are joined as the secondary language. Malformed blocks are skipped.
func ParseBilingual(data []byte) bilingual.Track {
	var track bilingual.Track
	for _, block := range splitBlocks(data) {
		lines := strings.Split(block, "\n")
		if len(lines) < 4 {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			continue
		}
		start, end, ok := parseTimingLine(lines[1])
		if !ok {
			continue
		}
		track = append(track, bilingual.Entry{
			Start:         start,
			End:           end,
			PrimaryText:   strings.TrimSpace(lines[2]),
			SecondaryText: strings.TrimSpace(strings.Join(lines[3:], " ")),
		})
	}
	return track
}
