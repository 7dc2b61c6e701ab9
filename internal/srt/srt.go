package srt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"subweave/internal/timeline"
)

// ParseTimestamp parses an SRT timestamp (HH:MM:SS,mmm). A period before the
// milliseconds is tolerated; some tools emit it in place of the standard
// comma.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(strings.TrimSpace(hms[0]))
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatTimestamp renders a duration as HH:MM:SS,mmm.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	millis := d.Milliseconds()
	hours := millis / 3_600_000
	millis -= hours * 3_600_000
	minutes := millis / 60_000
	millis -= minutes * 60_000
	seconds := millis / 1000
	millis -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// Parse reads SRT content into a raw track. The parser is lenient: blocks
// with missing or unparseable index/timing lines are skipped, since raw
// transcription output is untrusted. No ordering or overlap guarantee is
// made; callers normalize before relying on track invariants.
func Parse(data []byte) timeline.Track {
	var track timeline.Track
	for _, block := range splitBlocks(data) {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			continue
		}
		start, end, ok := parseTimingLine(lines[1])
		if !ok {
			continue
		}
		text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
		if text == "" {
			continue
		}
		track = append(track, timeline.Entry{Start: start, End: end, Text: text})
	}
	return track
}

// Render writes a track as SRT with a dense 1-based display index. The
// index is a presentation artifact derived here, not an identity carried by
// the entries.
func Render(track timeline.Track) []byte {
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
		b.WriteString(strings.TrimSpace(entry.Text))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func splitBlocks(data []byte) []string {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	blocks := strings.Split(content, "\n\n")
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}

func parseTimingLine(line string) (time.Duration, time.Duration, bool) {
	if !strings.Contains(line, "-->") {
		return 0, 0, false
	}
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, false
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
