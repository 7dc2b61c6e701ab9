package srt

import (
	"fmt"
	"os"

	"subweave/internal/bilingual"
	"subweave/internal/timeline"
)

// ReadTrack parses the SRT file at path into a raw track.
func ReadTrack(path string) (timeline.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return Parse(data), nil
}

// WriteTrack renders the track and writes it to path.
func WriteTrack(path string, track timeline.Track) error {
	if err := os.WriteFile(path, Render(track), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// ReadBilingual parses the bilingual SRT file at path.
func ReadBilingual(path string) (bilingual.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	return ParseBilingual(data), nil
}

// WriteBilingual renders the bilingual track and writes it to path.
func WriteBilingual(path string, track bilingual.Track) error {
	if err := os.WriteFile(path, RenderBilingual(track), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}
