package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"subweave/internal/srt"
	"subweave/internal/timeline"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteSRT renders the track as SubRip and writes it to path.
func WriteSRT(t testing.TB, path string, track timeline.Track) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := srt.WriteTrack(path, track); err != nil {
		t.Fatalf("write srt %s: %v", path, err)
	}
}

// Track builds a well-spaced subtitle track from the given texts. Each entry
// lasts two seconds with a three second lead between starts.
func Track(texts ...string) timeline.Track {
	track := make(timeline.Track, 0, len(texts))
	for i, text := range texts {
		start := time.Duration(i) * 3 * time.Second
		track = append(track, timeline.Entry{
			Start: start,
			End:   start + 2*time.Second,
			Text:  text,
		})
	}
	return track
}
