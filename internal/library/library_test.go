package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/config"
	"subweave/internal/library"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanHonorsExtensionsAndExcludes(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "movie.mkv"))
	touch(t, filepath.Join(base, "notes.txt"))
	touch(t, filepath.Join(base, "season1", "episode.mp4"))
	touch(t, filepath.Join(base, "extras", "bonus.mkv"))

	videos, err := library.Scan(config.Library{
		BaseDir:         base,
		VideoExtensions: []string{".mkv", ".mp4"},
		ExcludeFolders:  []string{"extras"},
		Recursive:       true,
		ScanBaseDir:     true,
	})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d: %+v", len(videos), videos)
	}
	if videos[0].Stem != "movie" || videos[1].Stem != "episode" {
		t.Fatalf("unexpected scan order: %+v", videos)
	}
}

func TestScanNonRecursiveSkipsSubdirs(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "movie.mkv"))
	touch(t, filepath.Join(base, "nested", "other.mkv"))

	videos, err := library.Scan(config.Library{
		BaseDir:         base,
		VideoExtensions: []string{".mkv"},
		Recursive:       false,
		ScanBaseDir:     true,
	})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(videos) != 1 || videos[0].Stem != "movie" {
		t.Fatalf("expected only base dir video, got %+v", videos)
	}
}

func TestScanWithoutBaseDirFiles(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "loose.mkv"))
	touch(t, filepath.Join(base, "shows", "pilot.mkv"))

	videos, err := library.Scan(config.Library{
		BaseDir:         base,
		VideoExtensions: []string{".mkv"},
		Recursive:       true,
		ScanBaseDir:     false,
	})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(videos) != 1 || videos[0].Stem != "pilot" {
		t.Fatalf("expected only nested video, got %+v", videos)
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/media/the_great_escape.1963.mkv", "The Great Escape 1963"},
		{"/media/false--start  (2).mp4", "False Start 2"},
		{"", "Unknown Video"},
	}
	for _, tc := range cases {
		if got := library.DeriveTitle(tc.path); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestArtifactNaming(t *testing.T) {
	video := library.NewVideo("/media/films/Zift.2008.mkv")
	art := library.NewArtifacts(video, "bg", "en")

	cases := []struct {
		got  string
		want string
	}{
		{art.PassSRT("accurate"), "/media/films/BG_Zift.2008.accurate.srt"},
		{art.MergedSRT(), "/media/films/BG_Zift.2008.srt"},
		{art.CleanSRT(), "/media/films/BG_clean_Zift.2008.srt"},
		{art.TranslatedSRT(), "/media/films/EN_clean_Zift.2008.srt"},
		{art.BilingualSRT(), "/media/films/Zift.2008.bg.srt"},
		{art.VocalsWAV(), "/media/films/Zift.2008_vocals.wav"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}
