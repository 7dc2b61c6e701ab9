package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subweave/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subweave.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCustomPathAppliesDefaultsAndNormalization(t *testing.T) {
	library := t.TempDir()
	path := writeConfig(t, `
[library]
base_dir = "`+library+`"
video_extensions = ["MKV", "mp4"]

[languages]
primary = "Bulgarian"
secondary = "EN"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}
	if cfg.Library.BaseDir != library {
		t.Fatalf("unexpected base dir: %q", cfg.Library.BaseDir)
	}
	if got := cfg.Library.VideoExtensions; len(got) != 2 || got[0] != ".mkv" || got[1] != ".mp4" {
		t.Fatalf("extensions not canonicalized: %v", got)
	}
	if cfg.Languages.Primary != "bg" || cfg.Languages.Secondary != "en" {
		t.Fatalf("languages not normalized: %q/%q", cfg.Languages.Primary, cfg.Languages.Secondary)
	}
	if cfg.Whisper.Model != config.Default().Whisper.Model {
		t.Fatalf("unexpected whisper model: %q", cfg.Whisper.Model)
	}
	if len(cfg.Whisper.Passes) != 3 {
		t.Fatalf("expected default passes, got %d", len(cfg.Whisper.Passes))
	}
	if cfg.Cleanup.GapAcceptance != 0.90 {
		t.Fatalf("unexpected gap acceptance: %v", cfg.Cleanup.GapAcceptance)
	}
	if cfg.Translate.ServiceURL == "" {
		t.Fatal("expected default translate service URL")
	}
}

func TestLoadExpandsTildePaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := writeConfig(t, `
[library]
base_dir = "~/videos"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Library.BaseDir != filepath.Join(tempHome, "videos") {
		t.Fatalf("tilde not expanded: %q", cfg.Library.BaseDir)
	}
	if cfg.LogDir != filepath.Join(tempHome, ".local", "share", "subweave", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.LogDir)
	}
	if cfg.QueueDBPath() != filepath.Join(cfg.LogDir, "queue.db") {
		t.Fatalf("unexpected queue db path: %q", cfg.QueueDBPath())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.LogDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadRequiresBaseDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	_, _, exists, err := config.Load("")
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if err == nil || !strings.Contains(err.Error(), "library.base_dir") {
		t.Fatalf("expected base_dir error, got %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	library := t.TempDir()
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "same languages",
			body: "[languages]\nprimary = \"en\"\nsecondary = \"en\"\n",
			want: "must differ",
		},
		{
			name: "unknown language",
			body: "[languages]\nprimary = \"klingon\"\n",
			want: "recognized",
		},
		{
			name: "duplicate pass name",
			body: "[[whisper.passes]]\nname = \"a\"\nrank = 1\nbeam_size = 1\n[[whisper.passes]]\nname = \"a\"\nrank = 2\nbeam_size = 1\n",
			want: "duplicate pass name",
		},
		{
			name: "duplicate rank",
			body: "[[whisper.passes]]\nname = \"a\"\nrank = 1\nbeam_size = 1\n[[whisper.passes]]\nname = \"b\"\nrank = 1\nbeam_size = 1\n",
			want: "duplicate rank",
		},
		{
			name: "bad acceptance",
			body: "[cleanup]\ngap_acceptance = 1.5\n",
			want: "gap_acceptance",
		},
		{
			name: "bad workers",
			body: "[workflow]\nworkers = 0\n",
			want: "workers",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, "[library]\nbase_dir = \""+library+"\"\n"+tc.body)
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[library]") {
		t.Fatal("sample missing library section")
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error for existing file")
	}
}
