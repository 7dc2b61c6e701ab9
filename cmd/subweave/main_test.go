package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subweave/internal/srt"
	"subweave/internal/timeline"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	libraryDir := filepath.Join(base, "library")
	if err := os.MkdirAll(libraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library: %v", err)
	}
	content := fmt.Sprintf(
		"log_dir = %q\n\n[library]\nbase_dir = %q\nscan_base_dir = true\n",
		filepath.Join(base, "logs"),
		libraryDir,
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeTrack(t *testing.T, path string, track timeline.Track) {
	t.Helper()
	if err := srt.WriteTrack(path, track); err != nil {
		t.Fatalf("write srt %s: %v", path, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, _, err := runCLI(t, configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(base, "fresh", "config.toml")
	out, _, err = runCLI(t, configPath, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigShow(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	out, _, err := runCLI(t, configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "Bulgarian -> English")
	requireContains(t, out, filepath.Join(base, "library"))
}

func TestNormalizeCommand(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	input := filepath.Join(base, "raw.srt")
	writeTrack(t, input, timeline.Track{
		{Start: 0, End: 2 * time.Second, Text: "Здравей свят"},
		{Start: 5 * time.Second, End: 7 * time.Second, Text: "Как си днес"},
	})

	output := filepath.Join(base, "clean.srt")
	out, _, err := runCLI(t, configPath, "normalize", input, "--out", output)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	requireContains(t, out, "Wrote 2 entries")

	track, err := srt.ReadTrack(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(track) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(track))
	}
}

func TestMergeAndAlignCommands(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	primary := filepath.Join(base, "primary.srt")
	writeTrack(t, primary, timeline.Track{
		{Start: 0, End: 2 * time.Second, Text: "Първи ред"},
		{Start: 20 * time.Second, End: 22 * time.Second, Text: "Последен ред"},
	})
	secondary := filepath.Join(base, "secondary.srt")
	writeTrack(t, secondary, timeline.Track{
		{Start: 8 * time.Second, End: 10 * time.Second, Text: "Среден ред"},
	})

	merged := filepath.Join(base, "merged.srt")
	if _, _, err := runCLI(t, configPath, "merge", primary, secondary, "--out", merged); err != nil {
		t.Fatalf("merge: %v", err)
	}
	track, err := srt.ReadTrack(merged)
	if err != nil {
		t.Fatalf("read merged: %v", err)
	}
	if len(track) != 3 {
		t.Fatalf("expected gap fill to yield 3 entries, got %d", len(track))
	}

	translated := filepath.Join(base, "translated.srt")
	writeTrack(t, translated, timeline.Track{
		{Start: 0, End: 2 * time.Second, Text: "line one"},
		{Start: 8 * time.Second, End: 10 * time.Second, Text: "line two"},
		{Start: 20 * time.Second, End: 22 * time.Second, Text: "line three"},
	})

	woven := filepath.Join(base, "woven.srt")
	out, _, err := runCLI(t, configPath, "align", merged, translated, "--out", woven)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	requireContains(t, out, "Wrote 3 bilingual entries")

	bi, err := srt.ReadBilingual(woven)
	if err != nil {
		t.Fatalf("read bilingual: %v", err)
	}
	if len(bi) != 3 || bi[0].PrimaryText != "Първи ред" || bi[0].SecondaryText != "line one" {
		t.Fatalf("unexpected bilingual track: %+v", bi)
	}
}

func TestAlignCommandReportsMismatch(t *testing.T) {
	base := t.TempDir()
	configPath := writeTestConfig(t, base)

	primary := filepath.Join(base, "primary.srt")
	writeTrack(t, primary, timeline.Track{
		{Start: 0, End: 2 * time.Second, Text: "Един"},
		{Start: 5 * time.Second, End: 7 * time.Second, Text: "Два"},
	})
	secondary := filepath.Join(base, "secondary.srt")
	writeTrack(t, secondary, timeline.Track{
		{Start: 0, End: 2 * time.Second, Text: "one"},
	})

	_, _, err := runCLI(t, configPath, "align", primary, secondary, "--out", filepath.Join(base, "out.srt"))
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}
