package vocals_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subweave/internal/vocals"
)

func TestExtractVocalsMovesStem(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dest := filepath.Join(dir, "movie_vocals.wav")

	svc := vocals.NewService("demucs")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name != "demucs" {
			t.Fatalf("unexpected binary: %q", name)
		}
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "--two-stems vocals") || !strings.Contains(joined, "-n htdemucs") {
			t.Fatalf("unexpected args: %s", joined)
		}
		// -o dir follows "-o"
		var outDir string
		for i, a := range args {
			if a == "-o" && i+1 < len(args) {
				outDir = args[i+1]
			}
		}
		if outDir == "" {
			t.Fatal("missing -o argument")
		}
		stemPath := filepath.Join(outDir, "htdemucs", "movie", "vocals.wav")
		if err := os.MkdirAll(filepath.Dir(stemPath), 0o755); err != nil {
			return err
		}
		return os.WriteFile(stemPath, []byte("wav"), 0o644)
	})

	if err := svc.ExtractVocals(context.Background(), source, dest); err != nil {
		t.Fatalf("ExtractVocals returned error: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("expected stem at dest: %v", err)
	}
}

func TestExtractVocalsFailsWithoutStem(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	svc := vocals.NewService("")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return nil
	})

	err := svc.ExtractVocals(context.Background(), source, filepath.Join(dir, "out.wav"))
	if err == nil || !strings.Contains(err.Error(), "no stem") {
		t.Fatalf("expected no-stem error, got %v", err)
	}
}

func TestExtractVocalsPropagatesError(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	boom := errors.New("cuda out of memory")
	svc := vocals.NewService("demucs")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return boom
	})

	if err := svc.ExtractVocals(context.Background(), source, filepath.Join(dir, "out.wav")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
