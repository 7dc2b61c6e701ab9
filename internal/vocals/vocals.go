// Package vocals shells out to demucs to isolate the vocal stem of a video's
// audio, giving whisper cleaner input on scores-heavy material.
package vocals

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"subweave/internal/fileutil"
)

const (
	demucsModel = "htdemucs"
	demucsStem  = "vocals"
)

// Service runs demucs vocal separation.
type Service struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a vocal-isolation service around the demucs binary.
func NewService(binary string) *Service {
	if binary == "" {
		binary = "demucs"
	}
	return &Service{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// ExtractVocals separates the vocal stem of source into dest. demucs writes
// into its own directory tree, so the run happens in a temp dir and the stem
// is moved into place. The layout differs across demucs versions; all known
// variants are probed.
func (s *Service) ExtractVocals(ctx context.Context, source, dest string) error {
	if source == "" {
		return errors.New("vocals: source path required")
	}
	tmpDir, err := os.MkdirTemp("", "subweave-demucs-")
	if err != nil {
		return fmt.Errorf("vocals: temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	args := []string{
		"--two-stems", demucsStem,
		"-n", demucsModel,
		"-o", tmpDir,
		source,
	}
	if err := s.run(ctx, s.binary, args...); err != nil {
		return fmt.Errorf("demucs: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	candidates := []string{
		filepath.Join(tmpDir, demucsModel, stem, demucsStem, "vocals.wav"),
		filepath.Join(tmpDir, demucsModel, stem, "vocals.wav"),
		filepath.Join(tmpDir, "separated", demucsModel, stem, "vocals.wav"),
	}
	for _, candidate := range candidates {
		if fileutil.NonEmptyFile(candidate) {
			if err := fileutil.MoveFile(candidate, dest); err != nil {
				return fmt.Errorf("vocals: move stem: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("vocals: demucs produced no stem for %s", filepath.Base(source))
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
