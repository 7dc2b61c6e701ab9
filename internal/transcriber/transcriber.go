package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"subweave/internal/config"
	"subweave/internal/fileutil"
	"subweave/internal/language"
)

// Service invokes the whisper CLI once per decoding pass.
type Service struct {
	cfg           config.Whisper
	language      string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service for the given audio language.
func NewService(cfg config.Whisper, audioLanguage string) *Service {
	return &Service{cfg: cfg, language: audioLanguage}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Passes returns the configured decoding passes.
func (s *Service) Passes() []config.Pass {
	return s.cfg.Passes
}

// TranscribePass runs one decoding pass over source and writes the SRT to
// dest. whisper names its output after the source stem inside --output_dir,
// so the file is moved into place afterwards.
func (s *Service) TranscribePass(ctx context.Context, source string, pass config.Pass, dest string) error {
	if source == "" {
		return errors.New("transcribe: source path required")
	}
	outputDir := filepath.Dir(dest)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	if s.cfg.TimeoutMinutes > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutMinutes)*time.Minute)
		defer cancel()
	}

	args := s.buildArgs(source, outputDir, pass)
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return fmt.Errorf("whisper pass %s: %w", pass.Name, err)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	produced := filepath.Join(outputDir, stem+".srt")
	if !fileutil.NonEmptyFile(produced) {
		return fmt.Errorf("whisper pass %s: no output at %s", pass.Name, produced)
	}
	if produced == dest {
		return nil
	}
	if err := fileutil.MoveFile(produced, dest); err != nil {
		return fmt.Errorf("whisper pass %s: move output: %w", pass.Name, err)
	}
	return nil
}

func (s *Service) buildArgs(source, outputDir string, pass config.Pass) []string {
	args := make([]string, 0, 24)
	args = append(args, source,
		"--model", s.cfg.Model,
		"--device", s.cfg.Device,
		"--compute_type", s.cfg.ComputeType,
	)
	if lang := language.ToISO2(s.language); lang != "" {
		args = append(args, "--language", lang)
	}
	args = append(args,
		"--beam_size", strconv.Itoa(pass.BeamSize),
		"--temperature", formatFloat(pass.Temperature),
		"--no_speech_threshold", formatFloat(pass.NoSpeechThreshold),
		"--condition_on_previous_text", pythonBool(pass.ConditionOnText),
		"--output_format", "srt",
		"--output_dir", outputDir,
	)
	return args
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// whisper is a Python CLI and parses booleans with str2bool.
func pythonBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
