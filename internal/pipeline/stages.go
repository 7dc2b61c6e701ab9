package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"subweave/internal/bilingual"
	"subweave/internal/fileutil"
	"subweave/internal/logging"
	"subweave/internal/normalize"
	"subweave/internal/passmerge"
	"subweave/internal/queue"
	"subweave/internal/services"
	"subweave/internal/srt"
)

// baseStage carries the logger handed down by the execution helper.
type baseStage struct {
	pipeline *Pipeline
	logger   *slog.Logger
}

func (b *baseStage) SetLogger(logger *slog.Logger) {
	b.logger = logger
}

func (b *baseStage) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return logging.NewNop()
}

// transcribeStage runs every configured whisper pass, optionally on the
// demucs-isolated vocal stem.
type transcribeStage struct {
	baseStage
}

func (s *transcribeStage) Prepare(ctx context.Context, item *queue.Item) error {
	if !fileutil.NonEmptyFile(item.SourcePath) {
		return services.Wrap(services.ErrValidation, "transcribe", "prepare",
			fmt.Sprintf("source video missing: %s", item.SourcePath), nil)
	}
	return nil
}

func (s *transcribeStage) Execute(ctx context.Context, item *queue.Item) error {
	p := s.pipeline
	art := p.artifacts(item)

	pending := make([]string, 0, len(p.transcriber.Passes()))
	for _, pass := range p.transcriber.Passes() {
		if !fileutil.NonEmptyFile(art.PassSRT(pass.Name)) {
			pending = append(pending, pass.Name)
		}
	}
	if len(pending) == 0 {
		s.log().Info("all pass transcripts present, skipping")
		return nil
	}

	audioSource := item.SourcePath
	if p.cfg.Whisper.VocalIsolation {
		vocalsWAV := art.VocalsWAV()
		if !fileutil.NonEmptyFile(vocalsWAV) {
			s.log().Info("isolating vocals", logging.String(logging.FieldArtifact, vocalsWAV))
			if err := p.vocals.ExtractVocals(ctx, item.SourcePath, vocalsWAV); err != nil {
				return services.Wrap(services.ErrExternalTool, "transcribe", "isolate vocals", "", err)
			}
		}
		audioSource = vocalsWAV
	}

	for _, pass := range p.transcriber.Passes() {
		dest := art.PassSRT(pass.Name)
		if fileutil.NonEmptyFile(dest) {
			s.log().Info("pass transcript exists, skipping", logging.String(logging.FieldPass, pass.Name))
			continue
		}
		s.log().Info("transcribing", logging.String(logging.FieldPass, pass.Name))
		if err := p.transcriber.TranscribePass(ctx, audioSource, pass, dest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return services.Wrap(services.ErrTimeout, "transcribe", pass.Name, "", err)
			}
			return services.Wrap(services.ErrExternalTool, "transcribe", pass.Name, "", err)
		}
	}

	if p.cfg.Whisper.VocalIsolation && !p.cfg.Whisper.KeepVocalsWAV {
		if err := os.Remove(art.VocalsWAV()); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log().Warn("could not remove vocals wav", logging.Error(err))
		}
	}
	return nil
}

// mergeStage combines the pass transcripts and normalizes the result into
// the cleaned track the translator consumes.
type mergeStage struct {
	baseStage
}

func (s *mergeStage) Prepare(ctx context.Context, item *queue.Item) error {
	p := s.pipeline
	art := p.artifacts(item)
	for _, pass := range p.cfg.Whisper.Passes {
		if fileutil.NonEmptyFile(art.PassSRT(pass.Name)) {
			return nil
		}
	}
	return services.Wrap(services.ErrValidation, "merge", "prepare",
		"no pass transcripts found to merge", nil)
}

func (s *mergeStage) Execute(ctx context.Context, item *queue.Item) error {
	p := s.pipeline
	art := p.artifacts(item)
	if fileutil.NonEmptyFile(art.CleanSRT()) {
		s.log().Info("cleaned track exists, skipping")
		return nil
	}

	normCfg := p.normalizeConfig()
	passes := make([]passmerge.Pass, 0, len(p.cfg.Whisper.Passes))
	for _, pass := range p.cfg.Whisper.Passes {
		path := art.PassSRT(pass.Name)
		if !fileutil.NonEmptyFile(path) {
			s.log().Warn("pass transcript missing, merging without it",
				logging.String(logging.FieldPass, pass.Name))
			continue
		}
		track, err := srt.ReadTrack(path)
		if err != nil {
			return services.Wrap(services.ErrValidation, "merge", "read "+pass.Name, "", err)
		}
		passes = append(passes, passmerge.Pass{
			Name:  pass.Name,
			Rank:  pass.Rank,
			Track: normalize.Normalize(track, normCfg),
		})
	}

	// With a nil primary the merger promotes the highest-rank pass to the
	// base and fills its gaps from the rest.
	merged := passmerge.MergeWithAcceptance(nil, passes, p.cfg.Cleanup.GapAcceptance)
	if err := srt.WriteTrack(art.MergedSRT(), merged); err != nil {
		return services.Wrap(services.ErrTransient, "merge", "write merged", "", err)
	}

	// Gap fills can abut primary entries; a second normalize settles seams.
	cleaned := normalize.Normalize(merged, normCfg)
	if err := srt.WriteTrack(art.CleanSRT(), cleaned); err != nil {
		return services.Wrap(services.ErrTransient, "merge", "write cleaned", "", err)
	}
	s.log().Info("merged transcripts",
		logging.Int("entries", len(cleaned)),
		logging.String(logging.FieldArtifact, art.CleanSRT()),
	)
	return nil
}

// translateStage produces the secondary-language SRT via the browser service.
type translateStage struct {
	baseStage
}

func (s *translateStage) Prepare(ctx context.Context, item *queue.Item) error {
	art := s.pipeline.artifacts(item)
	if !fileutil.NonEmptyFile(art.CleanSRT()) {
		return services.Wrap(services.ErrValidation, "translate", "prepare",
			"cleaned track missing", nil)
	}
	return nil
}

func (s *translateStage) Execute(ctx context.Context, item *queue.Item) error {
	p := s.pipeline
	art := p.artifacts(item)
	if fileutil.NonEmptyFile(art.TranslatedSRT()) {
		s.log().Info("translated track exists, skipping")
		return nil
	}
	if err := p.translator.Translate(ctx, art.CleanSRT(), art.TranslatedSRT()); err != nil {
		return services.Wrap(services.ErrExternalTool, "translate", "browser", "", err)
	}
	s.log().Info("translated", logging.String(logging.FieldArtifact, art.TranslatedSRT()))
	return nil
}

// alignStage zips the cleaned and translated tracks into the bilingual SRT.
type alignStage struct {
	baseStage
}

func (s *alignStage) Prepare(ctx context.Context, item *queue.Item) error {
	art := s.pipeline.artifacts(item)
	if !fileutil.NonEmptyFile(art.CleanSRT()) || !fileutil.NonEmptyFile(art.TranslatedSRT()) {
		return services.Wrap(services.ErrValidation, "align", "prepare",
			"cleaned or translated track missing", nil)
	}
	return nil
}

func (s *alignStage) Execute(ctx context.Context, item *queue.Item) error {
	p := s.pipeline
	art := p.artifacts(item)
	if fileutil.NonEmptyFile(art.BilingualSRT()) {
		s.log().Info("bilingual track exists, skipping")
		return nil
	}

	primary, err := srt.ReadTrack(art.CleanSRT())
	if err != nil {
		return services.Wrap(services.ErrValidation, "align", "read primary", "", err)
	}
	secondary, err := srt.ReadTrack(art.TranslatedSRT())
	if err != nil {
		return services.Wrap(services.ErrValidation, "align", "read secondary", "", err)
	}

	track, err := bilingual.Align(primary, secondary)
	if err != nil {
		var mismatch *bilingual.MismatchError
		if errors.As(err, &mismatch) {
			return services.Wrap(services.ErrValidation, "align", "zip",
				fmt.Sprintf("entry counts differ: primary %d, secondary %d",
					mismatch.PrimaryCount, mismatch.SecondaryCount), err)
		}
		return services.Wrap(services.ErrValidation, "align", "zip", "", err)
	}

	if err := srt.WriteBilingual(art.BilingualSRT(), track); err != nil {
		return services.Wrap(services.ErrTransient, "align", "write bilingual", "", err)
	}
	s.log().Info("aligned",
		logging.Int("entries", len(track)),
		logging.String(logging.FieldArtifact, art.BilingualSRT()),
	)
	return nil
}
