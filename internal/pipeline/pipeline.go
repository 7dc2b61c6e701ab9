package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"subweave/internal/config"
	"subweave/internal/library"
	"subweave/internal/logging"
	"subweave/internal/normalize"
	"subweave/internal/queue"
	"subweave/internal/stage"
	"subweave/internal/transcriber"
	"subweave/internal/translate"
	"subweave/internal/vocals"
)

// Transcriber runs one whisper decoding pass.
type Transcriber interface {
	Passes() []config.Pass
	TranscribePass(ctx context.Context, source string, pass config.Pass, dest string) error
}

// VocalIsolator produces the isolated-vocals WAV for a video.
type VocalIsolator interface {
	ExtractVocals(ctx context.Context, source, dest string) error
}

// Translator turns the cleaned primary SRT into the secondary language.
type Translator interface {
	Translate(ctx context.Context, srcSRT, destSRT string) error
}

// Pipeline moves queue items through transcription, merging, translation,
// and bilingual alignment.
type Pipeline struct {
	cfg         *config.Config
	store       *queue.Store
	logger      *slog.Logger
	transcriber Transcriber
	vocals      VocalIsolator
	translator  Translator
}

// New wires a pipeline against the real external services.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Pipeline {
	logger = logging.NewComponentLogger(logger, "pipeline")
	return &Pipeline{
		cfg:         cfg,
		store:       store,
		logger:      logger,
		transcriber: transcriber.NewService(cfg.Whisper, cfg.Languages.Primary),
		vocals:      vocals.NewService(cfg.Whisper.DemucsBinary),
		translator:  translate.NewService(cfg.Translate, cfg.Languages.Secondary),
	}
}

// WithServices overrides the external services (for testing).
func (p *Pipeline) WithServices(t Transcriber, v VocalIsolator, tr Translator) {
	if t != nil {
		p.transcriber = t
	}
	if v != nil {
		p.vocals = v
	}
	if tr != nil {
		p.translator = tr
	}
}

// stageStep binds a handler to its queue transition.
type stageStep struct {
	name       string
	processing queue.Status
	done       queue.Status
	handler    stage.Handler
}

func (p *Pipeline) steps() []stageStep {
	return []stageStep{
		{"transcribe", queue.StatusTranscribing, queue.StatusTranscribed, &transcribeStage{baseStage: baseStage{pipeline: p}}},
		{"merge", queue.StatusMerging, queue.StatusMerged, &mergeStage{baseStage: baseStage{pipeline: p}}},
		{"translate", queue.StatusTranslating, queue.StatusTranslated, &translateStage{baseStage: baseStage{pipeline: p}}},
		{"align", queue.StatusAligning, queue.StatusCompleted, &alignStage{baseStage: baseStage{pipeline: p}}},
	}
}

// stepFor returns the next step for the item's current status, or nil when
// the item needs no further work.
func (p *Pipeline) stepFor(status queue.Status) *stageStep {
	var entry queue.Status
	steps := p.steps()
	for i := range steps {
		if i == 0 {
			entry = queue.StatusPending
		} else {
			entry = steps[i-1].done
		}
		if status == entry {
			return &steps[i]
		}
	}
	return nil
}

// ProcessItem drives one item from its current status to completed, failed,
// or cancellation.
func (p *Pipeline) ProcessItem(ctx context.Context, item *queue.Item) error {
	started := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := p.stepFor(item.Status)
		if step == nil {
			break
		}
		err := stage.Run(ctx, stage.Options{
			Logger:     p.logger,
			Store:      p.store,
			Handler:    step.handler,
			StageName:  step.name,
			Processing: step.processing,
			Done:       step.done,
			Item:       item,
		})
		if err != nil {
			return fmt.Errorf("item %d %s: %w", item.ID, step.name, err)
		}
	}
	if item.Status == queue.StatusCompleted {
		p.logger.Info("item completed",
			logging.Int64(logging.FieldItemID, item.ID),
			logging.String(logging.FieldSource, item.SourcePath),
			logging.Duration("elapsed", time.Since(started).Round(time.Second)),
		)
	}
	return nil
}

// artifacts derives the artifact paths for a queue item.
func (p *Pipeline) artifacts(item *queue.Item) library.Artifacts {
	video := library.NewVideo(item.SourcePath)
	return library.NewArtifacts(video, p.cfg.Languages.Primary, p.cfg.Languages.Secondary)
}

// normalizeConfig maps the cleanup thresholds onto the normalizer.
func (p *Pipeline) normalizeConfig() normalize.Config {
	c := p.cfg.Cleanup
	return normalize.Config{
		MinDuration:   time.Duration(c.MinDurationMs) * time.Millisecond,
		MinChars:      c.MinChars,
		MergeGap:      time.Duration(c.MergeGapMs) * time.Millisecond,
		FragmentChars: c.FragmentChars,
		Floor:         time.Duration(c.FloorMs) * time.Millisecond,
	}
}
