package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/config"
	"subweave/internal/fileutil"
	"subweave/internal/logging"
	"subweave/internal/pipeline"
	"subweave/internal/queue"
	"subweave/internal/srt"
	"subweave/internal/testsupport"
	"subweave/internal/timeline"
)

type fakeTranscriber struct {
	passes []config.Pass
	track  timeline.Track
	calls  int
}

func (f *fakeTranscriber) Passes() []config.Pass { return f.passes }

func (f *fakeTranscriber) TranscribePass(ctx context.Context, source string, pass config.Pass, dest string) error {
	f.calls++
	return srt.WriteTrack(dest, f.track)
}

type fakeTranslator struct {
	dropLast bool
	calls    int
}

func (f *fakeTranslator) Translate(ctx context.Context, srcSRT, destSRT string) error {
	f.calls++
	track, err := srt.ReadTrack(srcSRT)
	if err != nil {
		return err
	}
	out := make(timeline.Track, 0, len(track))
	for i, entry := range track {
		entry.Text = fmt.Sprintf("line %d", i+1)
		out = append(out, entry)
	}
	if f.dropLast && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return srt.WriteTrack(destSRT, out)
}

func testTrack() timeline.Track {
	return testsupport.Track("Здравей свят", "Как си днес")
}

func testPipeline(t *testing.T, translator *fakeTranslator, opts ...testsupport.ConfigOption) (*pipeline.Pipeline, *queue.Store, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	if err := os.WriteFile(filepath.Join(cfg.Library.BaseDir, "movie.mkv"), []byte("video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	store := testsupport.MustOpenStore(t, cfg)

	p := pipeline.New(cfg, store, logging.NewNop())
	p.WithServices(
		&fakeTranscriber{passes: cfg.Whisper.Passes, track: testTrack()},
		nil,
		translator,
	)
	return p, store, cfg
}

func TestRunCompletesItemEndToEnd(t *testing.T) {
	translator := &fakeTranslator{}
	p, store, cfg := testPipeline(t, translator)

	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Discovered != 1 || summary.Enqueued != 1 || summary.Completed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Status != queue.StatusCompleted {
		t.Fatalf("unexpected items: %+v", items)
	}

	bilingualPath := filepath.Join(cfg.Library.BaseDir, "movie.bg.srt")
	track, err := srt.ReadBilingual(bilingualPath)
	if err != nil {
		t.Fatalf("read bilingual: %v", err)
	}
	if len(track) != 2 {
		t.Fatalf("expected 2 bilingual entries, got %d", len(track))
	}
	if track[0].PrimaryText != "Здравей свят" || track[0].SecondaryText != "line 1" {
		t.Fatalf("unexpected first entry: %+v", track[0])
	}

	// Intermediate artifacts live next to the video.
	for _, name := range []string{
		"BG_movie.accurate.srt", "BG_movie.balanced.srt", "BG_movie.coverage.srt",
		"BG_movie.srt", "BG_clean_movie.srt", "EN_clean_movie.srt",
	} {
		if !fileutil.NonEmptyFile(filepath.Join(cfg.Library.BaseDir, name)) {
			t.Errorf("missing artifact %s", name)
		}
	}
}

func TestPreflightReportsStubbedBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	cfg.Whisper.VocalIsolation = true
	store := testsupport.MustOpenStore(t, cfg)

	p := pipeline.New(cfg, store, logging.NewNop())
	for _, health := range p.Preflight() {
		if !health.Ready {
			t.Errorf("check %s not ready: %s", health.Name, health.Detail)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	translator := &fakeTranslator{}
	p, _, _ := testPipeline(t, translator)

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Enqueued != 0 || summary.Processed != 0 {
		t.Fatalf("second run should find nothing to do: %+v", summary)
	}
	if translator.calls != 1 {
		t.Fatalf("translator called %d times, want 1", translator.calls)
	}
}

func TestRunRecordsAlignmentMismatch(t *testing.T) {
	translator := &fakeTranslator{dropLast: true}
	p, store, _ := testPipeline(t, translator)

	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("expected 1 failed item, got %+v", summary)
	}

	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Status != queue.StatusFailed {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].ErrorMessage == "" {
		t.Fatal("expected mismatch message on item")
	}
}

func TestProcessItemSkipsExistingArtifacts(t *testing.T) {
	translator := &fakeTranslator{}
	onlyPass := config.Pass{Name: "accurate", Rank: 1, BeamSize: 5}
	p, store, cfg := testPipeline(t, translator, testsupport.WithPasses(onlyPass))

	// Pre-seed all pass artifacts; transcription must not run.
	for _, pass := range cfg.Whisper.Passes {
		path := filepath.Join(cfg.Library.BaseDir, "BG_movie."+pass.Name+".srt")
		testsupport.WriteSRT(t, path, testTrack())
	}

	transcriber := &fakeTranscriber{passes: cfg.Whisper.Passes, track: testTrack()}
	p.WithServices(transcriber, nil, translator)

	item := testsupport.NewItem(t, store, filepath.Join(cfg.Library.BaseDir, "movie.mkv"), "Movie")
	if err := p.ProcessItem(context.Background(), item); err != nil {
		t.Fatalf("ProcessItem returned error: %v", err)
	}
	if transcriber.calls != 0 {
		t.Fatalf("transcriber ran %d times despite existing artifacts", transcriber.calls)
	}
	if item.Status != queue.StatusCompleted {
		t.Fatalf("unexpected status: %s", item.Status)
	}
}
