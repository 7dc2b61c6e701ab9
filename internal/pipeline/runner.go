package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"subweave/internal/library"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/services"
)

// RunSummary reports what one pipeline run did.
type RunSummary struct {
	Discovered int
	Enqueued   int
	Processed  int
	Completed  int
	Failed     int
}

// Run performs one full pass over the library: scan, enqueue new videos,
// roll back interrupted items, and process everything actionable with the
// configured worker count. Item failures are recorded on the queue and do
// not stop the run; the first store or lock error does.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary

	lock := flock.New(p.cfg.LockFilePath())
	ok, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return summary, errors.New("another subweave run is already active")
	}
	defer lock.Unlock()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("run started", logging.String("library", p.cfg.Library.BaseDir))

	videos, err := library.Scan(p.cfg.Library)
	if err != nil {
		return summary, err
	}
	summary.Discovered = len(videos)

	for _, video := range videos {
		if _, err := p.store.GetBySource(ctx, video.Path); err == nil {
			continue
		} else if !errors.Is(err, queue.ErrNotFound) {
			return summary, err
		}
		if _, err := p.store.NewItem(ctx, video.Path, video.Title); err != nil {
			return summary, fmt.Errorf("enqueue %s: %w", video.Path, err)
		}
		summary.Enqueued++
	}

	if reset, err := p.store.ResetStuck(ctx); err != nil {
		return summary, fmt.Errorf("reset interrupted items: %w", err)
	} else if reset > 0 {
		logger.Info("rolled back interrupted items", logging.Int64("count", reset))
	}

	items, err := p.store.ListByStatus(ctx,
		queue.StatusPending, queue.StatusTranscribed, queue.StatusMerged, queue.StatusTranslated)
	if err != nil {
		return summary, err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.cfg.Workflow.Workers)
	results := make([]error, len(items))
	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			results[i] = p.ProcessItem(groupCtx, item)
			// Item failures are isolated; only cancellation stops the group.
			if errors.Is(results[i], context.Canceled) {
				return results[i]
			}
			return nil
		})
	}
	groupErr := group.Wait()

	for i, item := range items {
		summary.Processed++
		switch {
		case results[i] == nil && item.Status == queue.StatusCompleted:
			summary.Completed++
		case results[i] != nil && !errors.Is(results[i], context.Canceled):
			summary.Failed++
			logger.Error("item failed",
				logging.Int64(logging.FieldItemID, item.ID),
				logging.Error(results[i]),
			)
		}
	}

	logger.Info("run finished",
		logging.Int("discovered", summary.Discovered),
		logging.Int("enqueued", summary.Enqueued),
		logging.Int("processed", summary.Processed),
		logging.Int("completed", summary.Completed),
		logging.Int("failed", summary.Failed),
	)
	if groupErr != nil {
		return summary, groupErr
	}
	return summary, nil
}
