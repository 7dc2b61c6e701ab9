package services

import (
	"context"
	"errors"

	"subweave/internal/queue"
)

// FailureStatus maps a stage error to the queue status recorded for the item.
// Context cancellation leaves the item pending so the next run retries it;
// everything else is a hard failure.
func FailureStatus(err error) queue.Status {
	switch {
	case err == nil:
		return queue.StatusCompleted
	case errors.Is(err, context.Canceled):
		return queue.StatusPending
	default:
		return queue.StatusFailed
	}
}

// IsRetryable reports whether the error class is worth retrying without
// operator intervention.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, ErrTimeout)
}
