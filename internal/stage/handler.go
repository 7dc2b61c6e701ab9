// Package stage defines the contract each pipeline stage implements and the
// execution helper that applies queue transition semantics around it.
package stage

import (
	"context"
	"log/slog"

	"subweave/internal/queue"
)

// Handler is one step of the per-item pipeline. Prepare validates inputs and
// decides whether the stage can be skipped; Execute does the work.
type Handler interface {
	Prepare(context.Context, *queue.Item) error
	Execute(context.Context, *queue.Item) error
}

// LoggerAware lets the execution helper hand stages a logger that already
// carries the item and stage fields.
type LoggerAware interface {
	SetLogger(*slog.Logger)
}

// Health summarizes the readiness of a pipeline stage.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy constructs a ready Health record.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy constructs an unhealthy Health record with context detail.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}
