// Package logging builds the slog loggers used across subweave.
//
// Two output formats are supported: a compact console format for interactive
// runs and JSON for log shipping. Console output colors level labels when
// attached to a terminal. The package also defines the standardized field
// keys (item_id, stage, run_id, ...) and context helpers that keep log lines
// correlatable across stages.
package logging
