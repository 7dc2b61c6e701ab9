package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subweave/internal/config"
	"subweave/internal/pipeline"
	"subweave/internal/queue"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Scan the library and process every video that needs subtitles",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				p := pipeline.New(cfg, store, logger)
				for _, health := range p.Preflight() {
					if !health.Ready {
						logger.Warn("preflight check failed",
							"check", health.Name, "detail", health.Detail)
					}
				}

				summary, err := p.Run(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Discovered %d video(s), enqueued %d new\n", summary.Discovered, summary.Enqueued)
				fmt.Fprintf(out, "Processed %d: %d completed, %d failed\n", summary.Processed, summary.Completed, summary.Failed)
				if summary.Failed > 0 {
					return fmt.Errorf("%d item(s) failed; see `subweave queue list --status failed`", summary.Failed)
				}
				return nil
			})
		},
	}
}
