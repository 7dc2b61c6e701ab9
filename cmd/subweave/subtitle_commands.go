package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"subweave/internal/bilingual"
	"subweave/internal/config"
	"subweave/internal/normalize"
	"subweave/internal/passmerge"
	"subweave/internal/srt"
	"subweave/internal/translate"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "normalize <input.srt>",
		Short: "Clean one SRT: drop noise, reassemble fragments, settle timing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			track, err := srt.ReadTrack(args[0])
			if err != nil {
				return err
			}
			cleaned := normalize.Normalize(track, normalizeConfigFrom(cfg.Cleanup))
			dest := outPath
			if dest == "" {
				dest = args[0]
			}
			if err := srt.WriteTrack(dest, cleaned); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s (%d in)\n", len(cleaned), dest, len(track))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path (default: overwrite input)")
	return cmd
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "merge <primary.srt> [secondary.srt ...]",
		Short: "Merge transcription passes, filling primary gaps from the rest",
		Long: "Merge transcription passes. The first file is the trusted base; later\n" +
			"files fill its silent gaps in the order given. Every input is normalized\n" +
			"before merging.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if outPath == "" {
				return errors.New("--out is required")
			}
			normCfg := normalizeConfigFrom(cfg.Cleanup)
			passes := make([]passmerge.Pass, 0, len(args))
			for i, path := range args {
				track, err := srt.ReadTrack(path)
				if err != nil {
					return err
				}
				passes = append(passes, passmerge.Pass{
					Name:  path,
					Rank:  len(args) - i,
					Track: normalize.Normalize(track, normCfg),
				})
			}
			merged := passmerge.MergeWithAcceptance(nil, passes, cfg.Cleanup.GapAcceptance)
			if err := srt.WriteTrack(outPath, merged); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(merged), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path")
	return cmd
}

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "align <primary.srt> <secondary.srt>",
		Short: "Weave two same-length tracks into one bilingual SRT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return errors.New("--out is required")
			}
			primary, err := srt.ReadTrack(args[0])
			if err != nil {
				return err
			}
			secondary, err := srt.ReadTrack(args[1])
			if err != nil {
				return err
			}
			track, err := bilingual.Align(primary, secondary)
			if err != nil {
				return err
			}
			if err := srt.WriteBilingual(outPath, track); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bilingual entries to %s\n", len(track), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path")
	return cmd
}

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var outPath string
	var target string

	cmd := &cobra.Command{
		Use:   "translate <input.srt>",
		Short: "Translate one SRT via the browser translation service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if outPath == "" {
				return errors.New("--out is required")
			}
			lang := target
			if lang == "" {
				lang = cfg.Languages.Secondary
			}
			svc := translate.NewService(cfg.Translate, lang)
			if err := svc.Translate(cmd.Context(), args[0], outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote translation to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output path")
	cmd.Flags().StringVarP(&target, "language", "l", "", "Target language (default: languages.secondary)")
	return cmd
}

func normalizeConfigFrom(c config.Cleanup) normalize.Config {
	return normalize.Config{
		MinDuration:   time.Duration(c.MinDurationMs) * time.Millisecond,
		MinChars:      c.MinChars,
		MergeGap:      time.Duration(c.MergeGapMs) * time.Millisecond,
		FragmentChars: c.FragmentChars,
		Floor:         time.Duration(c.FloorMs) * time.Millisecond,
	}
}
