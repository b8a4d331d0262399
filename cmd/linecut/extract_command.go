package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"linecut/internal/catalog"
	"linecut/internal/deps"
	"linecut/internal/logging"
	"linecut/internal/media/ffmpeg"
	"linecut/internal/pipeline"
	"linecut/internal/summarize"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		bufferMS      int
		modeFlag      string
		containerFlag string
		hwAccelFlag   string
		regexFlag     bool
		caseSensitive bool
		subtitles     []string
		videoFor      []string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "extract <query>",
		Short: "Extract clips for every subtitle line matching the query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(args[0])
			if query == "" {
				return fmt.Errorf("query must not be empty")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("buffer") {
				bufferMS = cfg.Extraction.BufferMS
			}
			if !cmd.Flags().Changed("mode") {
				modeFlag = cfg.Extraction.Mode
			}
			if !cmd.Flags().Changed("container") {
				containerFlag = cfg.Extraction.Container
			}
			if !cmd.Flags().Changed("hw-accel") {
				hwAccelFlag = cfg.Extraction.HWAccel
			}
			if bufferMS < 0 {
				return fmt.Errorf("buffer must not be negative")
			}
			mode, err := ffmpeg.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			if hwAccelFlag != "" && mode != ffmpeg.ModeAccurateTranscode {
				return fmt.Errorf("hardware acceleration requires --mode accurate-transcode")
			}

			overrides, err := parseVideoOverrides(videoFor)
			if err != nil {
				return err
			}

			// Fail before any run directory exists when the tools are
			// missing or broken; the first cut is far too late to find out.
			if err := deps.Verify(deps.Required(cfg.Tools.FFmpeg, cfg.Tools.FFprobe)); err != nil {
				return err
			}
			version, err := deps.FFmpegVersion(cmd.Context(), cfg.Tools.FFmpeg)
			if err != nil {
				return err
			}
			logger.Info("ffmpeg available", logging.String("version", version))

			invoker, err := ctx.newInvoker(logger)
			if err != nil {
				return err
			}
			discoverer, err := ctx.newDiscoverer(invoker, logger, overrides)
			if err != nil {
				return err
			}

			opts := []pipeline.Option{
				pipeline.WithLogger(logger),
				pipeline.WithSummarizer(summarize.FromConfig(summarize.Config{
					APIKey:         cfg.Summarizer.APIKey,
					BaseURL:        cfg.Summarizer.BaseURL,
					Model:          cfg.Summarizer.Model,
					TimeoutSeconds: cfg.Summarizer.TimeoutSeconds,
				})),
			}
			if cfg.Catalog.Enabled && !dryRun {
				store, err := catalog.Open(cfg.Paths.CatalogPath)
				if err != nil {
					return err
				}
				defer store.Close()
				opts = append(opts, pipeline.WithStore(store))
			}

			pipe := pipeline.New(cfg, invoker, discoverer, opts...)
			result, err := pipe.Run(cmd.Context(), pipeline.Request{
				Query:         query,
				Regex:         regexFlag,
				CaseSensitive: caseSensitive,
				BufferMS:      bufferMS,
				Mode:          mode,
				Container:     containerFlag,
				HWAccel:       hwAccelFlag,
				Subtitles:     subtitles,
				DryRun:        dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d clip(s) would be extracted\n", result.TotalClips)
				return nil
			}
			fmt.Fprintf(out, "Extracted %d clip(s) to %s\n", result.TotalClips, result.RunDirectory)
			fmt.Fprintf(out, "Manifest: %s\n", result.ManifestPath)
			logger.Info("run complete",
				logging.String("run_directory", result.RunDirectory),
				logging.Int("total_clips", result.TotalClips))
			return nil
		},
	}

	cmd.Flags().IntVar(&bufferMS, "buffer", 0, "Symmetric clip padding in milliseconds")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Extraction mode: fast-copy, accurate-transcode, or clean-transcode")
	cmd.Flags().StringVar(&containerFlag, "container", "", "Output container extension (mp4, mkv, ...)")
	cmd.Flags().StringVar(&hwAccelFlag, "hw-accel", "", "Hardware acceleration backend for accurate-transcode")
	cmd.Flags().BoolVar(&regexFlag, "regex", false, "Treat the query as a regular expression")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match case exactly")
	cmd.Flags().StringArrayVar(&subtitles, "subtitle", nil, "Search only these subtitle files (repeatable)")
	cmd.Flags().StringArrayVar(&videoFor, "video-for", nil, "Override subtitle-to-video pairing as subtitle=video (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report planned clips without cutting")

	return cmd
}

func parseVideoOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		subtitle, video, ok := strings.Cut(pair, "=")
		if !ok || subtitle == "" || video == "" {
			return nil, fmt.Errorf("invalid --video-for value %q (expected subtitle=video)", pair)
		}
		overrides[subtitle] = video
	}
	return overrides, nil
}
