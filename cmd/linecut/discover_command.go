package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"linecut/internal/fileutil"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the subtitle tracks a run would search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			invoker, err := ctx.newInvoker(logger)
			if err != nil {
				return err
			}
			discoverer, err := ctx.newDiscoverer(invoker, logger, nil)
			if err != nil {
				return err
			}

			tracks, err := discoverer.Discover(cmd.Context(), nil)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(tracks))
			for _, track := range tracks {
				rows = append(rows, []string{
					displayTitle(track.VideoPath),
					fileutil.RelativeTo(cfg.Paths.MediaRoot, track.SubtitlePath),
					sourceLabel(track.Embedded, track.StreamIndex),
					track.Language,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Subtitle", "Source", "Language"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d track(s) under %s\n", len(tracks), cfg.Paths.MediaRoot)
			return nil
		},
	}
	return cmd
}

func displayTitle(videoPath string) string {
	base := videoPath
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	base = strings.NewReplacer("_", " ", ".", " ").Replace(base)
	return cases.Title(language.Und).String(strings.TrimSpace(base))
}

func sourceLabel(embedded bool, streamIndex int) string {
	if embedded {
		return fmt.Sprintf("embedded (stream %d)", streamIndex)
	}
	return "sidecar"
}
