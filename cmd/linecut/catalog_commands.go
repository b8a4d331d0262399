package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"linecut/internal/catalog"
	"linecut/internal/config"
	"linecut/internal/srt"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the run catalog",
	}

	catalogCmd.AddCommand(newCatalogRunsCommand(ctx))
	catalogCmd.AddCommand(newCatalogClipsCommand(ctx))
	catalogCmd.AddCommand(newCatalogResolveCommand(ctx))

	return catalogCmd
}

func (c *commandContext) withCatalog(fn func(*catalog.Store, *config.Config) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Catalog.Enabled {
		return fmt.Errorf("catalog is disabled; enable it under [catalog] in the configuration")
	}
	store, err := catalog.Open(cfg.Paths.CatalogPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store, cfg)
}

func newCatalogRunsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List recorded extraction runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store, _ *config.Config) error {
				runs, err := store.ListRuns(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.Query,
						run.Mode,
						strconv.Itoa(run.TotalClips),
						run.CreatedAt.Local().Format(time.DateTime),
						run.RunDirectory,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Run", "Query", "Mode", "Clips", "Created", "Directory"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newCatalogClipsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clips <run-id>",
		Short: "List the clips recorded for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store, _ *config.Config) error {
				clips, err := store.ListClips(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(clips) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No clips recorded for run %s\n", args[0])
					return nil
				}
				rows := make([][]string, 0, len(clips))
				for _, entry := range clips {
					rows = append(rows, []string{
						entry.File,
						entry.Video,
						srt.FormatClock(entry.Start),
						srt.FormatClock(entry.End),
						strconv.FormatInt(entry.ProcessingMS, 10),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"File", "Video", "Start", "End", "Cut MS"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func newCatalogResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <media-id>",
		Short: "Resolve a logical media identifier to its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store, _ *config.Config) error {
				video, subtitle, err := store.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Video:    %s\n", video)
				if subtitle != "" {
					fmt.Fprintf(out, "Subtitle: %s\n", subtitle)
				} else {
					fmt.Fprintln(out, "Subtitle: (none recorded)")
				}
				return nil
			})
		},
	}
}
