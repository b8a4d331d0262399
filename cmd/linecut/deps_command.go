package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"linecut/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external tools linecut depends on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Required(cfg.Tools.FFmpeg, cfg.Tools.FFprobe))
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				state := "ok"
				detail := status.Description
				if !status.Available {
					state = "missing"
					detail = status.Detail
					missing++
				}
				rows = append(rows, []string{status.Name, state, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Status", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing", missing)
			}

			version, err := deps.FFmpegVersion(cmd.Context(), cfg.Tools.FFmpeg)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, version)
			return nil
		},
	}
}
