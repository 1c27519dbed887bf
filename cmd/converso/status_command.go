package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"converso/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check external dependencies and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Defaults(cfg.Engine.Binary, cfg.Engine.FFmpegBinary, cfg.Worker.Binary))
			ffmpeg := deps.CheckFFmpegForEngine(cfg.Engine.Binary, cfg.Engine.FFmpegBinary)

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"dependencies":     statuses,
					"ffmpeg_path":      ffmpeg.Command,
					"ffmpeg_available": ffmpeg.Available,
					"output_dir":       cfg.Paths.OutputDir,
					"log_dir":          cfg.Paths.LogDir,
				})
			}

			rows := make([][]string, 0, len(statuses))
			missingRequired := false
			for _, status := range statuses {
				state := "found"
				if !status.Available {
					state = status.Detail
					if !status.Optional {
						missingRequired = true
					}
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					yesNo(!status.Optional),
					state,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Dependency", "Command", "Required", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if ffmpeg.Available {
				fmt.Fprintf(out, "FFmpeg resolved at %s\n", ffmpeg.Command)
			} else {
				fmt.Fprintln(out, "FFmpeg not found; audio and merge modes will be unavailable")
			}
			fmt.Fprintf(out, "Output directory: %s\n", cfg.Paths.OutputDir)

			if missingRequired {
				return fmt.Errorf("required dependencies are missing")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit dependency status as JSON")
	return cmd
}
