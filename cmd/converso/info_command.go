package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"converso/internal/fileutil"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <url>",
		Short: "Show metadata for a URL without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := ctx.runWorker(cmd.Context(), "info", map[string]any{"url": args[0]}, nil)
			if err != nil {
				return err
			}
			if !resp.Success {
				return errors.New(resp.Error)
			}
			if jsonOutput {
				return writeJSON(cmd, resp.Data)
			}

			rows := [][2]string{
				{"Title", stringField(resp.Data, "title")},
				{"Uploader", stringField(resp.Data, "uploader")},
				{"Duration", fileutil.FormatDuration(int64Field(resp.Data, "duration"))},
				{"Views", fmt.Sprintf("%d", int64Field(resp.Data, "view_count"))},
				{"Upload date", stringField(resp.Data, "upload_date")},
				{"Formats", fmt.Sprintf("%d", int64Field(resp.Data, "formats_available"))},
				{"URL", stringField(resp.Data, "url")},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPairs(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit metadata as JSON")
	return cmd
}
