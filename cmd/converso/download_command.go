package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"converso/internal/history"
	"converso/internal/logging"
	"converso/internal/protocol"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var mode string
	var formatID string
	var container string
	var outputDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download media from a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestArgs := map[string]any{"url": args[0]}
			if mode != "" {
				requestArgs["mode"] = mode
			}
			if formatID != "" {
				requestArgs["format_id"] = formatID
			}
			if container != "" {
				requestArgs["container"] = container
			}
			if outputDir != "" {
				requestArgs["output_dir"] = outputDir
			}

			renderer := newProgressRenderer(cmd.OutOrStdout())
			resp, err := ctx.runWorker(cmd.Context(), "download", requestArgs, renderer.Update)
			renderer.Finish()
			if err != nil {
				return err
			}

			ctx.recordDownload(cmd, args[0], resp)

			if !resp.Success {
				return errors.New(resp.Error)
			}
			if jsonOutput {
				return writeJSON(cmd, resp.Data)
			}
			printDownloadResult(cmd, resp.Data)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Download mode (audio, video, merge, progressive)")
	cmd.Flags().StringVarP(&formatID, "format-id", "f", "", "Explicit format identifier")
	cmd.Flags().StringVar(&container, "container", "", "Target container (mp3, m4a, opus, mp4, webm, mkv)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Destination directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the raw result as JSON")
	return cmd
}

func printDownloadResult(cmd *cobra.Command, data map[string]any) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Downloaded %s\n", stringField(data, "title"))
	rows := [][2]string{
		{"File", stringField(data, "file_path")},
		{"Size", stringField(data, "file_size")},
		{"Duration", stringField(data, "duration")},
		{"Mode", stringField(data, "mode")},
		{"Format", stringField(data, "format_id")},
		{"Container", stringField(data, "container")},
	}
	fmt.Fprintln(out, renderPairs(rows))
}

// recordDownload appends the outcome to the local history database. History
// failures never fail the download itself.
func (c *commandContext) recordDownload(cmd *cobra.Command, url string, resp *protocol.Response) {
	cfg := c.configValue()
	if cfg == nil {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		c.ensureLogger().Warn("open history store", logging.Error(err))
		return
	}
	defer store.Close()

	entry := history.Entry{
		URL:     url,
		Success: resp.Success,
		Error:   resp.Error,
	}
	if resp.Success {
		entry.Title = stringField(resp.Data, "title")
		entry.Mode = stringField(resp.Data, "mode")
		entry.FormatID = stringField(resp.Data, "format_id")
		entry.Container = stringField(resp.Data, "container")
		entry.FilePath = stringField(resp.Data, "file_path")
		entry.FileSize = stringField(resp.Data, "file_size")
		entry.Duration = stringField(resp.Data, "duration")
	}
	if _, err := store.Record(cmd.Context(), entry); err != nil {
		c.ensureLogger().Warn("record history entry", logging.Error(err))
	}
}
