package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"converso/internal/fileutil"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "formats <url>",
		Short: "List downloadable formats for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := ctx.runWorker(cmd.Context(), "list_formats", map[string]any{"url": args[0]}, nil)
			if err != nil {
				return err
			}
			if !resp.Success {
				return errors.New(resp.Error)
			}
			if jsonOutput {
				return writeJSON(cmd, resp.Data)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d formats)\n", stringField(resp.Data, "title"), int64Field(resp.Data, "total_count"))

			printFormatSection(cmd, "Audio", sliceField(resp.Data, "audio"), true)
			printFormatSection(cmd, "Video", sliceField(resp.Data, "video"), false)
			printFormatSection(cmd, "Progressive", sliceField(resp.Data, "progressive"), false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the format listing as JSON")
	return cmd
}

func printFormatSection(cmd *cobra.Command, label string, formats []any, audio bool) {
	if len(formats) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s:\n", label)

	if audio {
		rows := make([][]string, 0, len(formats))
		for _, item := range formats {
			f := mapItem(item)
			if f == nil {
				continue
			}
			rows = append(rows, []string{
				stringField(f, "format_id"),
				stringField(f, "ext"),
				stringField(f, "acodec"),
				formatBitrate(float64Field(f, "abr")),
				formatSampleRate(int64Field(f, "asr")),
				formatApproxSize(f),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"ID", "Ext", "Codec", "Bitrate", "Sample Rate", "Size"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
		))
		return
	}

	rows := make([][]string, 0, len(formats))
	for _, item := range formats {
		f := mapItem(item)
		if f == nil {
			continue
		}
		rows = append(rows, []string{
			stringField(f, "format_id"),
			stringField(f, "ext"),
			stringField(f, "vcodec"),
			formatResolution(int64Field(f, "height")),
			formatFPS(float64Field(f, "fps")),
			formatBitrate(float64Field(f, "tbr")),
			formatApproxSize(f),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Ext", "Codec", "Resolution", "FPS", "Bitrate", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
}

func formatBitrate(kbps float64) string {
	if kbps <= 0 {
		return ""
	}
	return fmt.Sprintf("%.0fk", kbps)
}

func formatSampleRate(hz int64) string {
	if hz <= 0 {
		return ""
	}
	return fmt.Sprintf("%dHz", hz)
}

func formatResolution(height int64) string {
	if height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dp", height)
}

func formatFPS(fps float64) string {
	if fps <= 0 {
		return ""
	}
	return fmt.Sprintf("%.0f", fps)
}

// formatApproxSize prefers the exact filesize, falling back to the estimate
// with a tilde marker.
func formatApproxSize(f map[string]any) string {
	if size := int64Field(f, "filesize"); size > 0 {
		return fileutil.FormatSize(size)
	}
	if size := int64Field(f, "filesize_approx"); size > 0 {
		return "~" + fileutil.FormatSize(size)
	}
	return ""
}
