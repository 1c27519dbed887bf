package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"converso/internal/format"
	"converso/internal/services"
)

var commandContext = exec.CommandContext

// ProgressUpdate captures one engine progress callback. Byte counts are
// floats because the engine reports estimates fractionally.
type ProgressUpdate struct {
	Status             string  `json:"status"`
	DownloadedBytes    float64 `json:"downloaded_bytes"`
	TotalBytes         float64 `json:"total_bytes"`
	TotalBytesEstimate float64 `json:"total_bytes_estimate"`
	Speed              float64 `json:"speed"`
	Filename           string  `json:"filename"`
}

// Info is the metadata dump for one source URL.
type Info struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Uploader    string              `json:"uploader"`
	Duration    float64             `json:"duration"`
	ViewCount   int64               `json:"view_count"`
	UploadDate  string              `json:"upload_date"`
	Thumbnail   string              `json:"thumbnail"`
	Description string              `json:"description"`
	Formats     []format.Descriptor `json:"formats"`
}

// Client defines retrieval engine behaviour.
type Client interface {
	Probe(ctx context.Context, url string) (*Info, error)
	Download(ctx context.Context, url string, opts Options, progress func(ProgressUpdate)) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the yt-dlp command line engine.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "yt-dlp"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Probe fetches metadata and the format listing for url without downloading.
func (c *CLI) Probe(ctx context.Context, url string) (*Info, error) {
	if strings.TrimSpace(url) == "" {
		return nil, services.Wrap(services.ErrValidation, "", "URL is required", nil)
	}

	cmd := commandContext(ctx, c.binary, "--no-warnings", "--skip-download", "-J", url) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, engineFailure("probe", stderr.String(), err)
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, services.Wrap(services.ErrEngine, "probe", "parse engine metadata", err)
	}
	return &info, nil
}

// Download launches the engine and blocks until it exits. Progress template
// lines are decoded and forwarded to the callback as they arrive; the final
// file path printed by the engine is returned.
func (c *CLI) Download(ctx context.Context, url string, opts Options, progress func(ProgressUpdate)) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", services.Wrap(services.ErrValidation, "", "URL is required", nil)
	}

	args := append(opts.args(), url)
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", services.Wrap(services.ErrEngine, "download", "stdout pipe", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return "", services.Wrap(services.ErrEngine, "download", "start engine", err)
	}

	var finalPath string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var update ProgressUpdate
		if err := json.Unmarshal(line, &update); err == nil && update.Status != "" {
			if progress != nil {
				progress(update)
			}
			continue
		}
		// Non-progress output is the printed destination path.
		finalPath = string(line)
	}
	if err := scanner.Err(); err != nil {
		return "", services.Wrap(services.ErrEngine, "download", "read engine output", err)
	}

	if err := cmd.Wait(); err != nil {
		return "", engineFailure("download", stderr.String(), err)
	}
	return finalPath, nil
}

func engineFailure(operation, stderr string, err error) error {
	detail := strings.TrimSpace(stderr)
	if detail != "" {
		if idx := strings.LastIndex(detail, "\n"); idx >= 0 {
			detail = strings.TrimSpace(detail[idx+1:])
		}
		return services.Wrap(services.ErrEngine, operation, detail, err)
	}
	return services.Wrap(services.ErrEngine, operation, "", err)
}

var _ Client = (*CLI)(nil)
