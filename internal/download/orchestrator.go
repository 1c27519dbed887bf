package download

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"converso/internal/config"
	"converso/internal/deps"
	"converso/internal/fileutil"
	"converso/internal/format"
	"converso/internal/logging"
	"converso/internal/module"
	"converso/internal/services"
	"converso/internal/services/ytdlp"
)

// Settings carries the read-only configuration the orchestrator consumes.
type Settings struct {
	OutputDir string
	Mode      string
	Container string
	Quality   string

	FFmpegAvailable bool
	Tuning          Tuning
}

// SettingsFromConfig maps the loaded configuration onto orchestrator
// settings. FFmpeg availability is resolved separately by the caller.
func SettingsFromConfig(cfg *config.Config, ffmpegAvailable bool, ffmpegLocation string) Settings {
	return Settings{
		OutputDir:       cfg.Paths.OutputDir,
		Mode:            cfg.Defaults.Mode,
		Container:       cfg.Defaults.Container,
		Quality:         cfg.Defaults.Quality,
		FFmpegAvailable: ffmpegAvailable,
		Tuning: Tuning{
			Concurrency:       cfg.Engine.Concurrency,
			Retries:           cfg.Engine.Retries,
			FragmentRetries:   cfg.Engine.FragmentRetries,
			SocketTimeoutSecs: cfg.Engine.SocketTimeout,
			FFmpegLocation:    ffmpegLocation,
		},
	}
}

// Orchestrator wires the format classifier, option builder, and progress
// translator around one engine invocation per request.
type Orchestrator struct {
	engine   ytdlp.Client
	sink     ProgressSink
	settings Settings
	logger   *slog.Logger
}

// NewOrchestrator builds an orchestrator. The logger may be nil.
func NewOrchestrator(engine ytdlp.Client, sink ProgressSink, settings Settings, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{engine: engine, sink: sink, settings: settings, logger: logger}
}

// RegisterHandlers attaches the command surface to a dispatcher.
func (o *Orchestrator) RegisterHandlers(m *module.Module) {
	m.Register("download", o.Download)
	m.Register("list_formats", o.ListFormats)
	m.Register("info", o.Info)
}

// Info probes a URL and returns its metadata without downloading.
func (o *Orchestrator) Info(ctx context.Context, args map[string]any) (map[string]any, error) {
	url := stringArg(args, "url")
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, "", "URL is required", nil)
	}

	_ = o.sink.SendProgress("fetching", 50, 100, "Fetching video info")
	info, err := o.engine.Probe(ctx, url)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"url":               url,
		"title":             info.Title,
		"uploader":          info.Uploader,
		"duration":          int64(info.Duration),
		"view_count":        info.ViewCount,
		"upload_date":       info.UploadDate,
		"thumbnail":         info.Thumbnail,
		"description":       info.Description,
		"formats_available": len(info.Formats),
	}, nil
}

// ListFormats probes a URL and returns its categorized format listing.
func (o *Orchestrator) ListFormats(ctx context.Context, args map[string]any) (map[string]any, error) {
	url := stringArg(args, "url")
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, "", "URL is required", nil)
	}

	_ = o.sink.SendProgress("fetching", 50, 100, "Fetching formats")
	info, err := o.engine.Probe(ctx, url)
	if err != nil {
		return nil, err
	}

	audio, video, progressive := format.Categorize(info.Formats)
	return map[string]any{
		"url":         url,
		"title":       info.Title,
		"formats":     info.Formats,
		"audio":       format.Sort(audio, format.KindAudio),
		"video":       format.Sort(video, format.KindVideo),
		"progressive": format.Sort(progressive, format.KindProgressive),
		"total_count": len(info.Formats),
	}, nil
}

// Download runs one engine retrieval for the requested mode and returns a
// description of the produced file.
func (o *Orchestrator) Download(ctx context.Context, args map[string]any) (map[string]any, error) {
	url := stringArg(args, "url")
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, "", "URL is required", nil)
	}

	mode := strings.ToLower(stringArg(args, "mode"))
	if mode == "" {
		mode = o.settings.Mode
	}
	switch mode {
	case "audio", "video", "merge", "progressive":
	default:
		return nil, services.Wrap(services.ErrValidation, "", fmt.Sprintf("Unsupported mode: %s", mode), nil)
	}

	formatID := stringArg(args, "format_id")
	container := strings.ToLower(stringArg(args, "container"))
	if container == "" {
		container = o.settings.Container
	}

	outputDir := stringArg(args, "output_dir")
	if outputDir == "" {
		outputDir = o.settings.OutputDir
	}
	outputDir, err := config.ExpandPath(outputDir)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "", fmt.Sprintf("Invalid output directory: %v", err), nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrValidation, "", fmt.Sprintf("Cannot create output directory: %v", err), nil)
	}
	if err := fileutil.CheckDirWritable(outputDir); err != nil {
		return nil, services.Wrap(services.ErrValidation, "", fmt.Sprintf("Output directory not writable: %v", err), nil)
	}

	if deps.FFmpegNeeded(mode, container != "") && !o.settings.FFmpegAvailable {
		return nil, services.Wrap(services.ErrExternalTool, "", "FFmpeg is required for download. Please install FFmpeg.", nil)
	}

	// One download at a time per output directory. The lock file lives next
	// to the partial files it protects; process exit releases it.
	lock := flock.New(filepath.Join(outputDir, ".converso.lock"))
	locked, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil || !locked {
		return nil, services.Wrap(services.ErrValidation, "", "Output directory is busy with another download", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	_ = o.sink.SendProgress("preparing", 0, 100, "Preparing download")

	info, err := o.engine.Probe(ctx, url)
	if err != nil {
		return nil, err
	}

	plan, err := o.plan(mode, formatID, container, outputDir, info)
	if err != nil {
		return nil, err
	}

	o.logger.Info("starting download",
		logging.String("url", url),
		logging.String("mode", mode),
		logging.String("selector", plan.opts.Format))

	translator := NewTranslator(o.sink)
	path, err := o.engine.Download(ctx, url, plan.opts, translator.Hook())
	if err != nil {
		return nil, err
	}

	if mode == "audio" && plan.container == "mp3" && path != "" {
		if err := tagAudioFile(path, info); err != nil {
			o.logger.Warn("mp3 tagging failed", logging.Error(err))
		}
	}

	return map[string]any{
		"url":         url,
		"mode":        mode,
		"format_id":   plan.formatID,
		"container":   plan.container,
		"output_dir":  outputDir,
		"file_path":   path,
		"file_size":   fileutil.FormatSize(fileutil.FileSize(path)),
		"duration":    fileutil.FormatDuration(int64(info.Duration)),
		"status":      "completed",
		"title":       info.Title,
	}, nil
}

type downloadPlan struct {
	opts      ytdlp.Options
	formatID  string
	container string
}

// plan selects the concrete format(s) for the mode and assembles engine
// options. An explicit format_id wins over classifier selection; the
// selector's fallback chain still applies when the id is unknown.
func (o *Orchestrator) plan(mode, formatID, container, outputDir string, info *ytdlp.Info) (downloadPlan, error) {
	audio, video, progressive := format.Categorize(info.Formats)

	switch mode {
	case "audio":
		selected := pickFormat(info.Formats, formatID)
		if selected == nil {
			selected = format.BestAudio(audio)
		}
		if selected == nil && formatID == "" {
			return downloadPlan{}, services.Wrap(services.ErrValidation, "", "No audio formats available", nil)
		}
		id := formatID
		if id == "" {
			id = selected.FormatID
		}
		target := container
		if target == "" {
			if selected != nil {
				target = format.SuggestContainer(*selected, true)
			} else {
				target = "mp3"
			}
		}
		return downloadPlan{
			opts:      AudioOptions(id, target, outputDir, o.settings.Tuning),
			formatID:  id,
			container: target,
		}, nil

	case "video":
		selected := pickFormat(info.Formats, formatID)
		if selected == nil {
			selected = format.BestVideo(video)
		}
		if selected == nil && formatID == "" {
			return downloadPlan{}, services.Wrap(services.ErrValidation, "", "No video formats available", nil)
		}
		id := formatID
		if id == "" {
			id = selected.FormatID
		}
		remux := remuxContainer(selected, container)
		resolved := container
		if resolved == "" && selected != nil {
			resolved = format.SuggestContainer(*selected, false)
		}
		return downloadPlan{
			opts:      VideoOptions(id, remux, outputDir, o.settings.Tuning),
			formatID:  id,
			container: resolved,
		}, nil

	case "merge":
		videoSel := pickFormat(info.Formats, formatID)
		if videoSel == nil {
			videoSel = format.BestVideo(video)
		}
		audioSel := format.BestAudio(audio)
		if videoSel == nil && formatID == "" {
			return downloadPlan{}, services.Wrap(services.ErrValidation, "", "No video formats available", nil)
		}
		if audioSel == nil {
			return downloadPlan{}, services.Wrap(services.ErrValidation, "", "No audio formats available", nil)
		}
		videoID := formatID
		if videoID == "" {
			videoID = videoSel.FormatID
		}
		target := container
		if target == "" {
			target = "mp4"
		}
		return downloadPlan{
			opts:      MergeOptions(videoID, audioSel.FormatID, target, outputDir, o.settings.Tuning),
			formatID:  videoID + "+" + audioSel.FormatID,
			container: target,
		}, nil

	case "progressive":
		selected := pickFormat(info.Formats, formatID)
		if selected == nil {
			sorted := format.Sort(progressive, format.KindProgressive)
			if len(sorted) > 0 {
				selected = &sorted[0]
			}
		}
		if selected == nil && formatID == "" {
			return downloadPlan{}, services.Wrap(services.ErrValidation, "", "No progressive formats available", nil)
		}
		id := formatID
		if id == "" {
			id = selected.FormatID
		}
		remux := remuxContainer(selected, container)
		resolved := container
		if resolved == "" && selected != nil {
			resolved = format.SuggestContainer(*selected, false)
		}
		return downloadPlan{
			opts:      VideoOptions(id, remux, outputDir, o.settings.Tuning),
			formatID:  id,
			container: resolved,
		}, nil
	}

	return downloadPlan{}, services.Wrap(services.ErrValidation, "", fmt.Sprintf("Unsupported mode: %s", mode), nil)
}

// remuxContainer reports the container to remux into, empty when the source
// container already matches or no target was requested.
func remuxContainer(selected *format.Descriptor, container string) string {
	if container == "" {
		return ""
	}
	if selected != nil && strings.EqualFold(selected.Ext, container) {
		return ""
	}
	return container
}

func pickFormat(formats []format.Descriptor, formatID string) *format.Descriptor {
	if formatID == "" {
		return nil
	}
	for i := range formats {
		if formats[i].FormatID == formatID {
			return &formats[i]
		}
	}
	return nil
}

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	value, ok := args[key]
	if !ok {
		return ""
	}
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}
