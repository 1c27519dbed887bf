package ytdlp

import "strconv"

// Options is the engine configuration for one download. Built once by the
// option builder and passed by value; never mutated afterwards.
type Options struct {
	// Format is the engine format selector, e.g. "137+140/bestvideo+bestaudio/best".
	Format string
	// OutputDir receives the finished file.
	OutputDir string
	// OutputTemplate names the produced file, engine template syntax.
	OutputTemplate string

	RestrictFilenames bool
	WindowsFilenames  bool
	Continue          bool

	Retries             int
	FragmentRetries     int
	SocketTimeoutSecs   int
	ConcurrentFragments int

	// ExtractAudio converts the download to an audio-only file in
	// AudioFormat at best quality.
	ExtractAudio bool
	AudioFormat  string

	// RemuxVideo rewraps a finished video into the named container without
	// re-encoding. Empty keeps the source container.
	RemuxVideo string
	// MergeOutputFormat is the container for merged video+audio downloads.
	MergeOutputFormat string

	// FFmpegLocation overrides the conversion tool the engine invokes.
	FFmpegLocation string
}

// args renders the options as engine CLI flags. Engine-native progress
// display stays off; progress arrives as template JSON lines instead.
func (o Options) args() []string {
	args := []string{
		"--no-warnings",
		"--quiet",
		"--progress",
		"--newline",
		"--progress-template", "download:%(progress)j",
		"--print", "after_move:filepath",
	}
	if o.Format != "" {
		args = append(args, "--format", o.Format)
	}
	if o.OutputDir != "" {
		args = append(args, "--paths", o.OutputDir)
	}
	if o.OutputTemplate != "" {
		args = append(args, "--output", o.OutputTemplate)
	}
	if o.RestrictFilenames {
		args = append(args, "--restrict-filenames")
	}
	if o.WindowsFilenames {
		args = append(args, "--windows-filenames")
	}
	if o.Continue {
		args = append(args, "--continue")
	}
	if o.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(o.Retries))
	}
	if o.FragmentRetries > 0 {
		args = append(args, "--fragment-retries", strconv.Itoa(o.FragmentRetries))
	}
	if o.SocketTimeoutSecs > 0 {
		args = append(args, "--socket-timeout", strconv.Itoa(o.SocketTimeoutSecs))
	}
	if o.ConcurrentFragments > 0 {
		args = append(args, "--concurrent-fragments", strconv.Itoa(o.ConcurrentFragments))
	}
	if o.ExtractAudio {
		args = append(args, "--extract-audio", "--audio-quality", "0")
		if o.AudioFormat != "" {
			args = append(args, "--audio-format", o.AudioFormat)
		}
	}
	if o.RemuxVideo != "" {
		args = append(args, "--remux-video", o.RemuxVideo)
	}
	if o.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", o.MergeOutputFormat)
	}
	if o.FFmpegLocation != "" {
		args = append(args, "--ffmpeg-location", o.FFmpegLocation)
	}
	return args
}
