package download

import (
	"fmt"

	"converso/internal/services/ytdlp"
)

// OutputTemplate names finished files after the source title and id.
const OutputTemplate = "%(title)s [%(id)s].%(ext)s"

const (
	minConcurrency = 1
	maxConcurrency = 16
)

// Tuning carries the engine parameters shared by every download variant.
type Tuning struct {
	Concurrency       int
	Retries           int
	FragmentRetries   int
	SocketTimeoutSecs int
	FFmpegLocation    string
}

// ClampConcurrency bounds a fragment concurrency request to [1, 16].
func ClampConcurrency(n int) int {
	if n < minConcurrency {
		return minConcurrency
	}
	if n > maxConcurrency {
		return maxConcurrency
	}
	return n
}

func baseOptions(outputDir string, t Tuning) ytdlp.Options {
	return ytdlp.Options{
		OutputDir:           outputDir,
		OutputTemplate:      OutputTemplate,
		RestrictFilenames:   true,
		WindowsFilenames:    true,
		Continue:            true,
		Retries:             t.Retries,
		FragmentRetries:     t.FragmentRetries,
		SocketTimeoutSecs:   t.SocketTimeoutSecs,
		ConcurrentFragments: ClampConcurrency(t.Concurrency),
		FFmpegLocation:      t.FFmpegLocation,
	}
}

// AudioOptions builds engine options for an audio-only download extracted
// into container at maximum quality.
func AudioOptions(formatID, container, outputDir string, t Tuning) ytdlp.Options {
	opts := baseOptions(outputDir, t)
	opts.Format = fmt.Sprintf("%s/bestaudio/best", formatID)
	opts.ExtractAudio = true
	opts.AudioFormat = container
	return opts
}

// VideoOptions builds engine options for a single-stream video download.
// A non-empty container adds a remux step; no re-encode happens.
func VideoOptions(formatID, container, outputDir string, t Tuning) ytdlp.Options {
	opts := baseOptions(outputDir, t)
	opts.Format = fmt.Sprintf("%s/bestvideo/best", formatID)
	opts.RemuxVideo = container
	return opts
}

// MergeOptions builds engine options that download separate video and audio
// streams and merge them into container.
func MergeOptions(videoID, audioID, container, outputDir string, t Tuning) ytdlp.Options {
	opts := baseOptions(outputDir, t)
	opts.Format = fmt.Sprintf("%s+%s/bestvideo+bestaudio/best", videoID, audioID)
	opts.MergeOutputFormat = container
	return opts
}
