package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// CheckFFmpegForEngine reports the FFmpeg binary the retrieval engine will
// execute for extraction, remux, and merge steps.
//
// A non-default ffmpegCommand is what the engine gets handed via
// --ffmpeg-location, so availability is decided by that path alone.
// Otherwise yt-dlp prefers an ffmpeg that sits next to its own executable
// before falling back to PATH resolution; this helper mirrors that lookup so
// status output matches what the engine actually runs.
func CheckFFmpegForEngine(engineCommand, ffmpegCommand string) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Used by yt-dlp for extraction, remux, and merge",
	}

	if custom := strings.TrimSpace(ffmpegCommand); custom != "" && custom != "ffmpeg" {
		if resolved, err := exec.LookPath(custom); err == nil {
			result.Command = resolved
			result.Available = true
			return result
		}
		result.Command = custom
		result.Detail = fmt.Sprintf("binary %q not found", custom)
		return result
	}

	engineBinary := strings.TrimSpace(engineCommand)
	if engineBinary != "" {
		if resolved, err := exec.LookPath(engineBinary); err == nil {
			if candidate, ok := sidecarCandidate(resolved); ok {
				if info, statErr := os.Stat(candidate); statErr == nil && isExecutable(info) {
					result.Command = candidate
					result.Available = true
					return result
				}
			}
		}
	}

	ffmpegName := "ffmpeg"
	if ffmpegPath, err := exec.LookPath(ffmpegName); err == nil {
		result.Command = ffmpegPath
		result.Available = true
		return result
	}

	result.Command = ffmpegName
	result.Detail = fmt.Sprintf("binary %q not found", ffmpegName)
	return result
}

// FFmpegNeeded reports whether the given download mode requires the
// conversion tool. Single-stream video and progressive downloads only need
// it when remuxing into a different container.
func FFmpegNeeded(mode string, containerChange bool) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "audio", "merge":
		return true
	case "video", "progressive":
		return containerChange
	default:
		return false
	}
}

func sidecarCandidate(enginePath string) (string, bool) {
	if enginePath == "" {
		return "", false
	}
	dir := filepath.Dir(enginePath)
	name := "ffmpeg"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(dir, name), true
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
