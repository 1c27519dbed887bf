package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary Converso relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Defaults returns the requirements for the configured engine, conversion,
// and worker binaries.
func Defaults(engineBinary, ffmpegBinary, workerBinary string) []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: engineBinary, Description: "Media retrieval engine"},
		{Name: "FFmpeg", Command: ffmpegBinary, Description: "Audio extraction, remux, and merge", Optional: true},
		{Name: "Worker", Command: workerBinary, Description: "Converso worker binary"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
