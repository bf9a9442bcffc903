// Package deps discovers the external tools splice shells out to. Rendering
// needs ffmpeg and media inspection needs ffprobe; everything here is about
// finding those binaries and reporting their state for doctor output.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool splice relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// Defaults returns the tool requirements for a configuration's ffmpeg and
// ffprobe commands.
func Defaults(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Renders timeline exports"},
		{Name: "FFprobe", Command: ffprobe, Description: "Inspects imported media"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// It only resolves paths; use Resolve for version details.
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
