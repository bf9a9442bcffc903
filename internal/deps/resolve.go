package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveFFmpeg locates the ffmpeg binary, honoring a configured override
// before falling back to PATH. The returned status carries the version line
// when the binary could be run.
func ResolveFFmpeg(configured string) Status {
	return resolveTool(Status{
		Name:        "FFmpeg",
		Description: "Renders timeline exports",
	}, configured, "ffmpeg", "")
}

// ResolveFFprobe locates the ffprobe binary. When no override is configured
// it first looks next to the resolved ffmpeg binary, since the standard
// distributions ship the two side by side, and then falls back to PATH.
func ResolveFFprobe(configured, ffmpegPath string) Status {
	return resolveTool(Status{
		Name:        "FFprobe",
		Description: "Inspects imported media",
	}, configured, "ffprobe", ffmpegPath)
}

func resolveTool(status Status, configured, fallback, anchor string) Status {
	if cmd := strings.TrimSpace(configured); cmd != "" {
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Command = cmd
			status.Detail = fmt.Sprintf("configured binary %q not found", cmd)
			return status
		}
		status.Command = resolved
		status.Available = true
		status.Version = toolVersion(resolved)
		return status
	}

	if candidate, ok := sidecarCandidate(anchor, fallback); ok {
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			status.Command = candidate
			status.Available = true
			status.Version = toolVersion(candidate)
			return status
		}
	}

	resolved, err := exec.LookPath(fallback)
	if err != nil {
		status.Command = fallback
		status.Detail = fmt.Sprintf("binary %q not found", fallback)
		return status
	}
	status.Command = resolved
	status.Available = true
	status.Version = toolVersion(resolved)
	return status
}

// sidecarCandidate returns the path a tool would have if it sat in the same
// directory as the anchor binary.
func sidecarCandidate(anchorPath, name string) (string, bool) {
	anchorPath = strings.TrimSpace(anchorPath)
	if anchorPath == "" {
		return "", false
	}
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(anchorPath), name), true
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

// toolVersion runs `<command> -version` and returns the first output line,
// or "" when the binary will not run.
func toolVersion(command string) string {
	out, err := exec.Command(command, "-version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}
