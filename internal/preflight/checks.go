package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"splice/internal/config"
	"splice/internal/deps"
	"splice/internal/projectstore"
)

// minFreeBytes is the staging headroom below which an export is likely to
// run out of space mid-encode.
const minFreeBytes = 1 << 30

var statfsFree = realStatfsFree

// CheckTools reports whether ffmpeg and ffprobe resolve to runnable binaries.
func CheckTools(cfg *config.Config) []Result {
	ffmpeg := deps.ResolveFFmpeg(cfg.Tools.FFmpeg)
	ffprobe := deps.ResolveFFprobe(cfg.Tools.FFprobe, ffmpeg.Command)

	results := make([]Result, 0, 2)
	for _, status := range []deps.Status{ffmpeg, ffprobe} {
		result := Result{Name: status.Name, Passed: status.Available}
		switch {
		case status.Available && status.Version != "":
			result.Detail = status.Version
		case status.Available:
			result.Detail = status.Command
		default:
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable,
// writable, and traversable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStore opens the project database and reports its health.
func CheckStore(ctx context.Context, cfg *config.Config) Result {
	const name = "Project store"

	store, err := projectstore.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.DatabasePath(), err)}
	}
	defer store.Close()

	health, err := store.CheckHealth(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed: %v", err)}
	}
	if health.Error != "" {
		return Result{Name: name, Detail: health.Error}
	}
	if len(health.MissingTables) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("missing tables: %s", strings.Join(health.MissingTables, ", "))}
	}
	if !health.IntegrityCheck {
		return Result{Name: name, Detail: "integrity check failed"}
	}
	detail := fmt.Sprintf("%s (%d projects", store.Path(), health.ProjectCount)
	if health.SnapshotCount > 0 {
		detail += fmt.Sprintf(", %d snapshots", health.SnapshotCount)
	}
	return Result{Name: name, Passed: true, Detail: detail + ")"}
}

// CheckDiskSpace verifies the staging volume has headroom for an encode.
func CheckDiskSpace(path string) Result {
	const name = "Disk space"

	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "staging directory not configured"}
	}
	free, err := statfsFree(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	detail := fmt.Sprintf("%.1f GiB free on %s", float64(free)/(1<<30), path)
	if free < minFreeBytes {
		return Result{Name: name, Detail: detail + " (need at least 1 GiB)"}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func realStatfsFree(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
