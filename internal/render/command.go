package render

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// buildArgs assembles the complete ffmpeg invocation: inputs in graph order,
// the filter script, stream mapping, encoder arguments, and the machine
// progress pipe.
func buildArgs(graph *Graph, frameRate float64, encoder []string, outputPath string) []string {
	args := []string{"-hide_banner", "-nostdin", "-loglevel", "error", "-y"}
	for _, input := range graph.Inputs {
		if input.Image {
			args = append(args, "-loop", "1", "-framerate", num(frameRate), "-t", num(input.Duration))
		}
		args = append(args, "-i", input.Path)
	}
	args = append(args, "-filter_complex", graph.Script)
	args = append(args, "-map", "["+graph.VideoLabel+"]", "-map", "["+graph.AudioLabel+"]")
	args = append(args, encoder...)
	args = append(args, "-progress", "pipe:1", "-nostats")
	args = append(args, outputPath)
	return args
}

var commandContext = exec.CommandContext

// runFFmpeg executes an assembled ffmpeg command, forwarding parsed progress
// blocks and keeping the last log lines around for error reporting.
func runFFmpeg(ctx context.Context, binary string, args []string, progress func(progressUpdate)) error {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	var parser progressParser
	var tail tailBuffer
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if update, complete := parser.Feed(line); complete {
			if progress != nil {
				progress(update)
			}
			continue
		}
		if !progressNoise(line) {
			tail.Add(line)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("read ffmpeg output: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		if detail := tail.String(); detail != "" {
			return fmt.Errorf("ffmpeg failed: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

const tailLines = 12

// tailBuffer keeps the most recent log lines so a failure can report what
// ffmpeg actually complained about.
type tailBuffer struct {
	lines []string
}

func (t *tailBuffer) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > tailLines {
		t.lines = t.lines[len(t.lines)-tailLines:]
	}
}

func (t *tailBuffer) String() string {
	return strings.Join(t.lines, " | ")
}
