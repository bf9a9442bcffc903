package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"splice/internal/config"
	"splice/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), path)
			if err != nil {
				return err
			}
			if asJSON {
				cmd.OutOrStdout().Write(result.RawJSON())
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:      %s\n", path)
			fmt.Fprintf(out, "Kind:      %s\n", displayOrDash(result.MediaKind()))
			if duration := result.DurationSeconds(); !math.IsNaN(duration) && duration > 0 {
				fmt.Fprintf(out, "Duration:  %s\n", formatSeconds(duration))
			}
			if width, height, ok := result.Dimensions(); ok {
				fmt.Fprintf(out, "Frame:     %dx%d", width, height)
				if rate := result.FrameRate(); rate > 0 {
					fmt.Fprintf(out, " @ %g fps", rate)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Streams:   %d video, %d audio\n", result.VideoStreamCount(), result.AudioStreamCount())
			if size := result.SizeBytes(); size > 0 {
				fmt.Fprintf(out, "Size:      %.1f MiB\n", float64(size)/(1<<20))
			}
			if rate := result.BitRate(); rate > 0 {
				fmt.Fprintf(out, "Bit rate:  %d kb/s\n", rate/1000)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw ffprobe document")
	return cmd
}

func displayOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
