package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"splice/internal/notifications"
	"splice/internal/projectstore"
	"splice/internal/render"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputName string

	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Render a project with ffmpeg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}

				notifier := notifications.NewService(cfg)
				_ = notifier.NotifyRenderStarted(cmd.Context(), project.Name)

				renderer := render.New(cfg, logger)
				result, err := renderer.Export(cmd.Context(), project, render.Options{OutputName: outputName})
				if err != nil {
					_ = notifier.NotifyRenderFailed(cmd.Context(), project.Name, err)
					return err
				}
				_ = notifier.NotifyRenderCompleted(cmd.Context(), project.Name, result.OutputPath)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Exported %q\n", project.Name)
				fmt.Fprintf(out, "  Output:   %s\n", result.OutputPath)
				fmt.Fprintf(out, "  Duration: %s\n", formatSeconds(result.Duration))
				fmt.Fprintf(out, "  Elapsed:  %s\n", result.Elapsed.Round(time.Millisecond))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&outputName, "name", "", "Override the output file base name")
	return cmd
}
