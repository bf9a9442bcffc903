package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment is ready for editing and export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range checkLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			if !preflight.Passed(results) {
				return errors.New("environment is not ready (see failed checks above)")
			}
			return nil
		},
	}
}
