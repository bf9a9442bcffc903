package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"splice/internal/config"
	"splice/internal/dispatch"
	"splice/internal/editor"
	"splice/internal/intent"
	"splice/internal/projectstore"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "edit <project>",
		Short: "Apply edit actions to a project",
		Long: `Apply edit actions described as JSON, either a single document or a list:

  {"action": "zoom", "clip_ids": ["…"], "parameters": {"scale": 150}}

Documents are read from --file, or from stdin when no file is given. All
actions apply as one undoable step; clips that reject an edit are reported
without blocking the rest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readIntentDocuments(cmd, inputPath)
			if err != nil {
				return err
			}
			actions := intent.Actions(docs)

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyEditingDefaults(actions, cfg.Editing)

			return ctx.withLockedStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				before := project.Clone()

				engine := editor.New(project, cfg.Editing.HistoryLimit, logger)
				batch, execErr := engine.ExecuteActions(cmd.Context(), actions)

				// A validation failure leaves the project untouched; only a
				// recorded edit is worth checkpointing and saving.
				if engine.CanUndo() {
					description := describeTrailStep(engine, actions)
					if err := recordTrail(cmd.Context(), store, project.ID, description, before, cfg.Editing.HistoryLimit); err != nil {
						return err
					}
					if err := store.Save(cmd.Context(), engine.Project()); err != nil {
						return err
					}
				}
				if execErr != nil {
					return execErr
				}

				if asJSON {
					return writeJSON(cmd, batch)
				}
				printBatchOutcome(cmd.OutOrStdout(), actions, batch)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "", "Read actions from a JSON file instead of stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the batch result as JSON")
	return cmd
}

// applyEditingDefaults fills the config-driven values the interpretation
// layer may omit: a zoom without an end scale gets the configured zoom-in
// percent (or 100 when the direction is "out"), and an animated edit without
// an explicit curve gets the configured default interpolation.
func applyEditingDefaults(actions []dispatch.Action, editing config.Editing) {
	for i := range actions {
		act := &actions[i]
		if act.Tag == dispatch.TagZoom {
			if _, ok := act.Parameters["scale"]; !ok {
				scale := editing.ZoomInPercent
				if dir, ok := act.Parameters["direction"].(string); ok && strings.EqualFold(dir, "out") {
					scale = 100.0
				}
				if act.Parameters == nil {
					act.Parameters = make(map[string]any, 1)
				}
				act.Parameters["scale"] = scale
			}
		}
		if animated, ok := act.Parameters["animated"].(bool); ok && animated {
			if _, ok := act.Parameters["interpolation"]; !ok && editing.DefaultInterpolation != "" {
				act.Parameters["interpolation"] = editing.DefaultInterpolation
			}
		}
	}
}

func readIntentDocuments(cmd *cobra.Command, inputPath string) ([]intent.Document, error) {
	inputPath = strings.TrimSpace(inputPath)
	if inputPath == "" {
		return intent.Read(cmd.InOrStdin())
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open actions file: %w", err)
	}
	defer file.Close()
	return intent.Read(file)
}

// describeTrailStep reuses the description the engine recorded so the trail
// and the in-memory history name edits identically.
func describeTrailStep(engine *editor.Engine, actions []dispatch.Action) string {
	if cmd := engine.History().PeekUndo(); cmd != nil {
		return cmd.Description
	}
	if len(actions) == 1 {
		return dispatch.Describe(actions[0])
	}
	return fmt.Sprintf("Batch of %d edits", len(actions))
}

func printBatchOutcome(out io.Writer, actions []dispatch.Action, batch dispatch.BatchResult) {
	for i, result := range batch.Results {
		description := dispatch.Describe(actions[i])
		if actions[i].Message != "" {
			description = actions[i].Message
		}
		total := result.Successful + result.Failed
		switch {
		case result.Failed == 0:
			fmt.Fprintf(out, "%s: applied to %s\n", description, countNoun(result.Successful, "clip"))
		case result.Successful == 0:
			fmt.Fprintf(out, "%s: failed for all %s\n", description, countNoun(total, "clip"))
		default:
			fmt.Fprintf(out, "%s: applied to %d of %d clips\n", description, result.Successful, total)
		}
		for _, failure := range result.Failures {
			fmt.Fprintf(out, "  clip %s: %s\n", shortID(failure.ClipID), failure.Reason)
		}
	}
}
