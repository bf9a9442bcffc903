package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/history"
	"splice/internal/projectstore"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <project>",
		Short: "Revert the most recent edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLockedStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				description, err := stepBack(cmd.Context(), store, project)
				if errors.Is(err, history.ErrNothingToUndo) {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Undid: %s\n", description)
				return nil
			})
		},
	}
}

func newRedoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "redo <project>",
		Short: "Reapply the most recently undone edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLockedStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				description, err := stepForward(cmd.Context(), store, project)
				if errors.Is(err, history.ErrNothingToRedo) {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to redo")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Redid: %s\n", description)
				return nil
			})
		},
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history <project>",
		Short: "Show the undoable edit trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				undo, redo, err := trailEntries(cmd.Context(), store, project.ID)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, historyDocument(undo, redo))
				}
				if len(undo) == 0 && len(redo) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No edit history for %q\n", project.Name)
					return nil
				}

				rows := make([][]string, 0, len(undo)+len(redo))
				// Undo side newest first: step 1 is what `splice undo` reverts.
				for i := len(undo) - 1; i >= 0; i-- {
					entry := undo[i]
					rows = append(rows, []string{
						fmt.Sprintf("-%d", len(undo)-i),
						entry.label,
						formatTimestamp(entry.created),
					})
				}
				for i := len(redo) - 1; i >= 0; i-- {
					entry := redo[i]
					rows = append(rows, []string{
						fmt.Sprintf("+%d", len(redo)-i),
						entry.label,
						formatTimestamp(entry.created),
					})
				}
				table := renderTable([]string{"Step", "Edit", "When"}, rows, 0)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the edit trail as JSON")
	return cmd
}

type historyStep struct {
	Edit string `json:"edit"`
	When string `json:"when"`
}

func historyDocument(undo, redo []trailEntry) map[string][]historyStep {
	doc := map[string][]historyStep{
		"undo": make([]historyStep, 0, len(undo)),
		"redo": make([]historyStep, 0, len(redo)),
	}
	for i := len(undo) - 1; i >= 0; i-- {
		doc["undo"] = append(doc["undo"], historyStep{Edit: undo[i].label, When: undo[i].created.UTC().Format("2006-01-02T15:04:05Z")})
	}
	for i := len(redo) - 1; i >= 0; i-- {
		doc["redo"] = append(doc["redo"], historyStep{Edit: redo[i].label, When: redo[i].created.UTC().Format("2006-01-02T15:04:05Z")})
	}
	return doc
}
