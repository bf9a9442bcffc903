package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"splice/internal/projectstore"
	"splice/internal/timeline"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create and manage projects",
	}

	projectCmd.AddCommand(newProjectNewCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectRemoveCommand(ctx))

	return projectCmd
}

func newProjectNewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return ctx.withLockedStore(func(store *projectstore.Store) error {
				existing, err := store.FindByName(cmd.Context(), name)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("project %q already exists (%s)", name, shortID(existing.ID))
				}

				project := timeline.NewProject(name)
				if err := store.Save(cmd.Context(), project); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %q (%s)\n", name, shortID(project.ID))
				return nil
			})
		},
	}
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *projectstore.Store) error {
				summaries, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, projectListEntries(summaries))
				}
				if len(summaries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No projects yet (create one with `splice project new`)")
					return nil
				}

				rows := make([][]string, 0, len(summaries))
				for _, summary := range summaries {
					rows = append(rows, []string{
						shortID(summary.ID),
						summary.Name,
						strconv.Itoa(summary.ClipCount),
						formatSeconds(summary.Duration),
						formatTimestamp(summary.UpdatedAt),
					})
				}
				table := renderTable([]string{"ID", "Name", "Clips", "Duration", "Updated"}, rows, 2, 3)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the project list as JSON")
	return cmd
}

type projectListEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ClipCount int     `json:"clip_count"`
	Duration  float64 `json:"duration_seconds"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func projectListEntries(summaries []*projectstore.Summary) []projectListEntry {
	entries := make([]projectListEntry, 0, len(summaries))
	for _, summary := range summaries {
		entries = append(entries, projectListEntry{
			ID:        summary.ID,
			Name:      summary.Name,
			ClipCount: summary.ClipCount,
			Duration:  summary.Duration,
			CreatedAt: summary.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			UpdatedAt: summary.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return entries
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Display a project's timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, project)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Project: %s (%s)\n", project.Name, shortID(project.ID))
				fmt.Fprintf(out, "Frame:   %dx%d @ %g fps\n", project.Width, project.Height, project.FrameRate)
				fmt.Fprintf(out, "Length:  %s\n", formatSeconds(project.Duration()))

				for _, track := range project.Tracks {
					fmt.Fprintf(out, "\n%s (%s", track.Name, track.Kind)
					if track.Muted {
						fmt.Fprint(out, ", muted")
					}
					if track.Locked {
						fmt.Fprint(out, ", locked")
					}
					if track.Hidden {
						fmt.Fprint(out, ", hidden")
					}
					fmt.Fprintln(out, ")")

					if len(track.Clips) == 0 {
						fmt.Fprintln(out, "  (empty)")
						continue
					}
					rows := make([][]string, 0, len(track.Clips))
					for _, clip := range track.Clips {
						rows = append(rows, []string{
							shortID(clip.ID),
							clip.Name,
							filepath.Base(clip.SourcePath),
							fmt.Sprintf("%s - %s", formatSeconds(clip.TimelineStart), formatSeconds(clip.TimelineEnd())),
							strconv.Itoa(len(clip.Effects)),
						})
					}
					table := renderTable([]string{"Clip", "Name", "Source", "Placement", "Effects"}, rows, 4)
					fmt.Fprintln(out, table)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the timeline document as JSON")
	return cmd
}

func newProjectRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project and its checkpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLockedStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				removed, err := store.Remove(cmd.Context(), project.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("project %s disappeared before removal", shortID(project.ID))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed project %q (%s)\n", project.Name, shortID(project.ID))
				return nil
			})
		},
	}
}
