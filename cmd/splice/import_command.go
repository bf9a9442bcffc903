package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"splice/internal/config"
	"splice/internal/media/importer"
	"splice/internal/notifications"
	"splice/internal/projectstore"
	"splice/internal/timeline"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <project> <file>...",
		Short: "Probe media files and append them as clips",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			return ctx.withLockedStore(func(store *projectstore.Store) error {
				project, err := resolveProject(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}
				before := project.Clone()

				imp := importer.New(cfg.FFprobeBinary(), logger)
				notifier := notifications.NewService(cfg)

				// Every file must probe cleanly before anything is saved, so
				// a typo half way through a list never commits a partial import.
				var added []*timeline.Clip
				for _, arg := range args[1:] {
					path, err := config.ExpandPath(arg)
					if err != nil {
						return err
					}
					clip, err := imp.Import(cmd.Context(), project, path)
					if err != nil {
						return err
					}
					added = append(added, clip)
				}

				description := fmt.Sprintf("Import %s", countNoun(len(added), "clip"))
				if len(added) == 1 {
					description = fmt.Sprintf("Import %s", added[0].Name)
				}
				if err := recordTrail(cmd.Context(), store, project.ID, description, before, cfg.Editing.HistoryLimit); err != nil {
					return err
				}
				if err := store.Save(cmd.Context(), project); err != nil {
					return err
				}

				rows := make([][]string, 0, len(added))
				for _, clip := range added {
					rows = append(rows, []string{
						shortID(clip.ID),
						clip.Name,
						string(clip.MediaType),
						formatSeconds(clip.Duration()),
						formatSeconds(clip.TimelineStart),
					})
					_ = notifier.NotifyImportComplete(cmd.Context(), clip.Name, string(clip.MediaType))
				}
				table := renderTable([]string{"Clip", "Name", "Kind", "Duration", "Starts At"}, rows, 3, 4)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}
