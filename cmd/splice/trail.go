package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"splice/internal/history"
	"splice/internal/projectstore"
	"splice/internal/timeline"
)

// The engine's undo stacks live and die with one process, so the CLI keeps
// its own edit trail in the snapshot table: each mutating command stores the
// pre-edit document under an "undo: " label, and undoing moves the displaced
// current document under a "redo: " label. The newest entry of each prefix is
// the next step in that direction; a fresh edit discards the redo side, the
// same linearity the in-memory stacks enforce.
const (
	trailUndoPrefix = "undo: "
	trailRedoPrefix = "redo: "
)

type trailEntry struct {
	id      int64
	label   string
	created time.Time
}

// trailEntries splits a project's snapshots into the undo and redo sides of
// the trail, each ordered oldest first.
func trailEntries(ctx context.Context, store *projectstore.Store, projectID string) (undo, redo []trailEntry, err error) {
	infos, err := store.Snapshots(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	for _, info := range infos {
		switch {
		case strings.HasPrefix(info.Label, trailUndoPrefix):
			undo = append(undo, trailEntry{
				id:      info.ID,
				label:   strings.TrimPrefix(info.Label, trailUndoPrefix),
				created: info.CreatedAt,
			})
		case strings.HasPrefix(info.Label, trailRedoPrefix):
			redo = append(redo, trailEntry{
				id:      info.ID,
				label:   strings.TrimPrefix(info.Label, trailRedoPrefix),
				created: info.CreatedAt,
			})
		}
	}
	return undo, redo, nil
}

// recordTrail checkpoints the pre-edit state after a successful edit. The redo
// side is discarded and, when a history limit is configured, the oldest undo
// entries beyond it are dropped.
func recordTrail(ctx context.Context, store *projectstore.Store, projectID, description string, before *timeline.Project, limit int) error {
	if _, err := store.SaveSnapshot(ctx, projectID, trailUndoPrefix+description, before); err != nil {
		return fmt.Errorf("checkpoint edit: %w", err)
	}

	undo, redo, err := trailEntries(ctx, store, projectID)
	if err != nil {
		return err
	}
	for _, entry := range redo {
		if _, err := store.RemoveSnapshot(ctx, entry.id); err != nil {
			return err
		}
	}
	if limit > 0 {
		for len(undo) > limit {
			if _, err := store.RemoveSnapshot(ctx, undo[0].id); err != nil {
				return err
			}
			undo = undo[1:]
		}
	}
	return nil
}

// stepBack restores the newest undo checkpoint, parking the displaced current
// document on the redo side. Returns the description of the undone edit.
func stepBack(ctx context.Context, store *projectstore.Store, project *timeline.Project) (string, error) {
	undo, _, err := trailEntries(ctx, store, project.ID)
	if err != nil {
		return "", err
	}
	if len(undo) == 0 {
		return "", history.ErrNothingToUndo
	}
	newest := undo[len(undo)-1]

	restored, err := store.LoadSnapshot(ctx, newest.id)
	if err != nil {
		return "", err
	}
	if restored == nil {
		return "", fmt.Errorf("checkpoint %d vanished", newest.id)
	}

	if _, err := store.SaveSnapshot(ctx, project.ID, trailRedoPrefix+newest.label, project); err != nil {
		return "", fmt.Errorf("park current state: %w", err)
	}
	if err := store.Save(ctx, restored); err != nil {
		return "", err
	}
	if _, err := store.RemoveSnapshot(ctx, newest.id); err != nil {
		return "", err
	}
	return newest.label, nil
}

// stepForward reapplies the newest redo checkpoint, the inverse of stepBack.
func stepForward(ctx context.Context, store *projectstore.Store, project *timeline.Project) (string, error) {
	_, redo, err := trailEntries(ctx, store, project.ID)
	if err != nil {
		return "", err
	}
	if len(redo) == 0 {
		return "", history.ErrNothingToRedo
	}
	newest := redo[len(redo)-1]

	restored, err := store.LoadSnapshot(ctx, newest.id)
	if err != nil {
		return "", err
	}
	if restored == nil {
		return "", fmt.Errorf("checkpoint %d vanished", newest.id)
	}

	if _, err := store.SaveSnapshot(ctx, project.ID, trailUndoPrefix+newest.label, project); err != nil {
		return "", fmt.Errorf("park current state: %w", err)
	}
	if err := store.Save(ctx, restored); err != nil {
		return "", err
	}
	if _, err := store.RemoveSnapshot(ctx, newest.id); err != nil {
		return "", err
	}
	return newest.label, nil
}
