package projectstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"splice/internal/timeline"
)

// SaveSnapshot stores a named checkpoint of the project document. The project
// itself must already be saved; the foreign key rejects orphan snapshots.
func (s *Store) SaveSnapshot(ctx context.Context, projectID, label string, project *timeline.Project) (*SnapshotInfo, error) {
	if project == nil {
		return nil, errors.New("project is nil")
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errors.New("snapshot label is empty")
	}

	var saved int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects WHERE id = ?`, projectID)
	if err := row.Scan(&saved); err != nil {
		return nil, fmt.Errorf("check project: %w", err)
	}
	if saved == 0 {
		return nil, fmt.Errorf("project %q is not saved", projectID)
	}

	document, err := json.Marshal(project)
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO snapshots (project_id, label, document, created_at) VALUES (?, ?, ?, ?)`,
		projectID,
		label,
		string(document),
		now.Format(storedTimeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &SnapshotInfo{
		ID:        id,
		ProjectID: projectID,
		Label:     label,
		CreatedAt: now,
	}, nil
}

// Snapshots lists stored checkpoints for a project, oldest first.
func (s *Store) Snapshots(ctx context.Context, projectID string) ([]*SnapshotInfo, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, project_id, label, created_at FROM snapshots WHERE project_id = ? ORDER BY created_at, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []*SnapshotInfo
	for rows.Next() {
		var (
			info       SnapshotInfo
			createdRaw string
		)
		if err := rows.Scan(&info.ID, &info.ProjectID, &info.Label, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := parseTimeString(createdRaw); err == nil {
			info.CreatedAt = created
		}
		infos = append(infos, &info)
	}
	return infos, rows.Err()
}

// LoadSnapshot returns the timeline document stored under a snapshot ID, or
// nil when no such snapshot exists.
func (s *Store) LoadSnapshot(ctx context.Context, id int64) (*timeline.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE id = ?`, id)
	return scanDocument(row)
}

// RemoveSnapshot deletes a checkpoint by ID.
func (s *Store) RemoveSnapshot(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
