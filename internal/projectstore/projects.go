package projectstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"splice/internal/timeline"
)

const summaryColumns = "id, name, clip_count, duration_seconds, created_at, updated_at"

// storedTimeFormat is fixed-width so lexicographic order in SQL matches
// chronological order.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Save writes the project's current timeline document, inserting on first
// save and replacing the stored document afterwards.
func (s *Store) Save(ctx context.Context, project *timeline.Project) error {
	if project == nil {
		return errors.New("project is nil")
	}
	if strings.TrimSpace(project.ID) == "" {
		return errors.New("project has no ID")
	}

	document, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	now := time.Now().UTC().Format(storedTimeFormat)
	clipCount := len(project.Clips())
	duration := project.Duration()

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE projects
         SET name = ?, document = ?, clip_count = ?, duration_seconds = ?, updated_at = ?
         WHERE id = ?`,
		project.Name,
		string(document),
		clipCount,
		duration,
		now,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, document, clip_count, duration_seconds, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		string(document),
		clipCount,
		duration,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Load returns the stored timeline document for a project ID, or nil when no
// such project exists.
func (s *Store) Load(ctx context.Context, id string) (*timeline.Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT document FROM projects WHERE id = ?`, id)
	return scanDocument(row)
}

// FindByName returns the most recently updated project with the given name,
// or nil when none matches.
func (s *Store) FindByName(ctx context.Context, name string) (*timeline.Project, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT document FROM projects WHERE name = ? ORDER BY updated_at DESC LIMIT 1`,
		name,
	)
	return scanDocument(row)
}

// Resolve locates a project by exact ID, then exact name, then unique ID
// prefix. An ambiguous prefix is an error; no match returns nil.
func (s *Store) Resolve(ctx context.Context, ref string) (*timeline.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty project reference")
	}

	if project, err := s.Load(ctx, ref); err != nil || project != nil {
		return project, err
	}
	if project, err := s.FindByName(ctx, ref); err != nil || project != nil {
		return project, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM projects WHERE id LIKE ? ORDER BY id`, ref+"%")
	if err != nil {
		return nil, fmt.Errorf("resolve project prefix: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(ids) {
	case 0:
		return nil, nil
	case 1:
		return s.Load(ctx, ids[0])
	default:
		return nil, fmt.Errorf("project reference %q is ambiguous (%d matches)", ref, len(ids))
	}
}

// List returns summaries for all stored projects, most recently updated first.
func (s *Store) List(ctx context.Context) ([]*Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+summaryColumns+` FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Remove deletes a project together with its snapshots.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE project_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete project snapshots: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanDocument(row *sql.Row) (*timeline.Project, error) {
	var document string
	if err := row.Scan(&document); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	var project timeline.Project
	if err := json.Unmarshal([]byte(document), &project); err != nil {
		return nil, fmt.Errorf("decode project document: %w", err)
	}
	return &project, nil
}

func scanSummary(scanner interface{ Scan(dest ...any) error }) (*Summary, error) {
	var (
		summary    Summary
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&summary.ID,
		&summary.Name,
		&summary.ClipCount,
		&summary.Duration,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		summary.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		summary.UpdatedAt = updated
	}
	return &summary, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
