package projectstore

import "time"

// Summary describes a stored project without carrying its timeline document.
type Summary struct {
	ID        string
	Name      string
	ClipCount int
	Duration  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnapshotInfo identifies a stored checkpoint of a project.
type SnapshotInfo struct {
	ID        int64
	ProjectID string
	Label     string
	CreatedAt time.Time
}

// DatabaseHealth reports diagnostic details about the project database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TablesPresent    []string
	MissingTables    []string
	IntegrityCheck   bool
	ProjectCount     int
	SnapshotCount    int
	Error            string
}
