// Package projectstore persists timeline projects in SQLite.
//
// The Store manages database connections, schema migrations, and the two
// tables splice owns: projects, which holds the current timeline document
// per project as JSON, and snapshots, which holds named checkpoints a user
// can roll a project back to. Undo history is deliberately absent from the
// schema; history lives only in the editing session and a freshly loaded
// project always starts with empty stacks.
//
// Schema changes are additive migrations under migrations/; each file runs
// once and is recorded in schema_migrations.
package projectstore
