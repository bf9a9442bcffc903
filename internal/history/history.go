// Package history keeps the undo and redo stacks for an editing session.
// Each command pairs full project snapshots from before and after one edit;
// moving through history is snapshot replacement, never inverse edits. The
// stacks are owned by a single editing engine and are not safe for
// concurrent use.
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"splice/internal/timeline"
)

// ErrNothingToUndo reports an undo request against an empty undo stack.
// It is informational: callers surface it to the user and move on.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo reports a redo request against an empty redo stack.
var ErrNothingToRedo = errors.New("nothing to redo")

// Command is one recorded edit: a human-readable description and the project
// snapshots bracketing it. The snapshots are owned by the command once
// recorded; callers must clone before mutating.
type Command struct {
	ID          string
	Description string
	CreatedAt   time.Time
	Previous    *timeline.Project
	Next        *timeline.Project
}

// NewCommand stamps a command with a fresh ID and the current time.
func NewCommand(description string, previous, next *timeline.Project) *Command {
	return &Command{
		ID:          uuid.NewString(),
		Description: description,
		CreatedAt:   time.Now(),
		Previous:    previous,
		Next:        next,
	}
}

// Changed reports whether the command's snapshots differ structurally.
func (c *Command) Changed() bool {
	if c == nil {
		return false
	}
	return !c.Previous.Equal(c.Next)
}

// Stacks holds the undo and redo stacks. Undone commands move to the redo
// stack whole, so redo reapplies exactly what undo reverted.
type Stacks struct {
	limit int
	undo  []*Command
	redo  []*Command
}

// NewStacks returns empty stacks. A positive limit caps the undo depth by
// dropping the oldest command; zero means unlimited.
func NewStacks(limit int) *Stacks {
	if limit < 0 {
		limit = 0
	}
	return &Stacks{limit: limit}
}

// Push records a command and reports whether it was kept. Commands whose
// snapshots are structurally identical are dropped, so no-op edits never
// occupy an undo slot. Recording a new edit invalidates the redo stack.
func (s *Stacks) Push(cmd *Command) bool {
	if !cmd.Changed() {
		return false
	}
	s.undo = append(s.undo, cmd)
	s.redo = nil
	if s.limit > 0 && len(s.undo) > s.limit {
		overflow := len(s.undo) - s.limit
		copy(s.undo, s.undo[overflow:])
		for i := s.limit; i < len(s.undo); i++ {
			s.undo[i] = nil
		}
		s.undo = s.undo[:s.limit]
	}
	return true
}

// Undo pops the most recent command onto the redo stack and returns it. The
// caller applies the command's Previous snapshot.
func (s *Stacks) Undo() (*Command, error) {
	if len(s.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, cmd)
	return cmd, nil
}

// Redo pops the most recently undone command back onto the undo stack and
// returns it. The caller applies the command's Next snapshot.
func (s *Stacks) Redo() (*Command, error) {
	if len(s.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, cmd)
	return cmd, nil
}

// CanUndo reports whether an undo target exists.
func (s *Stacks) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redo target exists.
func (s *Stacks) CanRedo() bool { return len(s.redo) > 0 }

// PeekUndo returns the command Undo would pop, or nil.
func (s *Stacks) PeekUndo() *Command {
	if len(s.undo) == 0 {
		return nil
	}
	return s.undo[len(s.undo)-1]
}

// PeekRedo returns the command Redo would pop, or nil.
func (s *Stacks) PeekRedo() *Command {
	if len(s.redo) == 0 {
		return nil
	}
	return s.redo[len(s.redo)-1]
}

// UndoStack returns the undo stack oldest-first.
func (s *Stacks) UndoStack() []*Command {
	return append([]*Command(nil), s.undo...)
}

// RedoStack returns the redo stack oldest-first.
func (s *Stacks) RedoStack() []*Command {
	return append([]*Command(nil), s.redo...)
}

// Clear drops both stacks, as when a different project is loaded.
func (s *Stacks) Clear() {
	s.undo = nil
	s.redo = nil
}
