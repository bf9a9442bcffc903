package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"splice/internal/dispatch"
	"splice/internal/history"
	"splice/internal/host"
	"splice/internal/logging"
	"splice/internal/timeline"
)

// Engine executes actions against a project and records each observable edit
// as one undo step. Undo and redo replace the whole project with a stored
// snapshot rather than running inverse edits, so structural changes like cuts
// and deletions revert the same way parameter changes do.
type Engine struct {
	mu         sync.Mutex
	project    *timeline.Project
	surface    *host.Memory
	dispatcher *dispatch.Dispatcher
	stacks     *history.Stacks
	logger     *slog.Logger
}

// New binds an engine to a project. A positive historyLimit caps the undo
// depth; zero keeps every edit.
func New(project *timeline.Project, historyLimit int, logger *slog.Logger) *Engine {
	surface := host.NewMemory(project)
	return &Engine{
		project:    project,
		surface:    surface,
		dispatcher: dispatch.New(project, surface, logger),
		stacks:     history.NewStacks(historyLimit),
		logger:     logging.NewComponentLogger(logger, "editor"),
	}
}

// Project returns the live project. Callers must not mutate it outside the
// engine; snapshots for display should be cloned.
func (e *Engine) Project() *timeline.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project
}

// Surface exposes the editing surface bound to the live project, for tools
// that read parameter state directly and for fault injection in tests.
func (e *Engine) Surface() *host.Memory {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface
}

// History exposes the undo/redo stacks for display. Callers treat the stacks
// as read-only; all movement goes through Undo and Redo.
func (e *Engine) History() *history.Stacks {
	return e.stacks
}

// ExecuteAction runs one action and records it as an undo step when it
// changed the project. Validation failures and unknown tags return before
// any clip is touched; per-clip failures are reported in the result while
// the successful clips' edits are recorded.
func (e *Engine) ExecuteAction(ctx context.Context, act dispatch.Action) (dispatch.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.project.Clone()
	result, err := e.dispatcher.Dispatch(ctx, act)
	if err != nil {
		return dispatch.Result{}, err
	}
	e.record(describeAction(act), before)
	return result, nil
}

// ExecuteActions runs a batch of actions as one undo step. The whole batch is
// validated before the first action runs; an invalid action anywhere rejects
// the batch with the project untouched.
func (e *Engine) ExecuteActions(ctx context.Context, actions []dispatch.Action) (dispatch.BatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(actions) == 0 {
		return dispatch.BatchResult{}, nil
	}
	before := e.project.Clone()
	batch, err := e.dispatcher.DispatchMany(ctx, actions)
	// Failed validation never mutates, so recording is a no-op there; a
	// partially-run batch still becomes an undo step the user can back out of.
	e.record(describeBatch(actions), before)
	return batch, err
}

// record pushes an undo command when the project moved, comparing snapshots
// structurally so no-op edits never occupy an undo slot.
func (e *Engine) record(description string, before *timeline.Project) {
	cmd := history.NewCommand(description, before, e.project.Clone())
	if !e.stacks.Push(cmd) {
		return
	}
	e.logger.Debug("recorded edit",
		logging.String("description", description),
		logging.Int("undo_depth", len(e.stacks.UndoStack())))
}

// Undo reverts the most recent edit and returns its description.
// ErrNothingToUndo is informational: the project is left as it was.
func (e *Engine) Undo() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd, err := e.stacks.Undo()
	if err != nil {
		return "", err
	}
	e.install(cmd.Previous)
	e.logger.Info("undid edit", logging.String("description", cmd.Description))
	return cmd.Description, nil
}

// Redo reapplies the most recently undone edit and returns its description.
func (e *Engine) Redo() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd, err := e.stacks.Redo()
	if err != nil {
		return "", err
	}
	e.install(cmd.Next)
	e.logger.Info("redid edit", logging.String("description", cmd.Description))
	return cmd.Description, nil
}

// CanUndo reports whether an undo target exists.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stacks.CanUndo()
}

// CanRedo reports whether a redo target exists.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stacks.CanRedo()
}

// ResetHistory drops both stacks, as after loading a different project into
// the session.
func (e *Engine) ResetHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stacks.Clear()
}

// install makes a stored snapshot the live project. The snapshot is cloned so
// later edits never reach back into the history stacks, and the surface and
// dispatcher are rebound to the new project value.
func (e *Engine) install(snapshot *timeline.Project) {
	e.project = snapshot.Clone()
	e.surface.Rebind(e.project)
	e.dispatcher.Rebind(e.project)
}

// describeAction prefers the caller-supplied display message over the
// generated summary.
func describeAction(act dispatch.Action) string {
	if act.Message != "" {
		return act.Message
	}
	return dispatch.Describe(act)
}

func describeBatch(actions []dispatch.Action) string {
	if len(actions) == 1 {
		return describeAction(actions[0])
	}
	return fmt.Sprintf("Batch of %d edits", len(actions))
}
