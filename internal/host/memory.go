package host

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"splice/internal/effects"
	"splice/internal/timeline"
)

// Memory binds the capability surface to an in-process timeline project. It is
// the production surface for the CLI editor and doubles as the surface engine
// tests run against. A Memory serves one editing session at a time and is not
// safe for concurrent use.
type Memory struct {
	project *timeline.Project

	// Fault, when set, is consulted before every operation and lets tests
	// inject per-clip failures.
	Fault func(op, clipID string) error
}

// NewMemory returns a surface bound to the given project. Mutations are
// applied to the project in place.
func NewMemory(project *timeline.Project) *Memory {
	return &Memory{project: project}
}

// Rebind points the surface at a different project tree. The editor uses this
// after undo and redo replace the working copy wholesale.
func (m *Memory) Rebind(project *timeline.Project) {
	m.project = project
}

// Project returns the project tree the surface currently mutates.
func (m *Memory) Project() *timeline.Project {
	return m.project
}

func (m *Memory) guard(ctx context.Context, op, clipID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Fault == nil {
		return nil
	}
	return m.Fault(op, clipID)
}

// ResolveParameter looks up a parameter by component and name, returning a
// handle for subsequent state reads and writes.
func (m *Memory) ResolveParameter(ctx context.Context, ref ComponentRef, name string) (ParameterRef, error) {
	const op = "resolve parameter"
	if err := m.guard(ctx, op, ref.ClipID); err != nil {
		return ParameterRef{}, wrap(op, ref.String(), err)
	}
	_, entry, err := m.resolveEntry(ref)
	if err != nil {
		return ParameterRef{}, wrap(op, ref.String(), err)
	}
	if !parameterKnown(entry, name) {
		return ParameterRef{}, wrap(op, ref.String(), fmt.Errorf("%q: %w", name, ErrParameterNotFound))
	}
	return ParameterRef{ClipID: ref.ClipID, EntryID: entry.ID, Name: name}, nil
}

// ParameterState reports the current static value, keyframes, and animation
// flag for a resolved parameter.
func (m *Memory) ParameterState(ctx context.Context, p ParameterRef) (State, error) {
	const op = "read parameter"
	if err := m.guard(ctx, op, p.ClipID); err != nil {
		return State{}, wrap(op, p.String(), err)
	}
	entry, err := m.resolveParam(p)
	if err != nil {
		return State{}, wrap(op, p.String(), err)
	}
	return snapshotState(entry, p.Name), nil
}

// SetTimeVarying switches a parameter between static and animated. The
// in-memory surface derives the flag from keyframe presence, so enabling is a
// validated no-op and disabling drops any keyframes.
func (m *Memory) SetTimeVarying(ctx context.Context, p ParameterRef, animated bool) error {
	const op = "set time varying"
	if err := m.guard(ctx, op, p.ClipID); err != nil {
		return wrap(op, p.String(), err)
	}
	entry, err := m.resolveParam(p)
	if err != nil {
		return wrap(op, p.String(), err)
	}
	applyTimeVarying(entry, p.Name, animated)
	return nil
}

// AddKeyframe inserts a keyframe into the parameter's ordered list, replacing
// any keyframe already at the same time.
func (m *Memory) AddKeyframe(ctx context.Context, p ParameterRef, kf timeline.Keyframe) error {
	const op = "add keyframe"
	if err := m.guard(ctx, op, p.ClipID); err != nil {
		return wrap(op, p.String(), err)
	}
	entry, err := m.resolveParam(p)
	if err != nil {
		return wrap(op, p.String(), err)
	}
	applyAddKeyframe(entry, p.Name, kf)
	return nil
}

// ClearKeyframes removes every keyframe from the parameter, leaving it static.
func (m *Memory) ClearKeyframes(ctx context.Context, p ParameterRef) error {
	const op = "clear keyframes"
	if err := m.guard(ctx, op, p.ClipID); err != nil {
		return wrap(op, p.String(), err)
	}
	entry, err := m.resolveParam(p)
	if err != nil {
		return wrap(op, p.String(), err)
	}
	entry.SetParameterKeyframes(p.Name, nil)
	return nil
}

// SetStaticValue records the parameter's resting value.
func (m *Memory) SetStaticValue(ctx context.Context, p ParameterRef, value float64) error {
	const op = "set static value"
	if err := m.guard(ctx, op, p.ClipID); err != nil {
		return wrap(op, p.String(), err)
	}
	entry, err := m.resolveParam(p)
	if err != nil {
		return wrap(op, p.String(), err)
	}
	entry.SetParameter(p.Name, value)
	return nil
}

// AppendEffect applies a registry effect to the end of a clip's effect list
// with catalog defaults and returns a reference to the new entry.
func (m *Memory) AppendEffect(ctx context.Context, clipID, effectID string) (ComponentRef, error) {
	const op = "append effect"
	ref := ComponentRef{ClipID: clipID, EffectID: effectID}
	if err := m.guard(ctx, op, clipID); err != nil {
		return ComponentRef{}, wrap(op, ref.String(), err)
	}
	clip, _ := m.project.FindClip(clipID)
	if clip == nil {
		return ComponentRef{}, wrap(op, ref.String(), fmt.Errorf("clip %s: %w", clipID, ErrClipNotFound))
	}
	params, err := effects.Defaults(effectID)
	if err != nil {
		return ComponentRef{}, wrap(op, ref.String(), err)
	}
	entry := &timeline.AppliedEffect{
		ID:         uuid.NewString(),
		EffectID:   effectID,
		Parameters: params,
		Enabled:    true,
	}
	clip.AppendEffect(entry)
	ref.EntryID = entry.ID
	return ref, nil
}

// RemoveEffect deletes the referenced entry from its clip.
func (m *Memory) RemoveEffect(ctx context.Context, ref ComponentRef) error {
	const op = "remove effect"
	if err := m.guard(ctx, op, ref.ClipID); err != nil {
		return wrap(op, ref.String(), err)
	}
	clip, entry, err := m.resolveEntry(ref)
	if err != nil {
		return wrap(op, ref.String(), err)
	}
	clip.RemoveEffect(entry.ID)
	return nil
}

// Tx runs fn against a staging buffer. Every staged operation is validated as
// it is issued; writes land on the project only after fn returns nil, so a
// failed transaction leaves no partial animation behind.
func (m *Memory) Tx(ctx context.Context, fn func(Tx) error) error {
	if err := ctx.Err(); err != nil {
		return wrap("transaction", "", err)
	}
	tx := &memoryTx{host: m}
	if err := fn(tx); err != nil {
		return err
	}
	for _, write := range tx.writes {
		write()
	}
	return nil
}

type memoryTx struct {
	host   *Memory
	writes []func()
}

func (t *memoryTx) stage(op string, p ParameterRef, write func(entry *timeline.AppliedEffect)) error {
	if t.host.Fault != nil {
		if err := t.host.Fault(op, p.ClipID); err != nil {
			return wrap(op, p.String(), err)
		}
	}
	entry, err := t.host.resolveParam(p)
	if err != nil {
		return wrap(op, p.String(), err)
	}
	t.writes = append(t.writes, func() { write(entry) })
	return nil
}

func (t *memoryTx) SetTimeVarying(p ParameterRef, animated bool) error {
	return t.stage("set time varying", p, func(entry *timeline.AppliedEffect) {
		applyTimeVarying(entry, p.Name, animated)
	})
}

func (t *memoryTx) AddKeyframe(p ParameterRef, kf timeline.Keyframe) error {
	return t.stage("add keyframe", p, func(entry *timeline.AppliedEffect) {
		applyAddKeyframe(entry, p.Name, kf)
	})
}

func (t *memoryTx) ClearKeyframes(p ParameterRef) error {
	return t.stage("clear keyframes", p, func(entry *timeline.AppliedEffect) {
		entry.SetParameterKeyframes(p.Name, nil)
	})
}

func (t *memoryTx) SetStaticValue(p ParameterRef, value float64) error {
	return t.stage("set static value", p, func(entry *timeline.AppliedEffect) {
		entry.SetParameter(p.Name, value)
	})
}

func (m *Memory) resolveEntry(ref ComponentRef) (*timeline.Clip, *timeline.AppliedEffect, error) {
	clip, _ := m.project.FindClip(ref.ClipID)
	if clip == nil {
		return nil, nil, fmt.Errorf("clip %s: %w", ref.ClipID, ErrClipNotFound)
	}
	var entry *timeline.AppliedEffect
	switch {
	case ref.EntryID != "":
		entry = clip.FindEffect(ref.EntryID)
	case ref.EffectID != "":
		entry = clip.FindEffectByEffectID(ref.EffectID)
	}
	if entry == nil {
		return nil, nil, ErrComponentNotFound
	}
	return clip, entry, nil
}

func (m *Memory) resolveParam(p ParameterRef) (*timeline.AppliedEffect, error) {
	clip, _ := m.project.FindClip(p.ClipID)
	if clip == nil {
		return nil, fmt.Errorf("clip %s: %w", p.ClipID, ErrClipNotFound)
	}
	entry := clip.FindEffect(p.EntryID)
	if entry == nil {
		return nil, ErrComponentNotFound
	}
	if !parameterKnown(entry, p.Name) {
		return nil, fmt.Errorf("%q: %w", p.Name, ErrParameterNotFound)
	}
	return entry, nil
}

func parameterKnown(entry *timeline.AppliedEffect, name string) bool {
	if _, ok := entry.Parameter(name); ok {
		return true
	}
	desc, err := effects.Describe(entry.EffectID)
	if err != nil {
		return false
	}
	_, ok := desc.Parameter(name)
	return ok
}

func snapshotState(entry *timeline.AppliedEffect, name string) State {
	st := State{Keyframes: timeline.CloneKeyframes(entry.ParameterKeyframes(name))}
	st.TimeVarying = len(st.Keyframes) > 0
	if value, ok := entry.Parameter(name); ok {
		st.StaticValue = value
		return st
	}
	if desc, err := effects.Describe(entry.EffectID); err == nil {
		if param, ok := desc.Parameter(name); ok {
			st.StaticValue = param.Default
		}
	}
	return st
}

func applyTimeVarying(entry *timeline.AppliedEffect, name string, animated bool) {
	if !animated {
		entry.SetParameterKeyframes(name, nil)
	}
}

func applyAddKeyframe(entry *timeline.AppliedEffect, name string, kf timeline.Keyframe) {
	entry.SetParameterKeyframes(name, timeline.InsertKeyframe(entry.ParameterKeyframes(name), kf))
}
