package host

import "errors"

var (
	ErrClipNotFound      = errors.New("clip not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrParameterNotFound = errors.New("parameter not found")
)

// OpError records which surface operation failed and on what target. Batch
// execution catches these per clip and converts them into failure counts
// without losing the underlying cause.
type OpError struct {
	Op  string
	Ref string
	Err error
}

func (e *OpError) Error() string {
	msg := e.Op
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error { return e.Err }

func wrap(op, ref string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Ref: ref, Err: err}
}
