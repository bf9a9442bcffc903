// Package intent decodes the JSON action documents the natural-language
// collaborator produces into dispatchable actions. Decoding checks shape
// only; whether a tag or parameter makes sense is the dispatcher's call.
package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"splice/internal/dispatch"
)

// Document is the wire shape of one requested edit. Confidence and Error
// come from the interpretation layer; the engine displays them but never
// acts on them.
type Document struct {
	Action     string         `json:"action"`
	ClipIDs    []string       `json:"clip_ids,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Message    string         `json:"message,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Convert turns a document into a dispatchable action. Tags are lower-cased
// so upstream spellings like "ZOOM" address the same edit.
func Convert(d Document) dispatch.Action {
	return dispatch.Action{
		Tag:        dispatch.Tag(strings.ToLower(strings.TrimSpace(d.Action))),
		ClipIDs:    d.ClipIDs,
		Parameters: d.Parameters,
		Message:    d.Message,
	}
}

// Decode parses one action document or a list of them.
func Decode(data []byte) ([]Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("intent: empty input")
	}
	if trimmed[0] == '[' {
		var docs []Document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("intent: decode action list: %w", err)
		}
		return validated(docs)
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("intent: decode action: %w", err)
	}
	return validated([]Document{doc})
}

// Read decodes an action document stream, typically stdin or a file.
func Read(r io.Reader) ([]Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("intent: read input: %w", err)
	}
	return Decode(data)
}

// Actions converts a decoded batch in order.
func Actions(docs []Document) []dispatch.Action {
	actions := make([]dispatch.Action, 0, len(docs))
	for _, doc := range docs {
		actions = append(actions, Convert(doc))
	}
	return actions
}

func validated(docs []Document) ([]Document, error) {
	if len(docs) == 0 {
		return nil, errors.New("intent: no actions in input")
	}
	for i := range docs {
		if strings.TrimSpace(docs[i].Action) == "" {
			return nil, fmt.Errorf("intent: document %d is missing its action tag", i+1)
		}
	}
	return docs, nil
}
