// Package estree decodes ESTree JSON (the interchange format acorn,
// espree and their kin emit) into the ast arena. The decoder keeps the
// fields the checks consume and folds everything else into generic
// nodes that still occupy the ancestor chain.
//
// Offsets in the input (`start`/`end`) are byte offsets into the
// normalized source the FileSet stores. Spans are validated on load:
// дерево, которое не сходится с исходником, отклоняется целиком.
package estree

import (
	"errors"
	"fmt"
	"sort"

	"fortio.org/safecast"
	"github.com/goccy/go-json"

	"estlint/internal/ast"
	"estlint/internal/source"
)

var (
	ErrInvalidJSON    = errors.New("estree: invalid json")
	ErrMissingField   = errors.New("estree: missing field")
	ErrSpanOutOfRange = errors.New("estree: span out of range")
	ErrBadPayload     = errors.New("estree: bad payload")
)

type loader struct {
	b      *ast.Builder
	file   *source.File
	srcLen uint32
}

// Load decodes an ESTree document into a new tree over file's content.
// The root must be a Program node.
func Load(file *source.File, data []byte) (*ast.Tree, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	srcLen, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: source too large", ErrSpanOutOfRange)
	}
	l := &loader{
		b:      ast.NewBuilder(nodeCountHint(data)),
		file:   file,
		srcLen: srcLen,
	}
	root, err := l.loadProgram(obj)
	if err != nil {
		return nil, err
	}
	l.b.SetRoot(root)
	return l.b.Tree, nil
}

// nodeCountHint sizes the arenas from the document length. ESTree nodes
// serialize to well over a hundred bytes each; underestimating just
// grows the slices.
func nodeCountHint(data []byte) uint {
	return uint(len(data)/128) + 8
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return obj, nil
}

func nodeType(obj map[string]json.RawMessage) (string, error) {
	raw, ok := obj["type"]
	if !ok {
		return "", fmt.Errorf("%w: type", ErrMissingField)
	}
	var typ string
	if err := json.Unmarshal(raw, &typ); err != nil {
		return "", fmt.Errorf("%w: type is not a string", ErrBadPayload)
	}
	return typ, nil
}

// spanOf reads start/end and validates them against the source length.
func (l *loader) spanOf(obj map[string]json.RawMessage, typ string) (source.Span, error) {
	start, err := l.offset(obj, typ, "start")
	if err != nil {
		return source.Span{}, err
	}
	end, err := l.offset(obj, typ, "end")
	if err != nil {
		return source.Span{}, err
	}
	if start > end || end > l.srcLen {
		return source.Span{}, fmt.Errorf("%w: %s %d..%d over %d bytes", ErrSpanOutOfRange, typ, start, end, l.srcLen)
	}
	return source.Span{File: l.file.ID, Start: start, End: end}, nil
}

func (l *loader) offset(obj map[string]json.RawMessage, typ, key string) (uint32, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrMissingField, typ, key)
	}
	var v int64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: %s.%s is not an integer", ErrBadPayload, typ, key)
	}
	off, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s.%s = %d", ErrSpanOutOfRange, typ, key, v)
	}
	return off, nil
}

func stringField(obj map[string]json.RawMessage, typ, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrMissingField, typ, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s.%s is not a string", ErrBadPayload, typ, key)
	}
	return s, nil
}

// boolField reads an optional boolean; absent and null mean false.
func boolField(obj map[string]json.RawMessage, key string) bool {
	raw, ok := obj[key]
	if !ok {
		return false
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

func isNull(raw json.RawMessage) bool {
	return firstNonSpace(raw) == 'n'
}

func firstNonSpace(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b
	}
	return 0
}

// structuralKey reports the fields every node carries besides its
// children; these never hold child nodes.
func structuralKey(key string) bool {
	switch key {
	case "type", "start", "end", "loc", "range":
		return true
	default:
		return false
	}
}

// loadChildren recurses over the object's remaining fields in sorted key
// order, turning every embedded node (or array of nodes) into a child.
func (l *loader) loadChildren(obj map[string]json.RawMessage, parent ast.NodeID) error {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		if !structuralKey(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := l.loadChild(obj[key], parent); err != nil {
			return err
		}
	}
	return nil
}

// loadChild loads one field value: object nodes and arrays of them
// become children, scalars and typeless objects are skipped.
func (l *loader) loadChild(raw json.RawMessage, parent ast.NodeID) error {
	switch firstNonSpace(raw) {
	case '{':
		obj, err := decodeObject(raw)
		if err != nil {
			return err
		}
		if _, ok := obj["type"]; !ok {
			return nil
		}
		_, err = l.loadNode(obj, parent)
		return err
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		for _, item := range items {
			if err := l.loadChild(item, parent); err != nil {
				return err
			}
		}
	}
	return nil
}
