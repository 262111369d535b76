// Package backup encodes the whole application state as portable JSON and
// reads it back. The persisted store entry and backup files share one layout.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sandeepkv93/studyboard/internal/calendar"
	"github.com/sandeepkv93/studyboard/internal/model"
)

const FilePrefix = "studyboard-backup-"

// FormatError reports backup text that cannot be turned into a state patch.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backup: %s: %v", e.Reason, e.Err)
	}
	return "backup: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// Export renders state with two-space indentation and a trailing newline.
func Export(state model.AppState) ([]byte, error) {
	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("backup: encode state: %w", err)
	}
	return append(out, '\n'), nil
}

// Encode is the compact form written to the key-value store.
func Encode(state model.AppState) ([]byte, error) {
	out, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("backup: encode state: %w", err)
	}
	return out, nil
}

// Decode parses data into a patch without checking entries. It fails when
// data is not JSON, or not an object at the top level, or when a present key
// has the wrong JSON type.
func Decode(data []byte) (model.StatePatch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.StatePatch{}, &FormatError{Reason: "empty input"}
	}
	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return model.StatePatch{}, &FormatError{Reason: "not valid JSON", Err: err}
	}
	if _, ok := probe.(map[string]any); !ok {
		return model.StatePatch{}, &FormatError{Reason: fmt.Sprintf("top level must be an object, got %s", jsonKind(probe))}
	}
	var patch model.StatePatch
	if err := json.Unmarshal(trimmed, &patch); err != nil {
		return model.StatePatch{}, &FormatError{Reason: "unexpected field type", Err: err}
	}
	return patch, nil
}

// Import decodes data and validates every present collection, so a bad
// backup is refused whole instead of being merged in part.
func Import(data []byte) (model.StatePatch, error) {
	patch, err := Decode(data)
	if err != nil {
		return model.StatePatch{}, err
	}
	if err := patch.Validate(); err != nil {
		return model.StatePatch{}, &FormatError{Reason: "invalid content", Err: err}
	}
	return patch, nil
}

// FileName embeds now's calendar date, e.g. studyboard-backup-2026-02-09.json.
func FileName(now time.Time) string {
	return FilePrefix + calendar.TodayAt(now) + ".json"
}

func ExportFile(path string, state model.AppState) error {
	data, err := Export(state)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("backup: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("backup: write %s: %w", path, err)
	}
	return nil
}

func ImportFile(path string) (model.StatePatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.StatePatch{}, fmt.Errorf("backup: read %s: %w", path, err)
	}
	return Import(data)
}

// IsFormatError reports whether err came from malformed backup content.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
