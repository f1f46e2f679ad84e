package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"taskman/internal/task"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses an export format name. An empty string yields JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid format: %s", s)
}

// Export writes tasks to w, pretty-printed.
func Export(w io.Writer, tasks []task.Task, format Format) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	}
}

// ErrNotArray is returned by ParseImport when the payload is valid JSON
// but not an array.
var ErrNotArray = errors.New("invalid file: expected a JSON array")

// ImportError describes a schema violation at a location in the import
// payload.
type ImportError struct {
	Path string // JSON path, e.g. "[2]"
	Msg  string
}

func (e *ImportError) Error() string {
	if e.Path == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

const importSchemaURL = "taskman://import.schema.json"

// importSchema admits any array of records. Field values are not checked
// here: records are decoded field by field and unusable values take their
// defaults.
const importSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {"type": "object"}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func importValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(importSchemaURL, strings.NewReader(importSchema)); err != nil {
			schemaErr = fmt.Errorf("load import schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(importSchemaURL)
	})
	return compiledSchema, schemaErr
}

// ParseImport decodes and validates an import payload and returns the
// resolved task collection. The payload must be a JSON array of objects.
// Missing or mistyped fields take their load-time defaults and missing
// identifiers are generated with newID.
func ParseImport(data []byte, now time.Time, newID func() string) ([]task.Task, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value")
	}
	if _, ok := doc.([]any); !ok {
		return nil, ErrNotArray
	}

	schema, err := importValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var drafts []task.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("invalid task data: %w", err)
	}
	return task.ResolveAll(drafts, now, func(int) string { return newID() }), nil
}

// schemaError reduces a validation error to its most specific leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = mostSpecific(ve.Causes)
	}
	return &ImportError{Path: pointerToPath(ve.InstanceLocation), Msg: ve.Message}
}

// mostSpecific picks the cause located deepest in the instance. Among
// causes at the same depth a const or enum branch loses to any other
// keyword, since "value must be ..." says nothing about what was wrong.
func mostSpecific(causes []*jsonschema.ValidationError) *jsonschema.ValidationError {
	best := causes[0]
	for _, c := range causes[1:] {
		cd, bd := pointerDepth(c.InstanceLocation), pointerDepth(best.InstanceLocation)
		if cd > bd || (cd == bd && isLiteralCheck(best) && !isLiteralCheck(c)) {
			best = c
		}
	}
	return best
}

func pointerDepth(ptr string) int {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return 0
	}
	return strings.Count(ptr, "/") + 1
}

func isLiteralCheck(ve *jsonschema.ValidationError) bool {
	return strings.HasSuffix(ve.KeywordLocation, "/const") || strings.HasSuffix(ve.KeywordLocation, "/enum")
}

// pointerToPath turns "/2/priority" into "[2].priority".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		if isIndex(part) {
			fmt.Fprintf(&b, "[%s]", part)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
