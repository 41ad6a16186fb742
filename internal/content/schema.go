package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("content: schema invalid")
	ErrSchemaValidation = errors.New("content: schema validation failed")
)

// ValidationIssue captures a single schema violation.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// baseItemSchema is the shape every category shares. Categories that track
// a lifecycle get the status marker appended; everything else rejects it.
func baseItemSchema() map[string]any {
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string", "minLength": 1},
			"type":        map[string]any{"type": "string"},
			"visible":     map[string]any{"type": "boolean"},
			"order":       map[string]any{"type": "integer", "minimum": 0},
			"updatedAt":   map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"content":     map[string]any{"type": "string"},
			"metadata":    map[string]any{"type": "object"},
		},
		"required":             []any{"title", "type"},
		"additionalProperties": false,
	}
}

// SchemaFor returns the JSON schema document for a content type.
func SchemaFor(t Type) map[string]any {
	schema := baseItemSchema()
	props := schema["properties"].(map[string]any)
	props["type"] = map[string]any{"const": string(t)}
	if t.SupportsStatus() {
		props["status"] = map[string]any{
			"enum": []any{
				string(StatusCompleted),
				string(StatusOngoing),
				string(StatusArchived),
			},
		}
	}
	return schema
}

var (
	compileMu sync.Mutex
	compiled  = map[Type]*jsonschema.Schema{}
)

func compiledSchemaFor(t Type) (*jsonschema.Schema, error) {
	compileMu.Lock()
	defer compileMu.Unlock()

	if schema, ok := compiled[t]; ok {
		return schema, nil
	}
	schema, err := compileSchema(SchemaFor(t))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled[t] = schema
	return schema, nil
}

// ValidateItem checks an item payload against its type's schema. Returns a
// PayloadValidationError carrying field-addressed issues on violation.
func ValidateItem(item Item) error {
	if !item.Type.Valid() {
		return &PayloadValidationError{Issues: []ValidationIssue{{
			Location: "/type",
			Message:  fmt.Sprintf("unknown content type %q", item.Type),
		}}}
	}

	schema, err := compiledSchemaFor(item.Type)
	if err != nil {
		return err
	}

	payload, err := itemPayload(item)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if err := schema.Validate(payload); err != nil {
		return &PayloadValidationError{Issues: Issues(err), Cause: err}
	}
	return nil
}

// itemPayload round-trips the item through JSON so the schema sees the
// exact wire shape, zero-value optional fields elided.
func itemPayload(item Item) (map[string]any, error) {
	encoded, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{}
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
