package luarc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrNotObject is returned when a document is valid JSON but not a JSON object.
var ErrNotObject = errors.New("luarc document must be a JSON object")

// ErrInvalidOwnedKeys is returned when a rendered document does not match the shape
// expected for the keys luarcsync writes.
var ErrInvalidOwnedKeys = errors.New("luarc owned keys are invalid")

const objectSchema = `{"type": "object"}`

var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"module": map[string]any{"type": "string", "minLength": 1},
		"types":  stringArraySchema,
		"file":   map[string]any{"type": "string", "minLength": 1},
	},
	"required":             []string{"types", "file"},
	"additionalProperties": false,
}

var stringArraySchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string", "minLength": 1},
}

// validateObject checks that data is a JSON object.
func validateObject(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(objectSchema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w:%s", ErrNotObject, describe(result))
	}
	return nil
}

// validateOwned checks the keys written for u in the rendered document data.
func validateOwned(data []byte, u Update) error {
	libraryKey, typesKey := u.keys()
	properties := map[string]any{
		libraryKey: stringArraySchema,
	}
	required := []string{libraryKey}
	if u.WithPluginTypes {
		properties[typesKey] = map[string]any{
			"type":  "array",
			"items": recordSchema,
		}
		required = append(required, typesKey)
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate owned keys: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w:%s", ErrInvalidOwnedKeys, describe(result))
	}
	return nil
}

func describe(result *gojsonschema.Result) string {
	var errs strings.Builder
	for _, desc := range result.Errors() {
		fmt.Fprintf(&errs, "\n- %s", desc)
	}
	return errs.String()
}
