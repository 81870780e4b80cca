package strategy

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a struct to a JSON schema. Nested types are emitted
// as $defs so recursive types terminate.
func ToJSONSchema[T any](t T, title string) (string, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	schema := r.Reflect(t)

	if title != "" {
		schema.Title = title
	}

	jsonSchemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
