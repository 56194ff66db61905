package markdown

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// blockSchema accepts one single-key operation object or an array of them.
// Payload contents are left to model decoding and the validator.
const blockSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "operation": {
      "type": "object",
      "minProperties": 1,
      "maxProperties": 1,
      "additionalProperties": {"type": "object"}
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/operation"},
    {"type": "array", "items": {"$ref": "#/definitions/operation"}}
  ]
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func checkShape(data []byte) error {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(blockSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("loading block schema: %w", schemaErr)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("expected an operation object or an array of operation objects: %s", strings.Join(details, "; "))
	}
	return nil
}
