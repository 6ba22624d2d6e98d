package formats

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/level.schema.json
var levelSchema string

var (
	schemaOnce sync.Once
	compiled   *jsonschema.Schema
	compileErr error
)

func levelSchemaCompiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiled, compileErr = jsonschema.CompileString("level.schema.json", levelSchema)
	})
	return compiled, compileErr
}

// Validate checks a generically decoded level document (maps, slices and
// scalars as produced by the TOML or YAML decoders) against the level schema.
func Validate(doc any) error {
	schema, err := levelSchemaCompiled()
	if err != nil {
		return fmt.Errorf("formats: compile level schema: %w", err)
	}

	// Round-trip through JSON so numbers and maps have the shapes the
	// validator expects regardless of the source decoder.
	raw, err := json.Marshal(doc)
	if err != nil {
		return ParseError{Code: CodeSchema, Message: err.Error()}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ParseError{Code: CodeSchema, Message: err.Error()}
	}

	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			at := leaf.InstanceLocation
			if at == "" {
				at = "/"
			}
			return ParseError{Code: CodeSchema, Message: fmt.Sprintf("%s: %s", at, leaf.Message)}
		}
		return ParseError{Code: CodeSchema, Message: err.Error()}
	}
	return nil
}

func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
