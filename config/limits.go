// Package config carries engine-wide interpreter limits and validates
// them against a JSON Schema when they arrive from an external
// document, rather than trusting the document's shape.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Limits bounds one interpreter Execute call. Both caps exist because
// Repeat and While make a script's token count only a weak bound on
// execution time.
type Limits struct {
	// MaxActivations caps the number of Activation values a single
	// Execute call may emit before it stops early.
	MaxActivations int `json:"max_activations"`
	// MaxDispatches caps the number of tokens a single Execute call
	// may dispatch before it stops early.
	MaxDispatches int `json:"max_dispatches"`
	// DebugEnabled records whether a caller wants per-token tracing.
	// interp.New does not read it: tracing is controlled only by the
	// sink passed to interp.New.
	DebugEnabled bool `json:"debug_enabled"`
}

// DefaultLimits returns the engine's defaults: 1024 activations, 100000
// dispatches, DebugEnabled false.
func DefaultLimits() Limits {
	return Limits{MaxActivations: 1024, MaxDispatches: 100_000}
}

const limitsSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"max_activations": {"type": "integer", "minimum": 1},
		"max_dispatches": {"type": "integer", "minimum": 1},
		"debug_enabled": {"type": "boolean"}
	},
	"required": ["max_activations", "max_dispatches"],
	"additionalProperties": false
}`

var limitsSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	const url = "schema://chesstack/limits.json"
	if err := compiler.AddResource(url, strings.NewReader(limitsSchemaJSON)); err != nil {
		panic(fmt.Sprintf("config: invalid embedded limits schema: %v", err))
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("config: failed to compile embedded limits schema: %v", err))
	}
	limitsSchema = schema
}

// LoadLimits reads a JSON document from r, validates it against the
// embedded limits schema, and decodes it into Limits. A document that
// fails schema validation is never decoded into Limits, so a caller
// can never end up with a half-decoded, partially-valid Limits value.
func LoadLimits(r io.Reader) (Limits, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Limits{}, fmt.Errorf("config: reading limits document: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Limits{}, fmt.Errorf("config: limits document is not valid JSON: %w", err)
	}
	if err := limitsSchema.Validate(doc); err != nil {
		return Limits{}, fmt.Errorf("config: limits document failed validation: %w", err)
	}

	var limits Limits
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&limits); err != nil {
		return Limits{}, fmt.Errorf("config: decoding limits document: %w", err)
	}
	return limits, nil
}
