package configloader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "exprcst.schema.json"

//go:embed schema.json
var schemaJSON string

//nolint:gochecknoglobals // compiled once, read-only afterwards
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	return schema, nil
})

// Schema returns the JSON Schema that configuration files must satisfy.
func Schema() string {
	return schemaJSON
}

// ValidateDocument checks a YAML configuration document against the
// configuration schema. Unknown keys and values of the wrong type are
// reported before the document is decoded. An empty document is valid.
func ValidateDocument(content []byte) error {
	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}
	if doc == nil {
		return nil
	}

	// The validator works on JSON values, so route the document through
	// encoding/json to normalize YAML scalars.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config must be a mapping with string keys: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("normalize config: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(value); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("schema violation: %s", describeViolation(verr))
		}
		return fmt.Errorf("schema violation: %w", err)
	}
	return nil
}

// describeViolation flattens the innermost causes of a schema error into
// "location: message" pairs.
func describeViolation(verr *jsonschema.ValidationError) string {
	var parts []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			parts = append(parts, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(parts, "; ")
}
