package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBase = "https://tetris.invalid/schemas/"

// Schema names.
const (
	SchemaClient   = "client.schema.json"
	SchemaWelcome  = "welcome.schema.json"
	SchemaState    = "state.schema.json"
	SchemaManifest = "manifest.schema.json"
)

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func compileSchemas() {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	names := []string{SchemaClient, SchemaWelcome, SchemaState, SchemaManifest}
	for _, name := range names {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			schemasErr = fmt.Errorf("protocol: read schema %s: %w", name, err)
			return
		}
		if err := c.AddResource(schemaBase+name, bytes.NewReader(b)); err != nil {
			schemasErr = fmt.Errorf("protocol: add schema %s: %w", name, err)
			return
		}
	}

	schemas = make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		s, err := c.Compile(schemaBase + name)
		if err != nil {
			schemasErr = fmt.Errorf("protocol: compile %s: %w", name, err)
			return
		}
		schemas[name] = s
	}
}

// Schema returns a compiled embedded schema.
func Schema(name string) (*jsonschema.Schema, error) {
	schemasOnce.Do(compileSchemas)
	if schemasErr != nil {
		return nil, schemasErr
	}
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("protocol: unknown schema %q", name)
	}
	return s, nil
}

// Validate checks raw JSON against the named schema.
func Validate(name string, raw []byte) error {
	s, err := Schema(name)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("protocol: decode: %w", err)
	}
	return s.Validate(v)
}

// ValidateValue marshals v and validates it against the named schema.
func ValidateValue(name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("protocol: encode: %w", err)
	}
	return Validate(name, b)
}

// DecodeClient validates and decodes a client message.
func DecodeClient(raw []byte) (ClientMsg, error) {
	var m ClientMsg
	if err := Validate(SchemaClient, raw); err != nil {
		return m, err
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("protocol: decode: %w", err)
	}
	return m, nil
}
