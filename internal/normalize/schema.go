package normalize

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/curblens/curbsign/internal/cds"

	_ "embed"
)

//go:embed schema.json
var signDataSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func signSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("cds.json", bytes.NewReader(signDataSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("cds.json")
	})
	return compiledSchema, schemaErr
}

// auditSchema checks the assembled record against the embedded CDS schema.
// The factories already enforce every hard invariant, so a mismatch here is
// a bug signal worth logging, never a reason to fail the call.
func (n *Normalizer) auditSchema(data *cds.SignData) {
	schema, err := signSchema()
	if err != nil {
		n.logger.Warn("failed to compile CDS schema", "error", err)
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		n.logger.Warn("failed to serialize sign data for schema audit", "error", err)
		return
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		n.logger.Warn("failed to decode sign data for schema audit", "error", err)
		return
	}

	if err := schema.Validate(doc); err != nil {
		n.logger.Warn("normalized sign data does not match CDS schema", "error", err)
	}
}
