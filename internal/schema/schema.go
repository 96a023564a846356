// Package schema checks the structural shape of manifest data before path
// validation runs: plugins must be a list, plugin names must be non-empty
// strings, and reference fields must be lists of strings. Fields the path
// validator does not depend on are left open.
package schema

import (
	"embed"
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Error describes one structural violation in the manifest.
type Error struct {
	Message string
}

// Validator checks raw manifest data against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
	loaded bool
}

// NewValidator compiles the embedded schemas. A schema that fails to load
// leaves the validator inert rather than failing the whole run.
func NewValidator() *Validator {
	v := &Validator{ctx: cuecontext.New()}

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return v
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(filepath.Join("schemas", entry.Name()))
		if err != nil {
			continue
		}
		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if inst.Err() != nil {
			continue
		}
		v.schema = inst.Value()
		v.loaded = true
		break
	}
	return v
}

// Validate checks raw manifest data (decoded JSON/YAML as map[string]any)
// against the #Marketplace definition. Returns nil when the shape is fine
// or when no schema is loaded.
func (v *Validator) Validate(data map[string]any) []Error {
	if !v.loaded {
		return nil
	}

	def := v.schema.LookupPath(cue.ParsePath("#Marketplace"))
	if !def.Exists() {
		return nil
	}

	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return []Error{{Message: fmt.Sprintf("cannot encode manifest data: %v", err)}}
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return []Error{{Message: fmt.Sprintf("manifest shape invalid: %v", err)}}
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return []Error{{Message: fmt.Sprintf("manifest shape invalid: %v", err)}}
	}
	return nil
}
