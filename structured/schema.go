package structured

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/lootfilter/filter"
)

var (
	schemaOnce   = sync.OnceValues(buildSchema)
	resolvedOnce = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		s, err := schemaOnce()
		if err != nil {
			return nil, err
		}

		r, err := s.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolving schema: %w", err)
		}

		return r, nil
	})
)

// Schema returns the JSON Schema of [File]. The schema is shared between
// callers and must not be modified.
func Schema() (*jsonschema.Schema, error) {
	return schemaOnce()
}

func resolvedSchema() (*jsonschema.Resolved, error) {
	return resolvedOnce()
}

func buildSchema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[File](nil)
	if err != nil {
		return nil, fmt.Errorf("reflecting schema: %w", err)
	}

	s.Title = "Loot filter document"
	s.Description = "Structured form of a loot filter rule file."

	block := items(property(s, "blocks"))

	if t := property(block, "type"); t != nil {
		for _, bt := range filter.BlockTypes() {
			t.Enum = append(t.Enum, string(bt))
		}
	}

	if op := property(items(property(block, "lines")), "operator"); op != nil {
		op.Enum = []any{""}
		for _, o := range filter.Operators() {
			op.Enum = append(op.Enum, o)
		}
	}

	if key := property(items(property(block, "lines")), "key"); key != nil {
		key.MinLength = jsonschema.Ptr(1)
	}

	return s, nil
}

func property(s *jsonschema.Schema, name string) *jsonschema.Schema {
	if s == nil {
		return nil
	}

	return s.Properties[name]
}

func items(s *jsonschema.Schema) *jsonschema.Schema {
	if s == nil {
		return nil
	}

	return s.Items
}
