package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/agentdeck/internal/catalog"
)

// ListFields are the object keys that may hold the record list, in lookup
// order.
var ListFields = []string{"tools", "agents", "records", "items"}

var errNoList = fmt.Errorf("document is neither a list nor an object with a %s field",
	strings.Join(ListFields, ", "))

func decodeJSON(data []byte) ([]catalog.RawRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}

	switch data[0] {
	case '[':
		var raw []catalog.RawRecord
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		for _, field := range ListFields {
			list, ok := obj[field]
			if !ok {
				continue
			}
			var raw []catalog.RawRecord
			if err := json.Unmarshal(list, &raw); err != nil {
				return nil, fmt.Errorf("field %q: %w", field, err)
			}
			return raw, nil
		}
		return nil, errNoList
	default:
		return nil, errNoList
	}
}

func decodeYAML(data []byte) ([]catalog.RawRecord, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var raw []catalog.RawRecord
		if err := root.Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	case yaml.MappingNode:
		for _, field := range ListFields {
			// Mapping content alternates key, value.
			for i := 0; i+1 < len(root.Content); i += 2 {
				if root.Content[i].Value != field {
					continue
				}
				var raw []catalog.RawRecord
				if err := root.Content[i+1].Decode(&raw); err != nil {
					return nil, fmt.Errorf("field %q: %w", field, err)
				}
				return raw, nil
			}
		}
		return nil, errNoList
	default:
		return nil, errNoList
	}
}

// decodeCUE evaluates a CUE document and decodes the concrete result as
// JSON, so both schemas and loose scalars behave as in JSON catalogs.
func decodeCUE(filename string, data []byte) ([]catalog.RawRecord, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, err
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return decodeJSON(out)
}
