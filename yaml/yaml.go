// Package yaml provides a YAML codec implementation.
package yaml

import (
	"fmt"

	"github.com/zoobzio/aegis"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements aegis.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() aegis.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v. Records decode with string keys
// throughout; non-string mapping keys are formatted with fmt.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return err
	}
	if m, ok := v.(*map[string]any); ok && *m != nil {
		for k, val := range *m {
			(*m)[k] = normalize(val)
		}
	}
	return nil
}

// normalize rewrites map[any]any mappings as map[string]any.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, elem := range val {
			val[k] = normalize(elem)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[fmt.Sprint(k)] = normalize(elem)
		}
		return out
	case []any:
		for i, elem := range val {
			val[i] = normalize(elem)
		}
		return val
	default:
		return v
	}
}
