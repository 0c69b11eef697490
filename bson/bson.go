// Package bson provides a BSON codec implementation.
package bson

import (
	"github.com/zoobzio/aegis"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bsonCodec implements aegis.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() aegis.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v. When v is a record, embedded
// documents, arrays and generic binary values are converted to
// map[string]any, []any and []byte respectively.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*map[string]any)
	if !ok {
		return bson.Unmarshal(data, v)
	}

	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	*m = document(doc)
	return nil
}

func document(doc primitive.D) map[string]any {
	out := make(map[string]any, len(doc))
	for _, e := range doc {
		out[e.Key] = normalize(e.Value)
	}
	return out
}

func normalize(v any) any {
	switch val := v.(type) {
	case primitive.D:
		return document(val)
	case primitive.M:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalize(elem)
		}
		return out
	case primitive.A:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalize(elem)
		}
		return out
	case primitive.Binary:
		if val.Subtype == 0x00 { // generic binary
			return val.Data
		}
		return val
	default:
		return v
	}
}
