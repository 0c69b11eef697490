// Package json provides a JSON codec implementation.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/zoobzio/aegis"
)

// ErrTrailingData is returned when a document is followed by more input.
var ErrTrailingData = errors.New("json: trailing data after document")

// jsonCodec implements aegis.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec. Numbers decode as json.Number so that they
// survive a round trip without float conversion.
func New() aegis.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes a single JSON document into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return ErrTrailingData
	}
	return nil
}
