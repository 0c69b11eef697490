package aegis

// Codec provides content-type aware marshaling of records.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v. Implementations must produce records
	// built from map[string]any, []any, []byte and scalars when v is a
	// *map[string]any.
	Unmarshal(data []byte, v any) error
}
