package aegis

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidKey indicates an encryption key does not match the algorithm's key size.
	ErrInvalidKey = errors.New("invalid key size")

	// ErrInvalidIV indicates an IV does not match the algorithm's block size.
	ErrInvalidIV = errors.New("invalid iv size")

	// ErrUnknownAlgorithm indicates an unsupported cipher algorithm.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrInvalidAction indicates a field entry names an unknown action.
	ErrInvalidAction = errors.New("invalid action")

	// ErrMissingKey indicates an encrypt entry has neither a field key nor a default key.
	ErrMissingKey = errors.New("missing encryption key")

	// ErrMissingIV indicates encryption is configured without a global IV.
	ErrMissingIV = errors.New("missing iv")

	// ErrUnexpectedKey indicates a field key was given for a non-encrypt action.
	ErrUnexpectedKey = errors.New("key only valid for encrypt")

	// ErrInvalidPattern indicates a heuristic pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidMaskType indicates an unknown mask type.
	ErrInvalidMaskType = errors.New("invalid mask type")

	// ErrInvalidHashAlgo indicates an unknown hash algorithm.
	ErrInvalidHashAlgo = errors.New("invalid hash algorithm")

	// ErrEncrypt indicates encryption of a field failed.
	ErrEncrypt = errors.New("encrypt failed")

	// ErrDecrypt indicates decryption of a field failed.
	ErrDecrypt = errors.New("decrypt failed")

	// ErrHash indicates hashing of a field failed.
	ErrHash = errors.New("hash failed")

	// ErrCiphertextFormat indicates a ciphertext is not lowercase hex of whole blocks.
	ErrCiphertextFormat = errors.New("malformed ciphertext")

	// ErrBadPadding indicates PKCS#7 padding did not verify after decryption.
	ErrBadPadding = errors.New("bad padding")

	// ErrInvalidUTF8 indicates decrypted bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("plaintext is not valid utf-8")

	// ErrCyclicRecord indicates a record contains itself.
	ErrCyclicRecord = errors.New("cyclic record")

	// ErrMaxDepth indicates a record nests deeper than the configured limit.
	ErrMaxDepth = errors.New("max depth exceeded")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// ConfigError represents an invalid shield configuration.
// It wraps a sentinel error with the field path and algorithm involved.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrInvalidKey, etc.)
	Field     string // Field path that triggered the error, empty for global config
	Algorithm string // Algorithm, mask type or hash algorithm that was invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CipherError represents a failed transformation of a single field.
// Err is ErrEncrypt, ErrDecrypt, or ErrHash; Cause is the underlying failure.
type CipherError struct {
	Err       error
	Field     string
	Operation string
	Cause     error
}

func (e *CipherError) Error() string {
	msg := e.Operation
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the operation sentinel and the cause to errors.Is.
func (e *CipherError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ShapeError represents a record whose structure cannot be traversed.
type ShapeError struct {
	Err  error  // ErrCyclicRecord or ErrMaxDepth
	Path string // Path of the container where traversal stopped
}

func (e *ShapeError) Error() string {
	if e.Path == "" {
		return e.Err.Error() + " at root"
	}
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Path)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

func newCipherError(sentinel error, operation, field string, cause error) error {
	return &CipherError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

func newShapeError(sentinel error, path string) error {
	return &ShapeError{Err: sentinel, Path: path}
}

func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
