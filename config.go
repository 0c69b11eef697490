package aegis

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRedaction replaces redacted string values.
const DefaultRedaction = "[REDACTED]"

// Config is the full configuration of a Shield. Every field is optional.
type Config struct {
	// Encryption is the global cipher configuration. When present, heuristic
	// matches are encrypted instead of redacted, and every encrypt action
	// takes its IV from here.
	Encryption *EncryptionConfig

	// Fields maps exact dotted field paths to explicit actions.
	Fields map[string]FieldConfig

	// Patterns replaces the heuristic pattern table when non-empty.
	// See DefaultPatterns.
	Patterns []string
}

// EncryptionConfig names a cipher and the default key and shared IV.
type EncryptionConfig struct {
	Algorithm EncryptAlgo // Empty means EncryptAES256CBC
	Key       []byte
	IV        []byte
}

// FieldConfig is the explicit treatment of one field path.
type FieldConfig struct {
	Action Action

	// Key overrides the default key. Encrypt only.
	Key []byte

	// Mask selects the masking format. Mask only; empty means MaskLast4.
	Mask MaskType

	// Hash selects the hash algorithm. Hash only; empty means HashSHA256.
	Hash HashAlgo

	// Redaction replaces the value. Redact only; empty means DefaultRedaction.
	Redaction string
}

// algorithm returns the configured algorithm or the default.
func (c *EncryptionConfig) algorithm() EncryptAlgo {
	if c.Algorithm == "" {
		return EncryptAES256CBC
	}
	return c.Algorithm
}

// validate checks the configuration without mutating it. Mask and hash
// names must be present in the given registries.
func (c Config) validate(maskers map[MaskType]Masker, hashers map[HashAlgo]Hasher) error {
	algo := EncryptAES256CBC
	if c.Encryption != nil {
		algo = c.Encryption.algorithm()
		spec, ok := cipherSpecs[algo]
		if !ok {
			return newConfigError(ErrUnknownAlgorithm, string(algo), "")
		}
		if len(c.Encryption.Key) != spec.keySize {
			return &ConfigError{
				Err:       fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, spec.keySize, len(c.Encryption.Key)),
				Algorithm: string(algo),
			}
		}
		if len(c.Encryption.IV) != spec.ivSize {
			return &ConfigError{
				Err:       fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidIV, spec.ivSize, len(c.Encryption.IV)),
				Algorithm: string(algo),
			}
		}
	}

	for path, fc := range c.Fields {
		if !IsValidAction(fc.Action) {
			return newConfigError(ErrInvalidAction, string(fc.Action), path)
		}
		if len(fc.Key) > 0 && fc.Action != ActionEncrypt {
			return newConfigError(ErrUnexpectedKey, "", path)
		}

		switch fc.Action {
		case ActionEncrypt:
			if fc.Key == nil && c.Encryption == nil {
				return newConfigError(ErrMissingKey, string(algo), path)
			}
			if c.Encryption == nil {
				return newConfigError(ErrMissingIV, string(algo), path)
			}
			if want := KeySize(algo); fc.Key != nil && len(fc.Key) != want {
				return &ConfigError{
					Err:       fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, want, len(fc.Key)),
					Algorithm: string(algo),
					Field:     path,
				}
			}
		case ActionMask:
			if _, ok := maskers[fc.Mask]; fc.Mask != "" && !ok {
				return newConfigError(ErrInvalidMaskType, string(fc.Mask), path)
			}
		case ActionHash:
			if _, ok := hashers[fc.Hash]; fc.Hash != "" && !ok {
				return newConfigError(ErrInvalidHashAlgo, string(fc.Hash), path)
			}
		}
	}

	return nil
}

// clone returns a deep copy so that the Shield is the sole owner of its key material.
func (c Config) clone() Config {
	out := Config{Patterns: append([]string(nil), c.Patterns...)}
	if c.Encryption != nil {
		out.Encryption = &EncryptionConfig{
			Algorithm: c.Encryption.algorithm(),
			Key:       bytes.Clone(c.Encryption.Key),
			IV:        bytes.Clone(c.Encryption.IV),
		}
	}
	out.Fields = make(map[string]FieldConfig, len(c.Fields))
	for path, fc := range c.Fields {
		fc.Key = bytes.Clone(fc.Key)
		out.Fields[path] = fc
	}
	return out
}

// configFile is the YAML layout of a Config. Key material is hex-encoded.
type configFile struct {
	Encryption *struct {
		Algorithm string `yaml:"algorithm"`
		Key       string `yaml:"key"`
		IV        string `yaml:"iv"`
	} `yaml:"encryption"`
	Fields map[string]struct {
		Action    string `yaml:"action"`
		Key       string `yaml:"key,omitempty"`
		Mask      string `yaml:"mask,omitempty"`
		Hash      string `yaml:"hash,omitempty"`
		Redaction string `yaml:"redaction,omitempty"`
	} `yaml:"fields"`
	Patterns []string `yaml:"patterns,omitempty"`
}

// ParseConfig decodes a YAML configuration document:
//
//	encryption:
//	  algorithm: aes-256-cbc
//	  key: <64 hex chars>
//	  iv: <32 hex chars>
//	fields:
//	  user.email: {action: redact}
//	  user.ssn: {action: encrypt, key: <hex>}
//	patterns: ["email", "phone"]
//
// The result is not validated; New does that.
func ParseConfig(data []byte) (Config, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Config{Patterns: file.Patterns}

	if file.Encryption != nil {
		key, err := hex.DecodeString(file.Encryption.Key)
		if err != nil {
			return Config{}, newConfigError(fmt.Errorf("%w: key is not hex: %w", ErrInvalidKey, err), file.Encryption.Algorithm, "")
		}
		iv, err := hex.DecodeString(file.Encryption.IV)
		if err != nil {
			return Config{}, newConfigError(fmt.Errorf("%w: iv is not hex: %w", ErrInvalidIV, err), file.Encryption.Algorithm, "")
		}
		cfg.Encryption = &EncryptionConfig{
			Algorithm: EncryptAlgo(file.Encryption.Algorithm),
			Key:       key,
			IV:        iv,
		}
	}

	if len(file.Fields) > 0 {
		cfg.Fields = make(map[string]FieldConfig, len(file.Fields))
	}
	for path, f := range file.Fields {
		fc := FieldConfig{
			Action:    Action(f.Action),
			Mask:      MaskType(f.Mask),
			Hash:      HashAlgo(f.Hash),
			Redaction: f.Redaction,
		}
		if f.Key != "" {
			key, err := hex.DecodeString(f.Key)
			if err != nil {
				return Config{}, newConfigError(fmt.Errorf("%w: key is not hex: %w", ErrInvalidKey, err), "", path)
			}
			fc.Key = key
		}
		cfg.Fields[path] = fc
	}

	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}
