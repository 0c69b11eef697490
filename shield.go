package aegis

import (
	"context"
	"time"
)

// Record is a nested, JSON-like structure of mappings, sequences and scalars.
type Record = map[string]any

// Shield applies PII treatments to records. It is immutable after New and
// safe for concurrent use.
type Shield struct {
	encryption *EncryptionConfig
	fields     map[string]FieldConfig
	patterns   patternTable
	maskers    map[MaskType]Masker
	hashers    map[HashAlgo]Hasher
	maxDepth   int
}

// Option tunes a Shield at construction.
type Option func(*Shield)

// WithMaxDepth bounds container nesting. Records nested deeper than n fail
// with a ShapeError wrapping ErrMaxDepth. Zero disables the bound.
func WithMaxDepth(n int) Option {
	return func(s *Shield) {
		if n >= 0 {
			s.maxDepth = n
		}
	}
}

// WithHasher registers h under algo, replacing any builtin hasher of that
// name. Field entries may then name algo in FieldConfig.Hash.
//
//	aegis.WithHasher(aegis.HashArgon2, aegis.Argon2Hasher(params))
func WithHasher(algo HashAlgo, h Hasher) Option {
	return func(s *Shield) {
		if algo != "" && h != nil {
			s.hashers[algo] = h
		}
	}
}

// WithMasker registers m under mt, replacing any builtin masker of that
// name. Field entries may then name mt in FieldConfig.Mask.
func WithMasker(mt MaskType, m Masker) Option {
	return func(s *Shield) {
		if mt != "" && m != nil {
			s.maskers[mt] = m
		}
	}
}

// New validates cfg and returns a Shield that owns a deep copy of it.
//
// Every invalid entry is reported as a *ConfigError: unknown actions,
// malformed keys or IVs, encrypt entries with no usable key or IV, keys on
// non-encrypt entries, mask or hash formats that are neither builtin nor
// registered by an Option, and uncompilable patterns. A Shield is never
// returned alongside an error.
func New(cfg Config, opts ...Option) (*Shield, error) {
	s := &Shield{
		maskers: builtinMaskers(),
		hashers: builtinHashers(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := cfg.validate(s.maskers, s.hashers); err != nil {
		return nil, err
	}
	cfg = cfg.clone()

	table := cfg.Patterns
	if len(table) == 0 {
		table = defaultPatterns
	}
	patterns, err := compilePatterns(table)
	if err != nil {
		return nil, err
	}

	s.encryption = cfg.Encryption
	s.fields = cfg.Fields
	s.patterns = patterns

	emitShieldCreated(context.Background(), len(s.fields), len(s.patterns), s.encryption != nil)
	return s, nil
}

// HandlePII returns a copy of r with every PII leaf treated. Explicitly
// configured paths take their configured action; other leaves whose name
// matches the heuristic table are redacted, or encrypted when a global
// encryption config is present. The input is never modified.
func (s *Shield) HandlePII(ctx context.Context, r Record) (Record, error) {
	return s.run(ctx, r, false)
}

// ReverseEffects returns a copy of r with every explicitly encrypted path
// decrypted. Redacted, masked and hashed values are returned as they are,
// as are heuristically encrypted ones.
func (s *Shield) ReverseEffects(ctx context.Context, r Record) (Record, error) {
	return s.run(ctx, r, true)
}

func (s *Shield) run(ctx context.Context, r Record, reverse bool) (Record, error) {
	start := time.Now()
	emitStart(ctx, reverse)

	w := s.newWalker(reverse)
	out, err := w.mapping("", r)
	emitComplete(ctx, reverse, time.Since(start), w.stats, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
