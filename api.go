// Package aegis detects and treats personally identifiable information in
// nested, JSON-like records.
//
// A Shield walks a record, computes the dotted path of every leaf and
// decides what to do with it:
//
//   - An explicit FieldConfig for the exact path wins. It may redact, mask,
//     encrypt or hash the value.
//   - Otherwise the leaf name is matched against a table of
//     case-insensitive patterns (email, phone, ssn, ...). A match is
//     redacted, or encrypted with the global key when an EncryptionConfig
//     is present.
//   - Otherwise the value is left alone.
//
// Only string values are ever transformed. Every other scalar passes
// through under every action.
//
// # Paths
//
// Paths join mapping keys with dots from the root: "user.contact.email".
// Sequence indices are not part of the path, so every element of
// "user.emails" shares that path.
//
// # Basic Usage
//
//	shield, err := aegis.New(aegis.Config{
//	    Encryption: &aegis.EncryptionConfig{
//	        Algorithm: aegis.EncryptAES256CBC,
//	        Key:       key, // 32 bytes
//	        IV:        iv,  // 16 bytes
//	    },
//	    Fields: map[string]aegis.FieldConfig{
//	        "user.ssn":   {Action: aegis.ActionEncrypt},
//	        "user.card":  {Action: aegis.ActionMask, Mask: aegis.MaskCard},
//	        "user.notes": {Action: aegis.ActionRedact},
//	    },
//	})
//
//	protected, err := shield.HandlePII(ctx, record)
//	restored, err := shield.ReverseEffects(ctx, protected)
//
// ReverseEffects decrypts explicitly encrypted paths only. Redaction,
// masking and hashing are one-way, and heuristically encrypted values stay
// encrypted.
//
// # Ciphers
//
// Encryption is AES-CBC with PKCS#7 padding, rendered as lowercase hex.
// The IV always comes from the global EncryptionConfig; field keys
// override the global key. Identical plaintexts under the same key produce
// identical ciphertexts.
//
// # Hashers and Maskers
//
// Options register custom implementations or replace builtin ones:
//
//	shield, err := aegis.New(cfg,
//	    aegis.WithHasher(aegis.HashBcrypt, aegis.BcryptHasher(12)),
//	    aegis.WithMasker("first2", aegis.MaskerFunc(keepFirstTwo)),
//	)
//
// # Codecs
//
// A Processor pairs a Shield with a Codec to treat encoded payloads. The
// json, yaml, msgpack and bson subpackages provide codecs that decode into
// plain records.
//
//	proc := aegis.NewProcessor(shield, json.New())
//	out, err := proc.Protect(ctx, body)
//
// # Struct Tags
//
// FieldsFromStruct derives field configuration from pii struct tags:
//
//	type User struct {
//	    Email string `json:"email" pii:"mask:email"`
//	    SSN   string `json:"ssn" pii:"encrypt"`
//	}
//
// # Events
//
// Construction and every pass emit capitan signals with counts and timings.
// The package never logs.
package aegis
