// Package testing provides test utilities for aegis.
package testing

import (
	"testing"

	"github.com/zoobzio/aegis"
)

// TestKey returns a valid 32-byte AES-256 key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestFieldKey returns a second 32-byte key, distinct from TestKey.
func TestFieldKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("another-32-byte-key-for-fields!!")
}

// TestIV returns a valid 16-byte IV for testing.
func TestIV(tb testing.TB) []byte {
	tb.Helper()
	return []byte("16-byte-iv-value")
}

// TestEncryption returns a global AES-256-CBC configuration.
func TestEncryption(tb testing.TB) *aegis.EncryptionConfig {
	tb.Helper()
	return &aegis.EncryptionConfig{
		Algorithm: aegis.EncryptAES256CBC,
		Key:       TestKey(tb),
		IV:        TestIV(tb),
	}
}

// TestConfig returns a configuration exercising every action.
func TestConfig(tb testing.TB) aegis.Config {
	tb.Helper()
	return aegis.Config{
		Encryption: TestEncryption(tb),
		Fields: map[string]aegis.FieldConfig{
			"user.ssn":      {Action: aegis.ActionEncrypt},
			"user.card":     {Action: aegis.ActionMask, Mask: aegis.MaskCard},
			"user.password": {Action: aegis.ActionHash, Hash: aegis.HashSHA256},
			"user.notes":    {Action: aegis.ActionRedact, Redaction: "***"},
			"user.token":    {Action: aegis.ActionEncrypt, Key: TestFieldKey(tb)},
		},
	}
}

// TestShield returns a Shield built from TestConfig, failing tb on error.
func TestShield(tb testing.TB) *aegis.Shield {
	tb.Helper()
	s, err := aegis.New(TestConfig(tb))
	if err != nil {
		tb.Fatalf("aegis.New() error: %v", err)
	}
	return s
}

// SampleRecord returns a fresh nested record touching every value kind.
func SampleRecord() aegis.Record {
	return aegis.Record{
		"id": "rec-1",
		"user": map[string]any{
			"name":        "Alice Smith",
			"email":       "alice@example.com",
			"phoneNumber": "+1234567890",
			"ssn":         "123-45-6789",
			"card":        "4111-1111-1111-1111",
			"password":    "hunter2",
			"notes":       "call after 5pm",
			"token":       "tok_live_abcdef",
			"age":         int64(34),
			"verified":    true,
		},
		"contacts": []any{
			map[string]any{"email": "bob@example.com", "label": "work"},
			map[string]any{"email": "carol@example.com", "label": "home"},
		},
		"tags":  []any{"a", "b"},
		"empty": nil,
	}
}

// SampleUser is a tagged struct type for field derivation tests.
type SampleUser struct {
	ID       string `json:"id"`
	Email    string `json:"email" pii:"mask:email"`
	SSN      string `json:"ssn" pii:"encrypt"`
	Password string `json:"password" pii:"hash:sha256"`
	Note     string `json:"note" pii:"redact:***"`
	Address  struct {
		Street string `json:"street" pii:"redact"`
		City   string `json:"city"`
	} `json:"address"`
}
