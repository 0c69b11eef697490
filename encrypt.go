package aegis

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

// minCiphertextHex is the hex length of a single AES block.
const minCiphertextHex = 2 * aes.BlockSize

// Encrypt encrypts plaintext with algo under key and iv and returns the
// ciphertext as lowercase hex.
//
// Key and IV lengths are checked against algo before any ciphertext is
// produced; a mismatch returns a *ConfigError. The key is only used for the
// duration of the call.
func Encrypt(algo EncryptAlgo, plaintext string, key, iv []byte) (string, error) {
	return wrapCipher(ErrEncrypt, "encrypt", "")(encryptString(algo, plaintext, key, iv))
}

// Decrypt reverses Encrypt. The ciphertext must be lowercase hex covering
// whole cipher blocks. Wrong keys, wrong IVs and corrupted input surface as
// a *CipherError wrapping ErrCiphertextFormat, ErrBadPadding or
// ErrInvalidUTF8; the original plaintext is never guessed at.
func Decrypt(algo EncryptAlgo, ciphertext string, key, iv []byte) (string, error) {
	return wrapCipher(ErrDecrypt, "decrypt", "")(decryptString(algo, ciphertext, key, iv))
}

// wrapCipher attaches operation context to a cipher failure. Configuration
// failures pass through untouched so callers can tell them apart.
func wrapCipher(sentinel error, operation, field string) func(string, error) (string, error) {
	return func(out string, err error) (string, error) {
		if err == nil {
			return out, nil
		}
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			if field != "" && cfgErr.Field == "" {
				cfgErr.Field = field
			}
			return "", cfgErr
		}
		return "", newCipherError(sentinel, operation, field, err)
	}
}

func encryptString(algo EncryptAlgo, plaintext string, key, iv []byte) (string, error) {
	block, err := newBlock(algo, key, iv)
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	defer clear(padded)

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return hex.EncodeToString(out), nil
}

func decryptString(algo EncryptAlgo, ciphertext string, key, iv []byte) (string, error) {
	block, err := newBlock(algo, key, iv)
	if err != nil {
		return "", err
	}

	if !LooksEncrypted(ciphertext) || len(ciphertext)%(2*block.BlockSize()) != 0 {
		return "", fmt.Errorf("%w: want lowercase hex of whole %d-byte blocks, got %d chars",
			ErrCiphertextFormat, block.BlockSize(), len(ciphertext))
	}

	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCiphertextFormat, err)
	}

	plain := make([]byte, len(raw))
	defer clear(plain)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, raw)

	unpadded, err := pkcs7Unpad(plain, block.BlockSize())
	if err != nil {
		return "", err
	}
	if !utf8.Valid(unpadded) {
		return "", ErrInvalidUTF8
	}

	return string(unpadded), nil
}

// LooksEncrypted reports whether s has the shape of a ciphertext produced by
// Encrypt: lowercase hex, even length, at least one block long.
func LooksEncrypted(s string) bool {
	if len(s) < minCiphertextHex || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// newBlock validates sizes and builds a fresh block cipher for one call.
func newBlock(algo EncryptAlgo, key, iv []byte) (cipher.Block, error) {
	spec, ok := cipherSpecs[algo]
	if !ok {
		return nil, newConfigError(ErrUnknownAlgorithm, string(algo), "")
	}
	if len(key) != spec.keySize {
		return nil, &ConfigError{
			Err:       fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKey, spec.keySize, len(key)),
			Algorithm: string(algo),
		}
	}
	if len(iv) != spec.ivSize {
		return nil, &ConfigError{
			Err:       fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidIV, spec.ivSize, len(iv)),
			Algorithm: string(algo),
		}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, newConfigError(ErrInvalidKey, string(algo), "")
	}
	return block, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrBadPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrBadPadding
	}

	// Compare every padding byte before deciding.
	want := make([]byte, n)
	for i := range want {
		want[i] = byte(n)
	}
	if subtle.ConstantTimeCompare(data[len(data)-n:], want) != 1 {
		return nil, ErrBadPadding
	}

	return data[:len(data)-n], nil
}
