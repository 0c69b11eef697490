package aegis

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way hashing for ActionHash.
type Hasher interface {
	// Hash returns the digest of plaintext as a string.
	// Salted hashers (argon2, bcrypt) embed salt and parameters in the result.
	Hash(plaintext string) (string, error)
}

// Argon2Params configures Argon2id hashing.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
	SaltLen uint32 // Salt length
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

type argon2Hasher struct {
	params Argon2Params
}

// Argon2Hasher returns an Argon2id hasher with the given parameters.
func Argon2Hasher(params Argon2Params) Hasher {
	return &argon2Hasher{params: params}
}

func (h *argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	sum := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

type bcryptHasher struct {
	cost int
}

// BcryptHasher returns a bcrypt hasher with the given cost.
func BcryptHasher(cost int) Hasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	sum, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(sum), nil
}

// digestHasher hex-encodes a deterministic digest.
type digestHasher func([]byte) []byte

func (h digestHasher) Hash(plaintext string) (string, error) {
	return hex.EncodeToString(h([]byte(plaintext))), nil
}

func sha256Digest(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func sha512Digest(b []byte) []byte {
	sum := sha512.Sum512(b)
	return sum[:]
}

// builtinHashers returns the hasher registry used by every Shield.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashSHA256: digestHasher(sha256Digest),
		HashSHA512: digestHasher(sha512Digest),
		HashArgon2: Argon2Hasher(DefaultArgon2Params()),
		HashBcrypt: BcryptHasher(bcrypt.DefaultCost),
	}
}
