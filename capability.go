package aegis

// Action is the transformation applied to a configured field.
type Action string

const (
	// ActionRedact replaces the value with a fixed sentinel. Irreversible.
	ActionRedact Action = "redact"

	// ActionMask obscures all but a suffix of the value. Irreversible.
	ActionMask Action = "mask"

	// ActionEncrypt encrypts the value. Reversed by ReverseEffects.
	ActionEncrypt Action = "encrypt"

	// ActionHash replaces the value with a one-way digest. Irreversible.
	ActionHash Action = "hash"
)

// EncryptAlgo identifies a symmetric cipher construction.
type EncryptAlgo string

const (
	// EncryptAES128CBC is AES-128 in CBC mode with PKCS#7 padding.
	EncryptAES128CBC EncryptAlgo = "aes-128-cbc"

	// EncryptAES192CBC is AES-192 in CBC mode with PKCS#7 padding.
	EncryptAES192CBC EncryptAlgo = "aes-192-cbc"

	// EncryptAES256CBC is AES-256 in CBC mode with PKCS#7 padding.
	// It is used when an EncryptionConfig leaves Algorithm empty.
	EncryptAES256CBC EncryptAlgo = "aes-256-cbc"
)

// HashAlgo identifies a hashing algorithm for ActionHash.
type HashAlgo string

const (
	// HashSHA256 is a deterministic hex-encoded SHA-256 digest. The default.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 is a deterministic hex-encoded SHA-512 digest.
	HashSHA512 HashAlgo = "sha512"

	// HashArgon2 is a salted Argon2id encoding.
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt is a salted bcrypt encoding.
	HashBcrypt HashAlgo = "bcrypt"
)

// cipherSpec holds the size requirements of a cipher construction.
type cipherSpec struct {
	keySize int
	ivSize  int
}

// cipherSpecs lists every supported cipher construction.
var cipherSpecs = map[EncryptAlgo]cipherSpec{
	EncryptAES128CBC: {keySize: 16, ivSize: 16},
	EncryptAES192CBC: {keySize: 24, ivSize: 16},
	EncryptAES256CBC: {keySize: 32, ivSize: 16},
}

var validActions = map[Action]bool{
	ActionRedact:  true,
	ActionMask:    true,
	ActionEncrypt: true,
	ActionHash:    true,
}

var validHashAlgos = map[HashAlgo]bool{
	HashSHA256: true,
	HashSHA512: true,
	HashArgon2: true,
	HashBcrypt: true,
}

var validMaskTypes = map[MaskType]bool{
	MaskLast4: true,
	MaskEmail: true,
	MaskCard:  true,
	MaskPhone: true,
	MaskSSN:   true,
	MaskIP:    true,
	MaskName:  true,
}

// IsValidAction returns true if the action is known.
func IsValidAction(a Action) bool {
	return validActions[a]
}

// IsValidEncryptAlgo returns true if the algorithm is a supported cipher.
func IsValidEncryptAlgo(algo EncryptAlgo) bool {
	_, ok := cipherSpecs[algo]
	return ok
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}

// KeySize returns the key length in bytes required by algo, or 0 if unknown.
func KeySize(algo EncryptAlgo) int {
	return cipherSpecs[algo].keySize
}

// IVSize returns the IV length in bytes required by algo, or 0 if unknown.
func IVSize(algo EncryptAlgo) int {
	return cipherSpecs[algo].ivSize
}
