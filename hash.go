package veil

import (
	"crypto/md5" //nolint:gosec // digest compatibility with the original rule set, not a security primitive
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// defaultNumberLength is the modulus width used by md5's as_number mode.
const defaultNumberLength = 8

// md5Hex returns the lowercase hex digest of the UTF-8 encoding of s.
// Shared with the fiscal-code derivation, which slices the same digest.
func md5Hex(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// alterMD5 hashes the value with MD5.
//
// Arguments: as_number (bool) switches to a numeric rendering, the digest
// interpreted base-16 modulo 10^as_number_length (default 8), returned as
// decimal digits.
func alterMD5(original string, args Args) (Value, error) {
	digest := md5Hex(original)
	if !args.Bool("as_number") {
		return NewValue(digest), nil
	}

	length := args.IntDefault("as_number_length", defaultNumberLength)
	if length < 1 {
		return Null(), invalidArg("md5", "as_number_length must be positive, got %d", length)
	}

	n, ok := new(big.Int).SetString(digest, 16)
	if !ok {
		return Null(), invalidArg("md5", "digest %q is not hexadecimal", digest)
	}
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	return NewValue(n.Mod(n, mod).String()), nil
}

// HashAlgo represents a supported strong-hash algorithm for the hash
// provider.
type HashAlgo string

const (
	// HashArgon2 uses Argon2id (salted, slow). Output is not deterministic.
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt (salted, slow). Output is not deterministic.
	HashBcrypt HashAlgo = "bcrypt"

	// HashSHA256 uses SHA-256 for deterministic pseudonymization.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 for deterministic pseudonymization.
	HashSHA512 HashAlgo = "sha512"
)

// Hasher performs one-way hashing.
type Hasher interface {
	// Hash returns the hash of plaintext as a string.
	// For password hashers (argon2, bcrypt), the result includes salt and
	// parameters. For deterministic hashers the result is hex-encoded.
	Hash(plaintext []byte) (string, error)
}

// Argon2Params configures Argon2id hashing.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
	SaltLen uint32 // Salt length
}

// DefaultArgon2Params returns recommended Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024, // 64 MiB
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

type argon2Hasher struct {
	params Argon2Params
}

// Argon2 returns an Argon2id hasher with default parameters.
func Argon2() Hasher {
	return &argon2Hasher{params: DefaultArgon2Params()}
}

func (h *argon2Hasher) Hash(plaintext []byte) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(plaintext, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

type bcryptHasher struct {
	cost int
}

// Bcrypt returns a bcrypt hasher with default cost.
func Bcrypt() Hasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *bcryptHasher) Hash(plaintext []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(plaintext, h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(hash), nil
}

type sha256Hasher struct{}

// SHA256Hasher returns a SHA-256 hasher. The result is a hex-encoded
// 64-character string.
func SHA256Hasher() Hasher {
	return &sha256Hasher{}
}

func (h *sha256Hasher) Hash(plaintext []byte) (string, error) {
	sum := sha256.Sum256(plaintext)
	return hex.EncodeToString(sum[:]), nil
}

type sha512Hasher struct{}

// SHA512Hasher returns a SHA-512 hasher. The result is a hex-encoded
// 128-character string.
func SHA512Hasher() Hasher {
	return &sha512Hasher{}
}

func (h *sha512Hasher) Hash(plaintext []byte) (string, error) {
	sum := sha512.Sum512(plaintext)
	return hex.EncodeToString(sum[:]), nil
}

// builtinHashers returns the default hasher set for the hash provider.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashArgon2: Argon2(),
		HashBcrypt: Bcrypt(),
		HashSHA256: SHA256Hasher(),
		HashSHA512: SHA512Hasher(),
	}
}

// hashProvider hashes values with a configurable strong algorithm.
type hashProvider struct {
	hashers map[HashAlgo]Hasher
}

func newHashProvider() *hashProvider {
	return &hashProvider{hashers: builtinHashers()}
}

// AlterValue hashes the value.
//
// Arguments: algorithm (sha256, sha512, argon2, bcrypt; default sha256).
func (p *hashProvider) AlterValue(original string, args Args) (Value, error) {
	algo := HashAlgo(args.StringDefault("algorithm", string(HashSHA256)))
	h, ok := p.hashers[algo]
	if !ok {
		return Null(), invalidArg("hash", "unknown algorithm %q", algo)
	}
	out, err := h.Hash([]byte(original))
	if err != nil {
		return Null(), err
	}
	return NewValue(out), nil
}
