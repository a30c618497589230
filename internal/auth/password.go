package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Parameters used for every newly hashed password.
const (
	HashAlgorithm  = "pbkdf2"
	HashDigest     = "sha256"
	HashIterations = 120_000
	SaltLength     = 16
	KeyLength      = 32
)

// Bounds accepted when reading a stored hash.
const (
	MinHashIterations = 10_000
	MaxHashIterations = 10_000_000
	maxDigestLength   = 128
)

const hashSeparator = "$"

var b64 = base64.RawURLEncoding.Strict()

var digests = map[string]func() hash.Hash{
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// EncodedHash is the parsed form of a stored password hash:
//
//	pbkdf2$<digest>$<iterations>$<b64url salt>$<b64url key>
type EncodedHash struct {
	Digest     string
	Iterations int
	Salt       []byte
	Key        []byte
}

// String renders the hash in its storage format.
func (h EncodedHash) String() string {
	return strings.Join([]string{
		HashAlgorithm,
		h.Digest,
		strconv.Itoa(h.Iterations),
		b64.EncodeToString(h.Salt),
		b64.EncodeToString(h.Key),
	}, hashSeparator)
}

// HashPassword derives a PBKDF2-HMAC-SHA256 key from password under a fresh
// random salt and returns it in storage format. Two calls with the same
// password return different strings.
func HashPassword(password string) string {
	salt := make([]byte, SaltLength)
	// crypto/rand.Read never returns an error; it aborts the process instead.
	_, _ = rand.Read(salt)

	return EncodedHash{
		Digest:     HashDigest,
		Iterations: HashIterations,
		Salt:       salt,
		Key:        pbkdf2.Key([]byte(password), salt, HashIterations, KeyLength, sha256.New),
	}.String()
}

// VerifyPassword reports whether password matches the stored hash. Any
// malformed or unsupported stored value yields false.
func VerifyPassword(password, encoded string) bool {
	h, err := ParseEncodedHash(encoded)
	if err != nil {
		return false
	}

	derived := pbkdf2.Key([]byte(password), h.Salt, h.Iterations, len(h.Key), digests[h.Digest])
	return subtle.ConstantTimeCompare(derived, h.Key) == 1
}

// ParseEncodedHash validates and decodes a stored password hash.
func ParseEncodedHash(s string) (EncodedHash, error) {
	parts := strings.Split(s, hashSeparator)
	if len(parts) != 5 {
		return EncodedHash{}, fmt.Errorf("%w: expected 5 fields, got %d", ErrMalformedHash, len(parts))
	}

	if parts[0] != HashAlgorithm {
		return EncodedHash{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, parts[0])
	}

	if _, ok := digests[parts[1]]; !ok {
		return EncodedHash{}, fmt.Errorf("%w: %q", ErrUnsupportedDigest, parts[1])
	}

	if !isDigits(parts[2]) {
		return EncodedHash{}, fmt.Errorf("%w: iterations %q", ErrMalformedHash, parts[2])
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations < MinHashIterations || iterations > MaxHashIterations {
		return EncodedHash{}, fmt.Errorf("%w: %s", ErrIterationsOutOfRange, parts[2])
	}

	salt, err := b64.DecodeString(parts[3])
	if err != nil || len(salt) == 0 {
		return EncodedHash{}, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}

	key, err := b64.DecodeString(parts[4])
	if err != nil || len(key) == 0 || len(key) > maxDigestLength {
		return EncodedHash{}, fmt.Errorf("%w: bad digest", ErrMalformedHash)
	}

	return EncodedHash{
		Digest:     parts[1],
		Iterations: iterations,
		Salt:       salt,
		Key:        key,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
