package derive

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// DigestSize is the digest length every Hash must produce.
const DigestSize = 32

var (
	// ErrHashSize is returned when a hash does not produce 32-byte digests.
	ErrHashSize = errors.New("derive: hash must produce 32-byte digests")

	// ErrUnknownHash is returned by HashByName for unsupported names.
	ErrUnknownHash = errors.New("derive: unknown hash")
)

// Hash constructs a fresh hash state. It must be deterministic and produce
// DigestSize-byte digests; sender and receiver have to agree on it.
type Hash func() hash.Hash

// CheckHash verifies that h satisfies the digest size contract.
func CheckHash(h Hash) error {
	if h == nil {
		return fmt.Errorf("%w: nil hash", ErrHashSize)
	}
	if size := h().Size(); size != DigestSize {
		return fmt.Errorf("%w: got %d", ErrHashSize, size)
	}
	return nil
}

func newBlake2b256() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return h
}

func newBlake3() hash.Hash {
	return blake3.New(DigestSize, nil)
}

var hashes = map[string]Hash{
	"sha256":      sha256.New,
	"sha3-256":    sha3.New256,
	"keccak256":   sha3.NewLegacyKeccak256,
	"blake2b-256": newBlake2b256,
	"blake3":      newBlake3,
}

// HashByName returns one of the built-in hashes: sha256, sha3-256,
// keccak256, blake2b-256 or blake3.
func HashByName(name string) (Hash, error) {
	h, ok := hashes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
	return h, nil
}

// HashNames lists the built-in hash names.
func HashNames() []string {
	return []string{"sha256", "sha3-256", "keccak256", "blake2b-256", "blake3"}
}
