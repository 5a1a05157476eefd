package stealth

import (
	"fmt"

	"github.com/smallyu/go-stealth/internal/crypto/curves"
	"github.com/smallyu/go-stealth/internal/crypto/derive"
)

// Group is a prime-order group with canonical encodings.
type Group = curves.Group

// Hash constructs a hash state producing 32-byte digests.
type Hash = derive.Hash

// Groups.
var (
	Ristretto255 = curves.Ristretto255
	Edwards25519 = curves.Edwards25519
	Secp256k1    = curves.Secp256k1
)

// Suite binds the group and the hash function used by one deployment.
// Sender and receiver must use the same Suite; nothing is selected by
// default.
//
// Record sizes follow the group: ristretto255 and edwards25519 use 32-byte
// points, secp256k1 uses 33-byte compressed points and big-endian scalars.
// Use the Size methods instead of fixed lengths.
type Suite struct {
	group curves.Group
	hash  derive.Hash
}

// NewSuite returns a suite over group using hash for hash-to-scalar.
func NewSuite(group Group, hash Hash) (*Suite, error) {
	if group == nil {
		return nil, wrap("NewSuite", fmt.Errorf("%w: nil group", ErrUnknownGroup))
	}
	if err := derive.CheckHash(hash); err != nil {
		return nil, wrap("NewSuite", err)
	}
	return &Suite{group: group, hash: hash}, nil
}

// NewSuiteByName returns a suite for a built-in group and hash name.
func NewSuiteByName(groupName, hashName string) (*Suite, error) {
	g, err := curves.ByName(groupName)
	if err != nil {
		return nil, wrap("NewSuiteByName", err)
	}
	h, err := derive.HashByName(hashName)
	if err != nil {
		return nil, wrap("NewSuiteByName", err)
	}
	return NewSuite(g, h)
}

// Group returns the suite's group.
func (s *Suite) Group() Group { return s.group }

// Hash returns the suite's hash function.
func (s *Suite) Hash() Hash { return s.hash }

// SpendKeySize is the encoded length of a SpendKey.
func (s *Suite) SpendKeySize() int { return 2 * s.group.ScalarSize() }

// ViewKeySize is the encoded length of a ViewKey.
func (s *Suite) ViewKeySize() int { return s.group.ScalarSize() + s.group.PointSize() }

// AddressSize is the encoded length of a StealthAddress.
func (s *Suite) AddressSize() int { return 2 * s.group.PointSize() }

// AnnouncementSize is the encoded length of an Announcement.
func (s *Suite) AnnouncementSize() int { return 2*s.group.PointSize() + 1 }

func (s *Suite) hashToScalar(p curves.Point) curves.Scalar {
	return derive.HashToScalar(s.group, s.hash, p)
}
