package stealth

import (
	"fmt"
	"io"

	"github.com/smallyu/go-stealth/internal/crypto/curves"
	"github.com/smallyu/go-stealth/internal/crypto/derive"
)

// EphemeralReference is R = r·G, published next to each payment.
type EphemeralReference struct {
	p curves.Point
}

// EphemeralPublic is the one-time public key c·G + B.
type EphemeralPublic struct {
	p curves.Point
}

// EphemeralSecret is the one-time secret c + b.
type EphemeralSecret struct {
	group curves.Group
	k     curves.Scalar
}

func (r *EphemeralReference) Bytes() []byte { return r.p.Bytes() }

func (r *EphemeralReference) Equal(o *EphemeralReference) bool {
	return o != nil && r.p.Equal(o.p)
}

func (p *EphemeralPublic) Bytes() []byte { return p.p.Bytes() }

func (p *EphemeralPublic) Equal(o *EphemeralPublic) bool {
	return o != nil && p.p.Equal(o.p)
}

func (e *EphemeralSecret) Bytes() []byte { return e.k.Bytes() }

func (e *EphemeralSecret) Equal(o *EphemeralSecret) bool {
	return o != nil && e.k.Equal(o.k)
}

// Public returns secret·G.
func (e *EphemeralSecret) Public() *EphemeralPublic {
	return &EphemeralPublic{p: e.group.Generator().ScalarMult(e.k)}
}

// GenerateEphemeral is the sender side: it samples r and returns R = r·G
// together with the one-time key H(r·S)·G + B. R must be transmitted with
// the payment.
func (s *Suite) GenerateEphemeral(addr *StealthAddress, rng io.Reader) (*EphemeralReference, *EphemeralPublic, error) {
	r, pub, _, err := s.generate(addr, rng)
	if err != nil {
		return nil, nil, wrap("GenerateEphemeral", err)
	}
	return r, pub, nil
}

func (s *Suite) generate(addr *StealthAddress, rng io.Reader) (*EphemeralReference, *EphemeralPublic, [derive.DigestSize]byte, error) {
	r, err := derive.RandomScalar(s.group, rng)
	if err != nil {
		return nil, nil, [derive.DigestSize]byte{}, err
	}
	digest := derive.SharedDigest(s.hash, addr.s.ScalarMult(r))
	pub := s.onetime(&digest, addr.b)
	return &EphemeralReference{p: s.group.Generator().ScalarMult(r)}, pub, digest, nil
}

// onetime returns reduce(digest)·G + b.
func (s *Suite) onetime(digest *[derive.DigestSize]byte, b curves.Point) *EphemeralPublic {
	c := s.group.ReduceScalar(digest)
	return &EphemeralPublic{p: s.group.Generator().ScalarMult(c).Add(b)}
}

// viewDigest is H(s·R), the digest both receiver-side derivations start from.
func (s *Suite) viewDigest(secret curves.Scalar, r *EphemeralReference) [derive.DigestSize]byte {
	return derive.SharedDigest(s.hash, r.p.ScalarMult(secret))
}

// DeriveEphemeralPublic recomputes the one-time key for R with the view
// capability: H(s·R)·G + B.
func (s *Suite) DeriveEphemeralPublic(vk *ViewKey, r *EphemeralReference) *EphemeralPublic {
	digest := s.viewDigest(vk.s, r)
	return s.onetime(&digest, vk.b)
}

// Check reports whether candidate is the one-time key a sender derived for
// this view key and R. A false result is a normal non-match.
func (s *Suite) Check(vk *ViewKey, r *EphemeralReference, candidate *EphemeralPublic) bool {
	return s.DeriveEphemeralPublic(vk, r).Equal(candidate)
}

// DeriveEphemeralSecret returns H(s·R) + b, the secret matching the
// one-time key for R. It uses the same DH scalar s as the view key.
func (s *Suite) DeriveEphemeralSecret(sk *SpendKey, r *EphemeralReference) *EphemeralSecret {
	c := s.hashToScalar(r.p.ScalarMult(sk.s))
	return &EphemeralSecret{group: s.group, k: c.Add(sk.b)}
}

// ParseEphemeralReference decodes R.
func (s *Suite) ParseEphemeralReference(b []byte) (*EphemeralReference, error) {
	p, err := s.group.DecodePoint(b)
	if err != nil {
		return nil, wrap("ParseEphemeralReference", err)
	}
	return &EphemeralReference{p: p}, nil
}

// ParseEphemeralPublic decodes a one-time public key.
func (s *Suite) ParseEphemeralPublic(b []byte) (*EphemeralPublic, error) {
	p, err := s.group.DecodePoint(b)
	if err != nil {
		return nil, wrap("ParseEphemeralPublic", err)
	}
	return &EphemeralPublic{p: p}, nil
}

// ParseEphemeralSecret decodes a canonical one-time secret.
func (s *Suite) ParseEphemeralSecret(b []byte) (*EphemeralSecret, error) {
	k, err := s.group.DecodeScalar(b)
	if err != nil {
		return nil, wrap("ParseEphemeralSecret", err)
	}
	return &EphemeralSecret{group: s.group, k: k}, nil
}

func checkSize(b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrInputLength, want, len(b))
	}
	return nil
}
