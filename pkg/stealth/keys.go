package stealth

import (
	"io"

	"github.com/smallyu/go-stealth/internal/crypto/curves"
	"github.com/smallyu/go-stealth/internal/crypto/derive"
)

// SpendKey is the root secret (s, b). s is the Diffie-Hellman secret shared
// with the ViewKey; b is the spend offset that only this key holds.
type SpendKey struct {
	group curves.Group
	s     curves.Scalar
	b     curves.Scalar
}

// ViewKey holds the DH secret s and the public spend point B = b·G. It can
// recognize payments but cannot derive their secrets.
type ViewKey struct {
	group curves.Group
	s     curves.Scalar
	b     curves.Point
}

// StealthAddress is the publishable pair S = s·G, B = b·G.
type StealthAddress struct {
	group curves.Group
	s     curves.Point
	b     curves.Point
}

// GenerateSpendKey samples two independent scalars from rng, which should
// be crypto/rand.Reader or another cryptographically secure source.
func (s *Suite) GenerateSpendKey(rng io.Reader) (*SpendKey, error) {
	sk, err := derive.RandomScalar(s.group, rng)
	if err != nil {
		return nil, wrap("GenerateSpendKey", err)
	}
	bk, err := derive.RandomScalar(s.group, rng)
	if err != nil {
		return nil, wrap("GenerateSpendKey", err)
	}
	return &SpendKey{group: s.group, s: sk, b: bk}, nil
}

// ViewKey returns {s, b·G}.
func (k *SpendKey) ViewKey() *ViewKey {
	return &ViewKey{
		group: k.group,
		s:     k.s,
		b:     k.group.Generator().ScalarMult(k.b),
	}
}

// StealthAddress returns {s·G, b·G}.
func (k *SpendKey) StealthAddress() *StealthAddress {
	g := k.group.Generator()
	return &StealthAddress{
		group: k.group,
		s:     g.ScalarMult(k.s),
		b:     g.ScalarMult(k.b),
	}
}

// Bytes returns s ‖ b.
func (k *SpendKey) Bytes() []byte {
	return concat(k.s.Bytes(), k.b.Bytes())
}

// Equal reports whether both keys hold the same scalars.
func (k *SpendKey) Equal(o *SpendKey) bool {
	return o != nil && k.s.Equal(o.s) && k.b.Equal(o.b)
}

// StealthAddress returns {s·G, B}, the same address the owning SpendKey
// publishes.
func (k *ViewKey) StealthAddress() *StealthAddress {
	return &StealthAddress{
		group: k.group,
		s:     k.group.Generator().ScalarMult(k.s),
		b:     k.b,
	}
}

// Bytes returns s ‖ B.
func (k *ViewKey) Bytes() []byte {
	return concat(k.s.Bytes(), k.b.Bytes())
}

func (k *ViewKey) Equal(o *ViewKey) bool {
	return o != nil && k.s.Equal(o.s) && k.b.Equal(o.b)
}

// Bytes returns S ‖ B.
func (a *StealthAddress) Bytes() []byte {
	return concat(a.s.Bytes(), a.b.Bytes())
}

func (a *StealthAddress) Equal(o *StealthAddress) bool {
	return o != nil && a.s.Equal(o.s) && a.b.Equal(o.b)
}

// ParseSpendKey decodes s ‖ b. Both scalars must be canonical.
func (s *Suite) ParseSpendKey(b []byte) (*SpendKey, error) {
	const op = "ParseSpendKey"
	n := s.group.ScalarSize()
	if err := checkSize(b, s.SpendKeySize()); err != nil {
		return nil, wrap(op, err)
	}
	sk, err := s.group.DecodeScalar(b[:n])
	if err != nil {
		return nil, wrap(op, err)
	}
	bk, err := s.group.DecodeScalar(b[n:])
	if err != nil {
		return nil, wrap(op, err)
	}
	return &SpendKey{group: s.group, s: sk, b: bk}, nil
}

// ParseViewKey decodes s ‖ B.
func (s *Suite) ParseViewKey(b []byte) (*ViewKey, error) {
	const op = "ParseViewKey"
	n := s.group.ScalarSize()
	if err := checkSize(b, s.ViewKeySize()); err != nil {
		return nil, wrap(op, err)
	}
	sk, err := s.group.DecodeScalar(b[:n])
	if err != nil {
		return nil, wrap(op, err)
	}
	pb, err := s.group.DecodePoint(b[n:])
	if err != nil {
		return nil, wrap(op, err)
	}
	return &ViewKey{group: s.group, s: sk, b: pb}, nil
}

// ParseStealthAddress decodes S ‖ B.
func (s *Suite) ParseStealthAddress(b []byte) (*StealthAddress, error) {
	const op = "ParseStealthAddress"
	n := s.group.PointSize()
	if err := checkSize(b, s.AddressSize()); err != nil {
		return nil, wrap(op, err)
	}
	ps, err := s.group.DecodePoint(b[:n])
	if err != nil {
		return nil, wrap(op, err)
	}
	pb, err := s.group.DecodePoint(b[n:])
	if err != nil {
		return nil, wrap(op, err)
	}
	return &StealthAddress{group: s.group, s: ps, b: pb}, nil
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
