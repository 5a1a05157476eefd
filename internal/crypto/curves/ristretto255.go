package curves

import (
	"fmt"
	"math/big"

	"github.com/gtank/ristretto255"
)

type ristrettoGroup struct{}

// Ristretto255 returns the ristretto255 prime-order group. Scalars are
// encoded little-endian.
func Ristretto255() Group {
	return ristrettoGroup{}
}

func (ristrettoGroup) Name() string    { return "ristretto255" }
func (ristrettoGroup) ScalarSize() int { return 32 }
func (ristrettoGroup) PointSize() int  { return 32 }

func (ristrettoGroup) Order() *big.Int {
	return new(big.Int).Set(order25519)
}

func (ristrettoGroup) Generator() Point {
	one := ristretto255.NewScalar()
	if _, err := one.SetCanonicalBytes(scalarOneLE[:]); err != nil {
		panic(err)
	}
	return &ristrettoPoint{e: ristretto255.NewIdentityElement().ScalarBaseMult(one)}
}

func (ristrettoGroup) Identity() Point {
	return &ristrettoPoint{e: ristretto255.NewIdentityElement()}
}

func (ristrettoGroup) ReduceScalar(b *[32]byte) Scalar {
	var wide [64]byte
	copy(wide[:32], b[:])
	s, err := ristretto255.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return &ristrettoScalar{s: s}
}

func (ristrettoGroup) DecodeScalar(b []byte) (Scalar, error) {
	if err := checkLength("ristretto255 scalar", b, 32); err != nil {
		return nil, err
	}
	s, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNonCanonicalScalar, err)
	}
	return &ristrettoScalar{s: s}, nil
}

func (ristrettoGroup) DecodePoint(b []byte) (Point, error) {
	if err := checkLength("ristretto255 point", b, 32); err != nil {
		return nil, err
	}
	e, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return &ristrettoPoint{e: e}, nil
}

type ristrettoScalar struct {
	s *ristretto255.Scalar
}

func (s *ristrettoScalar) Bytes() []byte {
	return s.s.Bytes()
}

func (s *ristrettoScalar) Add(other Scalar) Scalar {
	o, ok := other.(*ristrettoScalar)
	if !ok {
		panic("type mismatch")
	}
	return &ristrettoScalar{s: ristretto255.NewScalar().Add(s.s, o.s)}
}

func (s *ristrettoScalar) Mul(other Scalar) Scalar {
	o, ok := other.(*ristrettoScalar)
	if !ok {
		panic("type mismatch")
	}
	return &ristrettoScalar{s: ristretto255.NewScalar().Multiply(s.s, o.s)}
}

func (s *ristrettoScalar) Equal(other Scalar) bool {
	o, ok := other.(*ristrettoScalar)
	return ok && s.s.Equal(o.s) == 1
}

type ristrettoPoint struct {
	e *ristretto255.Element
}

func (p *ristrettoPoint) Bytes() []byte {
	return p.e.Bytes()
}

func (p *ristrettoPoint) Add(other Point) Point {
	o, ok := other.(*ristrettoPoint)
	if !ok {
		panic("type mismatch")
	}
	return &ristrettoPoint{e: ristretto255.NewIdentityElement().Add(p.e, o.e)}
}

func (p *ristrettoPoint) ScalarMult(scalar Scalar) Point {
	s, ok := scalar.(*ristrettoScalar)
	if !ok {
		panic("type mismatch")
	}
	return &ristrettoPoint{e: ristretto255.NewIdentityElement().ScalarMult(s.s, p.e)}
}

func (p *ristrettoPoint) Equal(other Point) bool {
	o, ok := other.(*ristrettoPoint)
	return ok && p.e.Equal(o.e) == 1
}

var scalarOneLE = [32]byte{1}
