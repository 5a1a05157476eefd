package curves

import (
	"bytes"
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
)

// Ed25519Curve is the prime-order subgroup of edwards25519. The full curve
// has cofactor 8, so DecodePoint rejects torsion components and the
// non-canonical encodings that edwards25519.Point.SetBytes tolerates.
type Ed25519Curve struct{}

// Edwards25519 returns the prime-order subgroup of edwards25519.
func Edwards25519() Group {
	return &Ed25519Curve{}
}

func (c *Ed25519Curve) Name() string    { return "edwards25519" }
func (c *Ed25519Curve) ScalarSize() int { return 32 }
func (c *Ed25519Curve) PointSize() int  { return 32 }

func (c *Ed25519Curve) Order() *big.Int {
	return new(big.Int).Set(order25519)
}

func (c *Ed25519Curve) Generator() Point {
	return &Ed25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) Identity() Point {
	return &Ed25519Point{p: edwards25519.NewIdentityPoint()}
}

func (c *Ed25519Curve) ReduceScalar(b *[32]byte) Scalar {
	var wide [64]byte
	copy(wide[:32], b[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return &Ed25519Scalar{s: s}
}

func (c *Ed25519Curve) DecodeScalar(b []byte) (Scalar, error) {
	if err := checkLength("edwards25519 scalar", b, 32); err != nil {
		return nil, err
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNonCanonicalScalar, err)
	}
	return &Ed25519Scalar{s: s}, nil
}

func (c *Ed25519Curve) DecodePoint(b []byte) (Point, error) {
	if err := checkLength("edwards25519 point", b, 32); err != nil {
		return nil, err
	}
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if !bytes.Equal(p.Bytes(), b) {
		return nil, fmt.Errorf("%w: non-canonical edwards25519 encoding", ErrInvalidEncoding)
	}
	if !inPrimeOrderSubgroup(p) {
		return nil, fmt.Errorf("%w: point has a torsion component", ErrInvalidEncoding)
	}
	return &Ed25519Point{p: p}, nil
}

// inPrimeOrderSubgroup reports whether 8⁻¹·(8·p) == p, which holds exactly
// when p has no small-order component.
func inPrimeOrderSubgroup(p *edwards25519.Point) bool {
	cleared := edwards25519.NewIdentityPoint().MultByCofactor(p)
	back := edwards25519.NewIdentityPoint().ScalarMult(invCofactor, cleared)
	return back.Equal(p) == 1
}

var invCofactor = func() *edwards25519.Scalar {
	eight, err := edwards25519.NewScalar().SetCanonicalBytes([]byte{8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		panic(err)
	}
	return edwards25519.NewScalar().Invert(eight)
}()

// Ed25519Scalar implements Scalar
type Ed25519Scalar struct {
	s *edwards25519.Scalar
}

func (s *Ed25519Scalar) Bytes() []byte {
	return s.s.Bytes()
}

func (s *Ed25519Scalar) Add(other Scalar) Scalar {
	o, ok := other.(*Ed25519Scalar)
	if !ok {
		panic("type mismatch")
	}
	res := edwards25519.NewScalar().Add(s.s, o.s)
	return &Ed25519Scalar{s: res}
}

func (s *Ed25519Scalar) Mul(other Scalar) Scalar {
	o, ok := other.(*Ed25519Scalar)
	if !ok {
		panic("type mismatch")
	}
	res := edwards25519.NewScalar().Multiply(s.s, o.s)
	return &Ed25519Scalar{s: res}
}

func (s *Ed25519Scalar) Equal(other Scalar) bool {
	o, ok := other.(*Ed25519Scalar)
	return ok && s.s.Equal(o.s) == 1
}

// Ed25519Point implements Point
type Ed25519Point struct {
	p *edwards25519.Point
}

func (p *Ed25519Point) Bytes() []byte {
	return p.p.Bytes()
}

func (p *Ed25519Point) Add(other Point) Point {
	o, ok := other.(*Ed25519Point)
	if !ok {
		panic("type mismatch")
	}
	res := edwards25519.NewIdentityPoint().Add(p.p, o.p)
	return &Ed25519Point{p: res}
}

func (p *Ed25519Point) ScalarMult(scalar Scalar) Point {
	s, ok := scalar.(*Ed25519Scalar)
	if !ok {
		panic("type mismatch")
	}
	res := edwards25519.NewIdentityPoint().ScalarMult(s.s, p.p)
	return &Ed25519Point{p: res}
}

func (p *Ed25519Point) Equal(other Point) bool {
	o, ok := other.(*Ed25519Point)
	return ok && p.p.Equal(o.p) == 1
}
