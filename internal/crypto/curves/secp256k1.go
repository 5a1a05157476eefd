package curves

import (
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const secp256k1PointSize = 33

// Secp256k1Curve wraps the secp256k1 group (cofactor 1). Scalars are encoded
// as 32 bytes big-endian; points use 33-byte SEC1 compression, and the
// identity, which has no SEC1 compressed form, is encoded as 33 zero bytes.
type Secp256k1Curve struct{}

// Secp256k1 returns the secp256k1 group.
func Secp256k1() Group {
	return &Secp256k1Curve{}
}

func (c *Secp256k1Curve) Name() string    { return "secp256k1" }
func (c *Secp256k1Curve) ScalarSize() int { return 32 }
func (c *Secp256k1Curve) PointSize() int  { return secp256k1PointSize }

func (c *Secp256k1Curve) Order() *big.Int {
	return new(big.Int).Set(secp256k1.Params().N)
}

func (c *Secp256k1Curve) Generator() Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var g secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &g)
	return newSecpPoint(&g)
}

func (c *Secp256k1Curve) Identity() Point {
	return &Secp256k1Point{}
}

func (c *Secp256k1Curve) ReduceScalar(b *[32]byte) Scalar {
	var s secp256k1.ModNScalar
	s.SetBytes(b)
	return &Secp256k1Scalar{s: s}
}

func (c *Secp256k1Curve) DecodeScalar(b []byte) (Scalar, error) {
	if err := checkLength("secp256k1 scalar", b, 32); err != nil {
		return nil, err
	}
	var buf [32]byte
	copy(buf[:], b)
	var s secp256k1.ModNScalar
	if overflow := s.SetBytes(&buf); overflow != 0 {
		return nil, fmt.Errorf("%w: secp256k1 scalar is not below the group order", ErrNonCanonicalScalar)
	}
	return &Secp256k1Scalar{s: s}, nil
}

func (c *Secp256k1Curve) DecodePoint(b []byte) (Point, error) {
	if err := checkLength("secp256k1 point", b, secp256k1PointSize); err != nil {
		return nil, err
	}
	if isZero(b) {
		return &Secp256k1Point{}, nil
	}
	if b[0] != 0x02 && b[0] != 0x03 {
		return nil, fmt.Errorf("%w: unexpected secp256k1 prefix 0x%02x", ErrInvalidEncoding, b[0])
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return newSecpPoint(&p), nil
}

// Secp256k1Scalar implements Scalar
type Secp256k1Scalar struct {
	s secp256k1.ModNScalar
}

func (s *Secp256k1Scalar) Bytes() []byte {
	b := s.s.Bytes()
	return b[:]
}

func (s *Secp256k1Scalar) Add(other Scalar) Scalar {
	o, ok := other.(*Secp256k1Scalar)
	if !ok {
		panic("type mismatch")
	}
	res := &Secp256k1Scalar{}
	res.s.Add2(&s.s, &o.s)
	return res
}

func (s *Secp256k1Scalar) Mul(other Scalar) Scalar {
	o, ok := other.(*Secp256k1Scalar)
	if !ok {
		panic("type mismatch")
	}
	res := &Secp256k1Scalar{}
	res.s.Mul2(&s.s, &o.s)
	return res
}

func (s *Secp256k1Scalar) Equal(other Scalar) bool {
	o, ok := other.(*Secp256k1Scalar)
	return ok && s.s.Equals(&o.s)
}

// Secp256k1Point implements Point. The point is kept in affine form; the
// zero value (Z = 0) is the identity.
type Secp256k1Point struct {
	p secp256k1.JacobianPoint
}

func newSecpPoint(p *secp256k1.JacobianPoint) *Secp256k1Point {
	res := &Secp256k1Point{p: *p}
	if !res.isIdentity() {
		res.p.ToAffine()
	}
	return res
}

func (p *Secp256k1Point) isIdentity() bool {
	return p.p.Z.IsZero() || (p.p.X.IsZero() && p.p.Y.IsZero())
}

func (p *Secp256k1Point) Bytes() []byte {
	if p.isIdentity() {
		return make([]byte, secp256k1PointSize)
	}
	x, y := p.p.X, p.p.Y
	x.Normalize()
	y.Normalize()
	return secp256k1.NewPublicKey(&x, &y).SerializeCompressed()
}

func (p *Secp256k1Point) Add(other Point) Point {
	o, ok := other.(*Secp256k1Point)
	if !ok {
		panic("type mismatch")
	}
	var res secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &o.p, &res)
	return newSecpPoint(&res)
}

func (p *Secp256k1Point) ScalarMult(scalar Scalar) Point {
	s, ok := scalar.(*Secp256k1Scalar)
	if !ok {
		panic("type mismatch")
	}
	if p.isIdentity() {
		return &Secp256k1Point{}
	}
	var res secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.s, &p.p, &res)
	return newSecpPoint(&res)
}

func (p *Secp256k1Point) Equal(other Point) bool {
	o, ok := other.(*Secp256k1Point)
	if !ok {
		return false
	}
	if p.isIdentity() || o.isIdentity() {
		return p.isIdentity() && o.isIdentity()
	}
	px, py, ox, oy := p.p.X, p.p.Y, o.p.X, o.p.Y
	return px.Normalize().Equals(ox.Normalize()) && py.Normalize().Equals(oy.Normalize())
}

func isZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
