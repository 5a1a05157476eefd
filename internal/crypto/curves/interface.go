package curves

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidEncoding is returned when point bytes do not decode to an
	// element of the prime-order group.
	ErrInvalidEncoding = errors.New("curves: invalid point encoding")

	// ErrNonCanonicalScalar is returned when scalar bytes are not the unique
	// representative below the group order.
	ErrNonCanonicalScalar = errors.New("curves: non-canonical scalar encoding")

	// ErrInputLength is returned when an encoding has the wrong byte count.
	ErrInputLength = errors.New("curves: input length mismatch")

	// ErrUnknownGroup is returned by ByName for unsupported group names.
	ErrUnknownGroup = errors.New("curves: unknown group")
)

// Point is an element of a prime-order group.
// Points are immutable: every operation returns a new value.
type Point interface {
	// Bytes returns the canonical compressed encoding of the point.
	Bytes() []byte

	// Add returns p + q.
	Add(q Point) Point

	// ScalarMult returns s·p.
	ScalarMult(s Scalar) Point

	// Equal reports whether both points are the same group element.
	Equal(q Point) bool
}

// Scalar is an element of the group's scalar field.
type Scalar interface {
	// Bytes returns the canonical fixed-size encoding of the scalar.
	Bytes() []byte

	// Add returns s + t mod the group order.
	Add(t Scalar) Scalar

	// Mul returns s · t mod the group order.
	Mul(t Scalar) Scalar

	// Equal reports whether both scalars are equal.
	Equal(t Scalar) bool
}

// Group is a prime-order group with a fixed generator and canonical
// encodings. Implementations must reject, on decode, every encoding that is
// not the unique representative of an element of the prime-order subgroup.
type Group interface {
	// Name returns the name of the group, e.g. "ristretto255".
	Name() string

	// ScalarSize is the length in bytes of an encoded scalar.
	ScalarSize() int

	// PointSize is the length in bytes of an encoded point.
	PointSize() int

	// Order returns the prime order of the group.
	Order() *big.Int

	// Generator returns the base point G.
	Generator() Point

	// Identity returns the neutral element.
	Identity() Point

	// ReduceScalar interprets b as an integer in the group's scalar byte
	// order and reduces it modulo the group order.
	ReduceScalar(b *[32]byte) Scalar

	// DecodeScalar parses a canonical scalar encoding.
	DecodeScalar(b []byte) (Scalar, error)

	// DecodePoint parses a canonical point encoding.
	DecodePoint(b []byte) (Point, error)
}

// ByName returns the group registered under name.
func ByName(name string) (Group, error) {
	switch name {
	case "ristretto255":
		return Ristretto255(), nil
	case "edwards25519":
		return Edwards25519(), nil
	case "secp256k1":
		return Secp256k1(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
}

// Names lists the supported group names.
func Names() []string {
	return []string{"ristretto255", "edwards25519", "secp256k1"}
}

func checkLength(what string, b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%w: %s must be %d bytes, got %d", ErrInputLength, what, want, len(b))
	}
	return nil
}

// l = 2^252 + 27742317777372353535851937790883648493
var order25519 = func() *big.Int {
	c, ok := new(big.Int).SetString("27742317777372353535851937790883648493", 10)
	if !ok {
		panic("curves: bad order constant")
	}
	return c.Add(c, new(big.Int).Lsh(big.NewInt(1), 252))
}()
