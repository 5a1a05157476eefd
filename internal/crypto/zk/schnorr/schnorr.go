package schnorr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/smallyu/go-stealth/internal/crypto/curves"
	"github.com/smallyu/go-stealth/internal/crypto/derive"
)

const domain = "go-stealth/schnorr-pok/v1"

// ErrInvalidProof is returned when proof bytes cannot be decoded.
var ErrInvalidProof = errors.New("schnorr: invalid proof encoding")

// Proof represents a Schnorr proof of knowledge of a discrete logarithm.
// Proves knowledge of x such that X = x * G.
type Proof struct {
	R curves.Point  // Commitment R = k * G
	S curves.Scalar // Response s = k + e * x
}

// Prove generates a Schnorr proof for the secret x, public key X = x*G,
// bound to the caller's context bytes.
func Prove(g curves.Group, h derive.Hash, x curves.Scalar, X curves.Point, context []byte, rng io.Reader) (*Proof, error) {
	if x == nil || X == nil {
		return nil, errors.New("schnorr: inputs cannot be nil")
	}

	// 1. Generate random nonce k
	k, err := derive.RandomScalar(g, rng)
	if err != nil {
		return nil, err
	}

	// 2. Compute R = k * G
	R := g.Generator().ScalarMult(k)

	// 3. Compute challenge e = H(X, R, context)
	e := challenge(g, h, X, R, context)

	// 4. Compute s = k + e * x mod n
	s := e.Mul(x).Add(k)

	return &Proof{R: R, S: s}, nil
}

// Verify checks the validity of the Schnorr proof for public key X.
func (p *Proof) Verify(g curves.Group, h derive.Hash, X curves.Point, context []byte) bool {
	if p == nil || p.R == nil || p.S == nil || X == nil {
		return false
	}

	e := challenge(g, h, X, p.R, context)

	// s*G = R + e*X
	lhs := g.Generator().ScalarMult(p.S)
	rhs := p.R.Add(X.ScalarMult(e))
	return lhs.Equal(rhs)
}

// Bytes returns R ‖ s.
func (p *Proof) Bytes() []byte {
	out := append([]byte{}, p.R.Bytes()...)
	return append(out, p.S.Bytes()...)
}

// Parse decodes R ‖ s, rejecting invalid points and non-canonical scalars.
func Parse(g curves.Group, b []byte) (*Proof, error) {
	n := g.PointSize()
	if len(b) != n+g.ScalarSize() {
		return nil, fmt.Errorf("%w: %w: got %d bytes", ErrInvalidProof, curves.ErrInputLength, len(b))
	}
	R, err := g.DecodePoint(b[:n])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	s, err := g.DecodeScalar(b[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	return &Proof{R: R, S: s}, nil
}

// challenge computes H(domain, G, X, R, context) mod n. Every point has a
// fixed-size encoding, so only the context needs a length prefix.
func challenge(g curves.Group, h derive.Hash, X, R curves.Point, context []byte) curves.Scalar {
	st := h()
	st.Write([]byte(domain))
	st.Write(g.Generator().Bytes())
	st.Write(X.Bytes())
	st.Write(R.Bytes())
	var l [8]byte
	binary.LittleEndian.PutUint64(l[:], uint64(len(context)))
	st.Write(l[:])
	st.Write(context)

	var d [derive.DigestSize]byte
	copy(d[:], st.Sum(nil))
	return g.ReduceScalar(&d)
}
