// Package derive turns randomness and group elements into scalars.
package derive

import (
	"errors"
	"fmt"
	"io"

	"github.com/smallyu/go-stealth/internal/crypto/curves"
)

// ErrRandomSource is returned when the random source fails to deliver bytes.
var ErrRandomSource = errors.New("derive: random source failure")

// RandomScalar draws 32 bytes from rng and reduces them modulo the group
// order. The reduction bias is negligible for 2^252-order groups and larger.
func RandomScalar(g curves.Group, rng io.Reader) (curves.Scalar, error) {
	var buf [32]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	s := g.ReduceScalar(&buf)
	clear(buf[:])
	return s, nil
}

// SharedDigest returns h(compress(p)).
func SharedDigest(h Hash, p curves.Point) [DigestSize]byte {
	var out [DigestSize]byte
	st := h()
	st.Write(p.Bytes())
	copy(out[:], st.Sum(nil))
	return out
}

// HashToScalar maps p to a scalar by hashing its encoding and reducing the
// digest modulo the group order.
func HashToScalar(g curves.Group, h Hash, p curves.Point) curves.Scalar {
	d := SharedDigest(h, p)
	return g.ReduceScalar(&d)
}
