package stealth

import (
	"errors"
	"io"

	"github.com/smallyu/go-stealth/internal/crypto/zk/schnorr"
)

// ErrInvalidProof is returned by ParseOwnershipProof for malformed input.
var ErrInvalidProof = schnorr.ErrInvalidProof

// OwnershipProof is a Schnorr proof that the prover knows the
// EphemeralSecret behind an EphemeralPublic, bound to a context message.
type OwnershipProof struct {
	p *schnorr.Proof
}

// Bytes returns the commitment followed by the response scalar.
func (o *OwnershipProof) Bytes() []byte { return o.p.Bytes() }

// ProveOwnership proves knowledge of secret without revealing it. The
// context is typically the spending transaction or a verifier challenge.
func (s *Suite) ProveOwnership(secret *EphemeralSecret, context []byte, rng io.Reader) (*OwnershipProof, error) {
	if secret == nil {
		return nil, wrap("ProveOwnership", errors.New("nil secret"))
	}
	p, err := schnorr.Prove(s.group, s.hash, secret.k, secret.Public().p, context, rng)
	if err != nil {
		return nil, wrap("ProveOwnership", err)
	}
	return &OwnershipProof{p: p}, nil
}

// VerifyOwnership reports whether proof shows knowledge of the secret for
// pub under context.
func (s *Suite) VerifyOwnership(pub *EphemeralPublic, context []byte, proof *OwnershipProof) bool {
	if pub == nil || proof == nil {
		return false
	}
	return proof.p.Verify(s.group, s.hash, pub.p, context)
}

// ParseOwnershipProof decodes a proof produced by OwnershipProof.Bytes.
func (s *Suite) ParseOwnershipProof(b []byte) (*OwnershipProof, error) {
	p, err := schnorr.Parse(s.group, b)
	if err != nil {
		return nil, wrap("ParseOwnershipProof", err)
	}
	return &OwnershipProof{p: p}, nil
}
