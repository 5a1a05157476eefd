// Package stealth implements dual-key stealth addresses.
//
// A recipient generates a SpendKey once and derives from it a ViewKey, which
// may be handed to a scanning service, and a StealthAddress, which is
// published. A sender holding only the StealthAddress produces, per payment,
// an ephemeral reference R and a one-time EphemeralPublic key:
//
//	r random, c = H(r·S), P = c·G + B, R = r·G
//
// Any ViewKey holder recomputes P from R (c = H(s·R)) and can therefore
// recognize payments, while only the SpendKey holder can derive the matching
// secret c + b with (c + b)·G == P. The owner can later prove knowledge of
// that secret to a third party with ProveOwnership without revealing it.
//
// The prime-order group and the hash function are chosen explicitly through
// a Suite. All values are immutable and every operation is safe for
// concurrent use; the only shared resource is the caller-supplied random
// source.
package stealth
