package stealth

import (
	"io"
)

// Announcement is what a sender publishes for one payment: R, the one-time
// key, and a view tag (the first byte of the shared digest) that lets
// scanners discard most foreign announcements after one hash instead of a
// full derivation.
type Announcement struct {
	R       *EphemeralReference
	Public  *EphemeralPublic
	ViewTag byte
}

// Announce runs GenerateEphemeral and attaches the view tag.
func (s *Suite) Announce(addr *StealthAddress, rng io.Reader) (*Announcement, error) {
	r, pub, digest, err := s.generate(addr, rng)
	if err != nil {
		return nil, wrap("Announce", err)
	}
	return &Announcement{R: r, Public: pub, ViewTag: digest[0]}, nil
}

// ViewTag recomputes the view tag of R for vk.
func (s *Suite) ViewTag(vk *ViewKey, r *EphemeralReference) byte {
	digest := s.viewDigest(vk.s, r)
	return digest[0]
}

// CheckAnnouncement reports whether a belongs to vk. A mismatching view tag
// rejects without deriving the one-time key.
func (s *Suite) CheckAnnouncement(vk *ViewKey, a *Announcement) bool {
	digest := s.viewDigest(vk.s, a.R)
	if digest[0] != a.ViewTag {
		return false
	}
	return s.onetime(&digest, vk.b).Equal(a.Public)
}

// Bytes returns R ‖ Public ‖ ViewTag.
func (a *Announcement) Bytes() []byte {
	out := concat(a.R.Bytes(), a.Public.Bytes())
	return append(out, a.ViewTag)
}

func (a *Announcement) Equal(o *Announcement) bool {
	return o != nil && a.ViewTag == o.ViewTag && a.R.Equal(o.R) && a.Public.Equal(o.Public)
}

// ParseAnnouncement decodes R ‖ Public ‖ ViewTag.
func (s *Suite) ParseAnnouncement(b []byte) (*Announcement, error) {
	const op = "ParseAnnouncement"
	n := s.group.PointSize()
	if err := checkSize(b, s.AnnouncementSize()); err != nil {
		return nil, wrap(op, err)
	}
	r, err := s.group.DecodePoint(b[:n])
	if err != nil {
		return nil, wrap(op, err)
	}
	pub, err := s.group.DecodePoint(b[n : 2*n])
	if err != nil {
		return nil, wrap(op, err)
	}
	return &Announcement{
		R:       &EphemeralReference{p: r},
		Public:  &EphemeralPublic{p: pub},
		ViewTag: b[2*n],
	}, nil
}
