package stealth

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuites(t *testing.T) []*Suite {
	t.Helper()
	var suites []*Suite
	for _, g := range []Group{Ristretto255(), Edwards25519(), Secp256k1()} {
		s, err := NewSuite(g, sha256.New)
		require.NoError(t, err)
		suites = append(suites, s)
	}
	return suites
}

// orderBytes encodes the group order in the group's scalar byte order.
func orderBytes(s *Suite) []byte {
	buf := make([]byte, 32)
	s.Group().Order().FillBytes(buf)
	if s.Group().Name() != "secp256k1" {
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
	return buf
}

func TestProtocolCorrectness(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			for i := 0; i < 4; i++ {
				k, err := suite.GenerateSpendKey(rand.Reader)
				require.NoError(t, err)
				vk := k.ViewKey()
				addr := k.StealthAddress()

				r, pub0, err := suite.GenerateEphemeral(addr, rand.Reader)
				require.NoError(t, err)

				assert.True(t, suite.Check(vk, r, pub0))
				assert.True(t, suite.DeriveEphemeralPublic(vk, r).Equal(pub0))

				secret := suite.DeriveEphemeralSecret(k, r)
				assert.True(t, secret.Public().Equal(pub0))
			}
		})
	}
}

func TestViewKeyAddress(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			k, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)
			assert.True(t, k.ViewKey().StealthAddress().Equal(k.StealthAddress()))
		})
	}
}

func TestCheckNonMatch(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			k, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)
			other, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)

			r, pub, err := suite.GenerateEphemeral(k.StealthAddress(), rand.Reader)
			require.NoError(t, err)

			// Unrelated point.
			random, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)
			_, unrelated, err := suite.GenerateEphemeral(random.StealthAddress(), rand.Reader)
			require.NoError(t, err)
			assert.False(t, suite.Check(k.ViewKey(), r, unrelated))

			// Someone else's view key.
			assert.False(t, suite.Check(other.ViewKey(), r, pub))

			// The right key with another payment's R.
			r2, _, err := suite.GenerateEphemeral(k.StealthAddress(), rand.Reader)
			require.NoError(t, err)
			assert.False(t, suite.Check(k.ViewKey(), r2, pub))
		})
	}
}

func TestUnlinkability(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			k, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)
			addr := k.StealthAddress()

			r1, p1, err := suite.GenerateEphemeral(addr, rand.Reader)
			require.NoError(t, err)
			r2, p2, err := suite.GenerateEphemeral(addr, rand.Reader)
			require.NoError(t, err)

			assert.False(t, r1.Equal(r2))
			assert.False(t, p1.Equal(p2))
		})
	}
}

func TestHashChoiceMustAgree(t *testing.T) {
	sender, err := NewSuiteByName("ristretto255", "sha256")
	require.NoError(t, err)
	receiver, err := NewSuiteByName("ristretto255", "blake2b-256")
	require.NoError(t, err)

	k, err := sender.GenerateSpendKey(rand.Reader)
	require.NoError(t, err)
	r, pub, err := sender.GenerateEphemeral(k.StealthAddress(), rand.Reader)
	require.NoError(t, err)

	assert.True(t, sender.Check(k.ViewKey(), r, pub))
	assert.False(t, receiver.Check(k.ViewKey(), r, pub))
}

func TestRoundTrip(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			k, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)
			vk := k.ViewKey()
			addr := k.StealthAddress()
			r, pub, err := suite.GenerateEphemeral(addr, rand.Reader)
			require.NoError(t, err)
			secret := suite.DeriveEphemeralSecret(k, r)

			require.Len(t, k.Bytes(), suite.SpendKeySize())
			require.Len(t, vk.Bytes(), suite.ViewKeySize())
			require.Len(t, addr.Bytes(), suite.AddressSize())

			k2, err := suite.ParseSpendKey(k.Bytes())
			require.NoError(t, err)
			assert.True(t, k.Equal(k2))

			vk2, err := suite.ParseViewKey(vk.Bytes())
			require.NoError(t, err)
			assert.True(t, vk.Equal(vk2))

			addr2, err := suite.ParseStealthAddress(addr.Bytes())
			require.NoError(t, err)
			assert.True(t, addr.Equal(addr2))

			r2, err := suite.ParseEphemeralReference(r.Bytes())
			require.NoError(t, err)
			assert.True(t, r.Equal(r2))

			pub2, err := suite.ParseEphemeralPublic(pub.Bytes())
			require.NoError(t, err)
			assert.True(t, pub.Equal(pub2))

			secret2, err := suite.ParseEphemeralSecret(secret.Bytes())
			require.NoError(t, err)
			assert.True(t, secret.Equal(secret2))
		})
	}
}

func TestRistrettoLayout(t *testing.T) {
	suite, err := NewSuite(Ristretto255(), sha256.New)
	require.NoError(t, err)
	assert.Equal(t, 64, suite.SpendKeySize())
	assert.Equal(t, 64, suite.ViewKeySize())
	assert.Equal(t, 64, suite.AddressSize())

	k, err := suite.GenerateSpendKey(rand.Reader)
	require.NoError(t, err)
	vk := k.ViewKey()
	addr := k.StealthAddress()

	// The view key shares the spend key's first scalar and the address's
	// second point.
	assert.Equal(t, k.Bytes()[:32], vk.Bytes()[:32])
	assert.Equal(t, addr.Bytes()[32:], vk.Bytes()[32:])
}

func TestSecp256k1Sizes(t *testing.T) {
	suite, err := NewSuiteByName("secp256k1", "keccak256")
	require.NoError(t, err)

	assert.Equal(t, 64, suite.SpendKeySize())
	assert.Equal(t, 65, suite.ViewKeySize())
	assert.Equal(t, 66, suite.AddressSize())
	assert.Equal(t, 67, suite.AnnouncementSize())

	k, err := suite.GenerateSpendKey(rand.Reader)
	require.NoError(t, err)
	assert.Len(t, k.ViewKey().Bytes(), suite.ViewKeySize())
	assert.Len(t, k.StealthAddress().Bytes(), suite.AddressSize())
}

func TestDecodeRejectsNonCanonicalScalar(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			k, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)
			order := orderBytes(suite)

			// Either half alone poisons the whole key.
			first := append(append([]byte{}, order...), k.Bytes()[32:]...)
			second := append(append([]byte{}, k.Bytes()[:32]...), order...)
			for _, input := range [][]byte{first, second} {
				got, err := suite.ParseSpendKey(input)
				assert.Nil(t, got)
				assert.ErrorIs(t, err, ErrNonCanonicalScalar)

				var serr *Error
				require.True(t, errors.As(err, &serr))
				assert.Equal(t, "ParseSpendKey", serr.Op)
			}

			vkBytes := k.ViewKey().Bytes()
			copy(vkBytes[:32], order)
			_, err = suite.ParseViewKey(vkBytes)
			assert.ErrorIs(t, err, ErrNonCanonicalScalar)

			_, err = suite.ParseEphemeralSecret(order)
			assert.ErrorIs(t, err, ErrNonCanonicalScalar)
		})
	}
}

func TestDecodeRejectsInvalidPoint(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			n := suite.Group().PointSize()
			bad := bytes.Repeat([]byte{0xff}, n)

			k, err := suite.GenerateSpendKey(rand.Reader)
			require.NoError(t, err)
			addr := k.StealthAddress().Bytes()

			for _, input := range [][]byte{
				append(append([]byte{}, bad...), addr[n:]...),
				append(append([]byte{}, addr[:n]...), bad...),
			} {
				got, err := suite.ParseStealthAddress(input)
				assert.Nil(t, got)
				assert.ErrorIs(t, err, ErrInvalidEncoding)
			}

			vk := k.ViewKey().Bytes()
			copy(vk[suite.Group().ScalarSize():], bad)
			_, err = suite.ParseViewKey(vk)
			assert.ErrorIs(t, err, ErrInvalidEncoding)

			_, err = suite.ParseEphemeralReference(bad)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
			_, err = suite.ParseEphemeralPublic(bad)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	for _, suite := range testSuites(t) {
		t.Run(suite.Group().Name(), func(t *testing.T) {
			parsers := []struct {
				name  string
				size  int
				parse func([]byte) error
			}{
				{"ParseSpendKey", suite.SpendKeySize(), func(b []byte) error { _, err := suite.ParseSpendKey(b); return err }},
				{"ParseViewKey", suite.ViewKeySize(), func(b []byte) error { _, err := suite.ParseViewKey(b); return err }},
				{"ParseStealthAddress", suite.AddressSize(), func(b []byte) error { _, err := suite.ParseStealthAddress(b); return err }},
				{"ParseAnnouncement", suite.AnnouncementSize(), func(b []byte) error { _, err := suite.ParseAnnouncement(b); return err }},
				{"ParseEphemeralReference", suite.Group().PointSize(), func(b []byte) error { _, err := suite.ParseEphemeralReference(b); return err }},
				{"ParseEphemeralPublic", suite.Group().PointSize(), func(b []byte) error { _, err := suite.ParseEphemeralPublic(b); return err }},
				{"ParseEphemeralSecret", suite.Group().ScalarSize(), func(b []byte) error { _, err := suite.ParseEphemeralSecret(b); return err }},
			}
			for _, p := range parsers {
				for _, n := range []int{0, p.size - 1, p.size + 1, 2 * p.size} {
					assert.ErrorIs(t, p.parse(make([]byte, n)), ErrInputLength, "%s(%d bytes)", p.name, n)
				}
			}
		})
	}
}

// Little-endian encodings around the ristretto255 group order l.
const (
	ristrettoOrderMinusOne = "ecd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"
	ristrettoOrder         = "edd3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"
	ristrettoOrderPlusOne  = "eed3f55c1a631258d69cf7a2def9de1400000000000000000000000000000010"
)

func TestScalarBoundaryKnownAnswer(t *testing.T) {
	suite, err := NewSuiteByName("ristretto255", "sha256")
	require.NoError(t, err)
	k, err := suite.GenerateSpendKey(rand.Reader)
	require.NoError(t, err)

	for _, in := range []string{ristrettoOrder, ristrettoOrderPlusOne, strings.Repeat("ff", 32)} {
		b, err := hex.DecodeString(in)
		require.NoError(t, err)

		_, err = suite.ParseEphemeralSecret(b)
		assert.ErrorIs(t, err, ErrNonCanonicalScalar, in)
		_, err = suite.ParseSpendKey(append(append([]byte{}, b...), k.Bytes()[32:]...))
		assert.ErrorIs(t, err, ErrNonCanonicalScalar, in)
		_, err = suite.ParseSpendKey(append(append([]byte{}, k.Bytes()[:32]...), b...))
		assert.ErrorIs(t, err, ErrNonCanonicalScalar, in)
	}

	top, err := hex.DecodeString(ristrettoOrderMinusOne)
	require.NoError(t, err)
	secret, err := suite.ParseEphemeralSecret(top)
	require.NoError(t, err)
	assert.Equal(t, top, secret.Bytes())

	key, err := suite.ParseSpendKey(append(append([]byte{}, top...), top...))
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte{}, top...), top...), key.Bytes())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestRandomSourceFailure(t *testing.T) {
	suite, err := NewSuiteByName("ristretto255", "sha256")
	require.NoError(t, err)

	_, err = suite.GenerateSpendKey(failingReader{})
	assert.ErrorIs(t, err, ErrRandomSource)

	k, err := suite.GenerateSpendKey(rand.Reader)
	require.NoError(t, err)
	_, _, err = suite.GenerateEphemeral(k.StealthAddress(), failingReader{})
	assert.ErrorIs(t, err, ErrRandomSource)

	_, err = suite.Announce(k.StealthAddress(), failingReader{})
	assert.ErrorIs(t, err, ErrRandomSource)
}

func TestDeterministicWithFixedRandomness(t *testing.T) {
	suite, err := NewSuiteByName("ristretto255", "sha3-256")
	require.NoError(t, err)

	seed := bytes.Repeat([]byte{7}, 64)
	k1, err := suite.GenerateSpendKey(bytes.NewReader(seed))
	require.NoError(t, err)
	k2, err := suite.GenerateSpendKey(bytes.NewReader(seed))
	require.NoError(t, err)
	assert.True(t, k1.Equal(k2))

	rseed := bytes.Repeat([]byte{9}, 32)
	r1, p1, err := suite.GenerateEphemeral(k1.StealthAddress(), bytes.NewReader(rseed))
	require.NoError(t, err)
	r2, p2, err := suite.GenerateEphemeral(k2.StealthAddress(), bytes.NewReader(rseed))
	require.NoError(t, err)
	assert.True(t, r1.Equal(r2))
	assert.True(t, p1.Equal(p2))
}

func TestNewSuite(t *testing.T) {
	_, err := NewSuite(nil, sha256.New)
	assert.ErrorIs(t, err, ErrUnknownGroup)

	_, err = NewSuite(Ristretto255(), nil)
	assert.ErrorIs(t, err, ErrHashSize)

	_, err = NewSuiteByName("p256", "sha256")
	assert.ErrorIs(t, err, ErrUnknownGroup)

	_, err = NewSuiteByName("ristretto255", "md5")
	assert.ErrorIs(t, err, ErrUnknownHash)
}

// TestScenario walks the full recipient/sender/scanner flow and checks that
// every artifact survives serialization.
func TestScenario(t *testing.T) {
	suite, err := NewSuiteByName("ristretto255", "sha256")
	require.NoError(t, err)

	k, err := suite.GenerateSpendKey(rand.Reader)
	require.NoError(t, err)
	vk := k.ViewKey()
	sa := k.StealthAddress()

	r, p, err := suite.GenerateEphemeral(sa, rand.Reader)
	require.NoError(t, err)
	require.True(t, suite.Check(vk, r, p))

	secret := suite.DeriveEphemeralSecret(k, r)
	require.True(t, secret.Public().Equal(p))

	k2, err := suite.ParseSpendKey(k.Bytes())
	require.NoError(t, err)
	vk2, err := suite.ParseViewKey(vk.Bytes())
	require.NoError(t, err)
	sa2, err := suite.ParseStealthAddress(sa.Bytes())
	require.NoError(t, err)
	r2, err := suite.ParseEphemeralReference(r.Bytes())
	require.NoError(t, err)
	p2, err := suite.ParseEphemeralPublic(p.Bytes())
	require.NoError(t, err)
	secret2, err := suite.ParseEphemeralSecret(secret.Bytes())
	require.NoError(t, err)

	assert.True(t, k.Equal(k2))
	assert.True(t, vk.Equal(vk2))
	assert.True(t, sa.Equal(sa2))
	assert.True(t, r.Equal(r2))
	assert.True(t, p.Equal(p2))
	assert.True(t, secret.Equal(secret2))

	// The decoded copies interoperate with the originals.
	assert.True(t, suite.Check(vk2, r2, p))
	assert.True(t, suite.DeriveEphemeralSecret(k2, r2).Equal(secret))
}
