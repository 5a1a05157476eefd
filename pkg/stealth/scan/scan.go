// Package scan runs the view capability over batches of announcements.
//
// A Scanner holds only a ViewKey, so it can be operated by a semi-trusted
// service: it finds which announcements pay the recipient but cannot spend
// them. Recover turns matches into one-time secrets for the SpendKey holder.
package scan

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/smallyu/go-stealth/internal/logging"
	"github.com/smallyu/go-stealth/pkg/stealth"
)

// batchSize is the number of announcements checked per goroutine.
const batchSize = 256

// ErrKeyMismatch is returned by Recover when a derived secret does not open
// the matched one-time key, i.e. the spend key does not belong to the view
// key that produced the matches.
var ErrKeyMismatch = errors.New("scan: spend key does not match announcement")

// Options configures a Scanner.
type Options struct {
	// Workers bounds the number of concurrent batches. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives progress records. Nil means slog.Default().
	Logger *slog.Logger
}

// Match is an announcement addressed to the scanner's view key.
type Match struct {
	Index        int // position in the scanned slice
	Announcement *stealth.Announcement
}

// Owned is a match together with its one-time secret.
type Owned struct {
	Match
	Secret *stealth.EphemeralSecret
}

// Scanner checks announcements against one view key.
type Scanner struct {
	suite   *stealth.Suite
	vk      *stealth.ViewKey
	workers int
	log     logging.Logger
}

// New returns a scanner for vk.
func New(suite *stealth.Suite, vk *stealth.ViewKey, opts Options) *Scanner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scanner{
		suite:   suite,
		vk:      vk,
		workers: workers,
		log:     logging.New(opts.Logger).With("component", "scan", "group", suite.Group().Name()),
	}
}

// Scan returns the announcements that belong to the view key, in input
// order. Nil entries never match. Scan stops early and returns ctx's error
// when ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, anns []*stealth.Announcement) ([]Match, error) {
	s.log.Debug(ctx, "scan started", "announcements", len(anns), "workers", s.workers, logging.Redacted("view_key"))

	hits := make([]bool, len(anns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for start := 0; start < len(anns); start += batchSize {
		end := min(start+batchSize, len(anns))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if anns[i] == nil {
					continue
				}
				hits[i] = s.suite.CheckAnnouncement(s.vk, anns[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn(ctx, "scan aborted", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []Match
	for i, hit := range hits {
		if hit {
			matches = append(matches, Match{Index: i, Announcement: anns[i]})
		}
	}
	s.log.Info(ctx, "scan finished", "announcements", len(anns), "matches", len(matches))
	return matches, nil
}

// Recover derives the one-time secret of every match and verifies that it
// opens the announced key.
func Recover(suite *stealth.Suite, sk *stealth.SpendKey, matches []Match) ([]Owned, error) {
	owned := make([]Owned, 0, len(matches))
	for _, m := range matches {
		secret := suite.DeriveEphemeralSecret(sk, m.Announcement.R)
		if !secret.Public().Equal(m.Announcement.Public) {
			return nil, ErrKeyMismatch
		}
		owned = append(owned, Owned{Match: m, Secret: secret})
	}
	return owned, nil
}
