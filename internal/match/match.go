// Package match asks the catalog to pick one dog from the user's favorites.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/five82/pawmatch/internal/auth"
	"github.com/five82/pawmatch/internal/catalog"
)

// ErrNoCandidate is returned when the matched id does not resolve to a record.
var ErrNoCandidate = errors.New("match did not resolve to a dog")

// Requester submits favorites and resolves the chosen id.
type Requester struct {
	api    catalog.API
	expiry auth.ExpiryHandler
	logger *slog.Logger
}

// New builds a Requester. expiry and logger may be nil.
func New(api catalog.API, expiry auth.ExpiryHandler, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Requester{api: api, expiry: expiry, logger: logger}
}

// Match posts ids to the match endpoint, then looks up the returned id. It
// does not check ids for emptiness; callers only offer matching when there
// are favorites.
func (r *Requester) Match(ctx context.Context, ids []string) (catalog.Dog, error) {
	resp, err := r.api.Match(ctx, ids)
	if err != nil {
		return catalog.Dog{}, r.fail(fmt.Errorf("match: %w", err))
	}

	dogs, err := r.api.Dogs(ctx, []string{resp.Match})
	if err != nil {
		return catalog.Dog{}, r.fail(fmt.Errorf("lookup match: %w", err))
	}
	for _, d := range dogs {
		if d.ID == resp.Match {
			r.logger.Info("match found", "id", d.ID, "candidates", len(ids))
			return d, nil
		}
	}
	return catalog.Dog{}, fmt.Errorf("%w: %q", ErrNoCandidate, resp.Match)
}

func (r *Requester) fail(err error) error {
	if errors.Is(err, catalog.ErrSessionExpired) && r.expiry != nil {
		r.expiry.SessionExpired(err)
	}
	r.logger.Warn("match failed", "error", err)
	return err
}
