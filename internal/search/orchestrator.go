package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/five82/pawmatch/internal/auth"
	"github.com/five82/pawmatch/internal/catalog"
	"github.com/five82/pawmatch/internal/filter"
)

// ErrStale marks a response that was superseded by a newer search.
var ErrStale = errors.New("search superseded by a newer request")

// Orchestrator turns filter states into published result pages.
type Orchestrator struct {
	api    catalog.API
	expiry auth.ExpiryHandler
	store  *Store
	logger *slog.Logger
}

// New builds an Orchestrator. expiry receives credential failures and may be
// nil; logger may be nil.
func New(api catalog.API, expiry auth.ExpiryHandler, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		api:    api,
		expiry: expiry,
		store:  &Store{},
		logger: logger,
	}
}

// Search runs f against the catalog: an id search, then a batch lookup of
// the returned ids. The page is published only if no newer search was issued
// meanwhile; otherwise the page is returned together with ErrStale.
//
// Credential failures from either call go to the expiry handler before the
// error is returned. Nothing is retried.
func (o *Orchestrator) Search(ctx context.Context, f filter.State) (Page, error) {
	seq := o.store.Begin()
	query := QueryFor(f)
	o.logger.Debug("search issued", "seq", seq, "breeds", len(query.Breeds), "zips", len(query.ZipCodes), "from", query.From)

	resp, err := o.api.Search(ctx, query)
	if err != nil {
		return Page{}, o.fail(seq, fmt.Errorf("search: %w", err))
	}

	var dogs []catalog.Dog
	if len(resp.ResultIDs) > 0 {
		dogs, err = o.api.Dogs(ctx, resp.ResultIDs)
		if err != nil {
			return Page{}, o.fail(seq, fmt.Errorf("lookup: %w", err))
		}
		dogs = catalog.OrderByIDs(dogs, resp.ResultIDs)
	}

	page := Page{
		Seq:    seq,
		Filter: f,
		Dogs:   dogs,
		Total:  resp.Total,
		Offset: f.Offset(),
	}
	page.NextOffset, page.HasNext = resp.NextOffset()

	if !o.store.Publish(page) {
		o.logger.Debug("search discarded", "seq", seq, "latest", o.store.Latest())
		return page, ErrStale
	}
	o.logger.Debug("search published", "seq", seq, "results", len(dogs), "total", resp.Total)
	return page, nil
}

func (o *Orchestrator) fail(seq uint64, err error) error {
	if errors.Is(err, catalog.ErrSessionExpired) && o.expiry != nil {
		o.expiry.SessionExpired(err)
	}
	if !o.store.Fail(seq, err) {
		o.logger.Debug("search failure discarded", "seq", seq, "error", err)
		return errors.Join(ErrStale, err)
	}
	o.logger.Warn("search failed", "seq", seq, "error", err)
	return err
}

// Current returns the published page state.
func (o *Orchestrator) Current() Snapshot {
	return o.store.Snapshot()
}

// Lookup finds a record on the current page by id.
func (o *Orchestrator) Lookup(id string) (catalog.Dog, bool) {
	snap := o.store.Snapshot()
	for _, d := range snap.Page.Dogs {
		if d.ID == id {
			return d, true
		}
	}
	return catalog.Dog{}, false
}

// Reset clears the current page, e.g. after logout.
func (o *Orchestrator) Reset() {
	o.store.Reset()
}

// QueryFor serializes f into catalog query parameters. Empty sets, unset age
// bounds, the default page size and a zero offset are left out.
func QueryFor(f filter.State) catalog.SearchQuery {
	q := catalog.SearchQuery{
		Breeds:   f.Breeds(),
		ZipCodes: f.ZipCodes(),
		AgeMin:   f.AgeMin().Ptr(),
		AgeMax:   f.AgeMax().Ptr(),
		From:     f.Offset(),
	}
	if f.PageSize() != filter.DefaultPageSize {
		q.Size = f.PageSize()
	}
	if f.SortField() != filter.SortNone {
		q.SortField = string(f.SortField())
		q.SortDirection = string(f.SortDirection())
	}
	return q
}
