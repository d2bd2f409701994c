// Package portal assembles the customer views shared by the HTTP API and the
// operator CLI.
package portal

import (
	"context"
	"errors"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/stephanygrace/customer-portal/internal/config"
	"github.com/stephanygrace/customer-portal/internal/jobs"
	"github.com/stephanygrace/customer-portal/internal/models"
	"github.com/stephanygrace/customer-portal/internal/upstream"
)

// NewUpstream builds the upstream client from cfg and the fetcher callers
// should use: the client behind the configured retry policy.
func NewUpstream(cfg *config.Config) (*upstream.Client, upstream.Fetcher) {
	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey)
	if cfg.UpstreamRateLimit > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(cfg.UpstreamRateLimit), cfg.UpstreamRateBurst)
	}
	if cfg.UpstreamAPIKey == "" {
		log.Println("WARNING: UPSTREAM_API_KEY is not set; upstream calls will be rejected")
	}
	return client, upstream.NewRetryFetcher(client, cfg.UpstreamMaxAttempts, cfg.UpstreamRetryBackoff)
}

// Bookings lists a customer's active jobs.
type Bookings struct {
	fetcher  upstream.Fetcher
	contacts *upstream.ContactResolver
}

// NewBookings creates a Bookings backed by fetcher.
func NewBookings(fetcher upstream.Fetcher) *Bookings {
	return &Bookings{fetcher: fetcher, contacts: upstream.NewContactResolver(fetcher)}
}

// ForEmail returns the active jobs the email address is a contact on, as
// bookings. An address with no contacts, or contacts on no jobs, yields an
// empty slice. Failures during contact resolution are *upstream.ResolveError;
// failures fetching the job list are returned as the fetcher reported them.
//
// Records without a uuid never match a contact, so the join cannot produce a
// normalization error.
func (b *Bookings) ForEmail(ctx context.Context, email string) ([]models.Booking, error) {
	ids, err := b.contacts.ResolveJobIDs(ctx, email)
	if errors.Is(err, models.ErrUpstreamEmpty) {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Booking{}, nil
	}

	raws, err := b.fetcher.FetchAll(ctx, upstream.ActiveJobs(), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	return jobs.NormalizeAll(jobs.FilterByIDs(raws, ids.Has))
}
