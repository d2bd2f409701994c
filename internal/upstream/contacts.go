package upstream

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/stephanygrace/customer-portal/internal/models"
)

// JobIDSet is a deduplicated set of upstream job uuids.
type JobIDSet map[string]struct{}

// Has reports whether id is in the set.
func (s JobIDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in lexical order.
func (s JobIDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ContactResolver maps a customer to the jobs they are a contact on, via the
// upstream job-contact resource.
type ContactResolver struct {
	fetcher Fetcher

	// JobIDField is the contact field holding the job uuid.
	JobIDField string
}

// NewContactResolver creates a resolver backed by fetcher.
func NewContactResolver(fetcher Fetcher) *ContactResolver {
	return &ContactResolver{fetcher: fetcher, JobIDField: "job_uuid"}
}

// ResolveJobIDs returns the uuids of every job the email address is a contact
// on. It returns a *ResolveError wrapping models.ErrUpstreamEmpty when the
// upstream knows no contacts for the address, and one wrapping the fetch
// error when the upstream could not be queried.
func (r *ContactResolver) ResolveJobIDs(ctx context.Context, email string) (JobIDSet, error) {
	if email == "" {
		return nil, &ResolveError{Identifier: email, Err: fmt.Errorf("%w: customer identifier is empty", models.ErrValidation)}
	}

	contacts, err := r.fetcher.FetchAll(ctx, ContactsByEmail(email), http.MethodGet, nil)
	if err != nil {
		return nil, &ResolveError{Identifier: email, Err: err}
	}
	if len(contacts) == 0 {
		return nil, &ResolveError{Identifier: email, Err: models.ErrUpstreamEmpty}
	}

	ids := make(JobIDSet, len(contacts))
	for _, contact := range contacts {
		id, ok := contact[r.JobIDField].(string)
		if !ok || id == "" {
			continue
		}
		ids[id] = struct{}{}
	}
	log.Printf("[Contacts] %d contact records for %s resolved to %d jobs", len(contacts), email, len(ids))
	return ids, nil
}
