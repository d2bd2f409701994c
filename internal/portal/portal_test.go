package portal

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanygrace/customer-portal/internal/config"
	"github.com/stephanygrace/customer-portal/internal/models"
	"github.com/stephanygrace/customer-portal/internal/upstream"
)

const (
	jobOne = "5d0f1a3e-8a4b-4c2e-9f1a-0b6a3c2d1e01"
	jobTwo = "5d0f1a3e-8a4b-4c2e-9f1a-0b6a3c2d1e02"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// MockFetcher is a mock implementation of upstream.Fetcher.
type MockFetcher struct {
	FetchAllFunc func(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error)
	Endpoints    []string
}

func (m *MockFetcher) FetchAll(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
	m.Endpoints = append(m.Endpoints, endpoint)
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx, endpoint, method, body)
	}
	return nil, nil
}

func stub(contacts []models.RawRecord, contactsErr error, jobs []models.RawRecord, jobsErr error) *MockFetcher {
	return &MockFetcher{FetchAllFunc: func(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
		if strings.HasPrefix(endpoint, upstream.JobContactEndpoint) {
			return contacts, contactsErr
		}
		return jobs, jobsErr
	}}
}

func unreachable(endpoint string) error {
	return &upstream.FetchError{Endpoint: endpoint, Method: http.MethodGet, Pages: 1, StatusCode: http.StatusBadGateway, Err: errors.New("status 502")}
}

func TestBookingsForEmail(t *testing.T) {
	contacts := []models.RawRecord{{"job_uuid": jobOne}, {"job_uuid": jobOne}}
	active := []models.RawRecord{
		{"uuid": jobOne, "generated_job_id": "101"},
		{"uuid": jobTwo, "generated_job_id": "102"},
		{"generated_job_id": "103"},
	}

	t.Run("Joins Contacts To Active Jobs", func(t *testing.T) {
		fetcher := stub(contacts, nil, active, nil)
		bookings, err := NewBookings(fetcher).ForEmail(context.Background(), "jane@example.com")
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, jobOne, bookings[0].UUID)
		assert.Equal(t, []string{upstream.ContactsByEmail("jane@example.com"), upstream.ActiveJobs()}, fetcher.Endpoints)
	})

	t.Run("No Contacts", func(t *testing.T) {
		fetcher := stub([]models.RawRecord{}, nil, active, nil)
		bookings, err := NewBookings(fetcher).ForEmail(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.NotNil(t, bookings)
		assert.Empty(t, bookings)
		assert.Len(t, fetcher.Endpoints, 1)
	})

	t.Run("Contacts Without Job Ids", func(t *testing.T) {
		fetcher := stub([]models.RawRecord{{"uuid": "c1"}}, nil, active, nil)
		bookings, err := NewBookings(fetcher).ForEmail(context.Background(), "jane@example.com")
		require.NoError(t, err)
		assert.Empty(t, bookings)
		assert.Len(t, fetcher.Endpoints, 1)
	})

	t.Run("Contact Lookup Failure", func(t *testing.T) {
		_, err := NewBookings(stub(nil, unreachable("/jobcontact.json"), nil, nil)).ForEmail(context.Background(), "jane@example.com")
		var resolveErr *upstream.ResolveError
		require.ErrorAs(t, err, &resolveErr)
		assert.ErrorIs(t, err, models.ErrUpstreamUnreachable)
	})

	t.Run("Job List Failure", func(t *testing.T) {
		_, err := NewBookings(stub(contacts, nil, nil, unreachable("/job.json"))).ForEmail(context.Background(), "jane@example.com")
		var resolveErr *upstream.ResolveError
		assert.False(t, errors.As(err, &resolveErr))
		assert.ErrorIs(t, err, models.ErrUpstreamUnreachable)
	})
}

func TestNewUpstream(t *testing.T) {
	cfg := &config.Config{
		UpstreamBaseURL:      "https://upstream.example.com/api_1.0",
		UpstreamAPIKey:       "key",
		UpstreamMaxAttempts:  3,
		UpstreamRetryBackoff: time.Millisecond,
		UpstreamRateLimit:    5,
		UpstreamRateBurst:    2,
	}
	client, fetcher := NewUpstream(cfg)
	require.NotNil(t, client.Limiter)
	assert.Equal(t, 2, client.Limiter.Burst())
	assert.IsType(t, &upstream.RetryFetcher{}, fetcher)

	cfg.UpstreamRateLimit = 0
	client, _ = NewUpstream(cfg)
	assert.Nil(t, client.Limiter)
}
