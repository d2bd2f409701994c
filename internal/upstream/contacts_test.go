package upstream

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanygrace/customer-portal/internal/models"
)

func TestResolveJobIDs(t *testing.T) {
	t.Run("Deduplicates And Skips Records Without Job", func(t *testing.T) {
		mock := &MockFetcher{FetchAllFunc: func(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
			assert.Equal(t, http.MethodGet, method)
			return []models.RawRecord{
				{"uuid": "c1", "job_uuid": "job-1", "email": "jane@example.com"},
				{"uuid": "c2", "job_uuid": "job-2"},
				{"uuid": "c3", "job_uuid": "job-1"},
				{"uuid": "c4"},
				{"uuid": "c5", "job_uuid": ""},
			}, nil
		}}
		resolver := NewContactResolver(mock)

		ids, err := resolver.ResolveJobIDs(context.Background(), "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"job-1", "job-2"}, ids.Sorted())
		assert.True(t, ids.Has("job-2"))
		assert.False(t, ids.Has("job-3"))
		require.Len(t, mock.Endpoints, 1)
		assert.Equal(t, ContactsByEmail("jane@example.com"), mock.Endpoints[0])
	})

	t.Run("No Contacts Is Empty Not Unreachable", func(t *testing.T) {
		mock := &MockFetcher{FetchAllFunc: func(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
			return []models.RawRecord{}, nil
		}}
		resolver := NewContactResolver(mock)

		ids, err := resolver.ResolveJobIDs(context.Background(), "nobody@example.com")
		require.Error(t, err)
		assert.Nil(t, ids)
		assert.True(t, errors.Is(err, models.ErrUpstreamEmpty))
		assert.False(t, errors.Is(err, models.ErrUpstreamUnreachable))

		var re *ResolveError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, "nobody@example.com", re.Identifier)
	})

	t.Run("Contacts Without Jobs Yield Empty Set", func(t *testing.T) {
		mock := &MockFetcher{FetchAllFunc: func(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
			return []models.RawRecord{{"uuid": "c1"}}, nil
		}}
		resolver := NewContactResolver(mock)

		ids, err := resolver.ResolveJobIDs(context.Background(), "jane@example.com")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Fetch Failure Is Unreachable", func(t *testing.T) {
		mock := &MockFetcher{FetchAllFunc: func(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
			return nil, &FetchError{Endpoint: endpoint, Pages: 1, StatusCode: http.StatusInternalServerError, Err: errors.New("status 500")}
		}}
		resolver := NewContactResolver(mock)

		_, err := resolver.ResolveJobIDs(context.Background(), "jane@example.com")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrUpstreamUnreachable))
		assert.False(t, errors.Is(err, models.ErrUpstreamEmpty))
	})

	t.Run("Empty Identifier", func(t *testing.T) {
		mock := &MockFetcher{}
		resolver := NewContactResolver(mock)

		_, err := resolver.ResolveJobIDs(context.Background(), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrValidation))
		assert.Equal(t, 0, mock.Calls)
	})
}

func TestFilterHelpers(t *testing.T) {
	assert.Equal(t, "'it''s'", Quote("it's"))
	assert.Equal(t, "uuid eq 'abc'", Eq("uuid", "abc"))
	assert.Equal(t, "/job.json?$filter=active%20eq%201", ActiveJobs())
	assert.Equal(t, "/job.json?$filter=uuid%20eq%20%27abc%27", JobByUUID("abc"))
	assert.Equal(t, "/job.json?x=1&$filter=a%20eq%201", WithFilter("/job.json?x=1", "a eq 1"))
}
