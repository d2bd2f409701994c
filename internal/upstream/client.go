package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stephanygrace/customer-portal/internal/models"
)

const (
	// DefaultBaseURL is the upstream platform's public API root.
	DefaultBaseURL = "https://api.servicem8.com/api_1.0"
	// DefaultMaxPages bounds a single pagination walk.
	DefaultMaxPages = 1000

	cursorParam  = "cursor"
	cursorField  = "next_cursor"
	cursorHeader = "X-Next-Cursor"
	apiKeyHeader = "X-API-Key"
)

// Fetcher walks every page of an upstream list endpoint.
type Fetcher interface {
	FetchAll(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error)
}

// Client talks to the upstream platform's REST API.
type Client struct {
	BaseURL    string
	APIKey     string
	HttpClient *http.Client

	// Limiter throttles page requests when set.
	Limiter *rate.Limiter

	// CollectionFields lists envelope keys that hold a page of records when
	// the upstream wraps its response in an object.
	CollectionFields []string

	// MaxPages stops a runaway walk; zero means DefaultMaxPages.
	MaxPages int
}

// NewClient creates a client for the upstream platform. The HTTP client has no
// timeout of its own; deadlines come from the caller's context.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:          strings.TrimRight(baseURL, "/"),
		APIKey:           apiKey,
		HttpClient:       &http.Client{},
		CollectionFields: []string{"jobs"},
		MaxPages:         DefaultMaxPages,
	}
}

// FetchAll requests endpoint repeatedly, following the cursor returned with
// each page, and returns every record in arrival order. Pages are fetched
// strictly one after another. Any failure yields a *FetchError holding the
// records gathered so far.
func (c *Client) FetchAll(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
	if method == "" {
		method = http.MethodGet
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var records []models.RawRecord
	cursor := ""
	for pages := 1; ; pages++ {
		fail := func(status int, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
			return &FetchError{
				Endpoint:   endpoint,
				Method:     method,
				Pages:      pages,
				Cursor:     cursor,
				StatusCode: status,
				Partial:    records,
				Err:        err,
			}
		}

		if pages > maxPages {
			return nil, fail(0, ErrTooManyPages)
		}

		page, next, status, err := c.fetchPage(ctx, endpoint, method, body, cursor)
		if err != nil {
			log.Printf("[Upstream] %s %s page %d failed: %v", method, endpoint, pages, err)
			return nil, fail(status, err)
		}
		records = append(records, page...)

		if next == "" {
			return records, nil
		}
		if next == cursor {
			log.Printf("[Upstream] %s %s returned the same cursor twice, stopping after page %d", method, endpoint, pages)
			return records, nil
		}
		cursor = next
	}
}

// Ping issues a single page request against endpoint and discards the result.
func (c *Client) Ping(ctx context.Context, endpoint string) error {
	_, _, status, err := c.fetchPage(ctx, endpoint, http.MethodGet, nil, "")
	if err != nil {
		return &FetchError{Endpoint: endpoint, Method: http.MethodGet, Pages: 1, StatusCode: status, Err: err}
	}
	return nil
}

// fetchPage performs one request and decodes its envelope. The returned
// status is non-zero whenever a response was received.
func (c *Client) fetchPage(ctx context.Context, endpoint, method string, body interface{}, cursor string) ([]models.RawRecord, string, int, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, "", 0, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.pageURL(endpoint, cursor), reqBody)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HttpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Upstream] %s %s returned status %d: %s", method, endpoint, resp.StatusCode, truncate(string(data), 256))
		return nil, "", resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	records, next, err := decodePage(data, c.CollectionFields)
	if err != nil {
		return nil, "", resp.StatusCode, err
	}
	if next == "" {
		next = resp.Header.Get(cursorHeader)
	}
	return records, next, resp.StatusCode, nil
}

func (c *Client) pageURL(endpoint, cursor string) string {
	u := c.BaseURL + endpoint
	if cursor == "" {
		return u
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return u + sep + cursorParam + "=" + escapeQuery(cursor)
}

// decodePage folds the three envelope shapes the upstream uses into a flat
// list: a bare array, an object wrapping a named array with a sibling cursor,
// or a single record object.
func decodePage(data []byte, collectionFields []string) ([]models.RawRecord, string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var envelope interface{}
	if err := dec.Decode(&envelope); err != nil {
		return nil, "", fmt.Errorf("failed to decode response: %w", err)
	}

	switch v := envelope.(type) {
	case nil:
		return nil, "", nil
	case []interface{}:
		return toRecords(v), "", nil
	case map[string]interface{}:
		cursor := cursorValue(v[cursorField])
		for _, field := range collectionFields {
			if items, ok := v[field].([]interface{}); ok {
				return toRecords(items), cursor, nil
			}
		}
		return []models.RawRecord{models.RawRecord(v)}, cursor, nil
	default:
		return nil, "", fmt.Errorf("unexpected response envelope of type %T", envelope)
	}
}

func toRecords(items []interface{}) []models.RawRecord {
	records := make([]models.RawRecord, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			records = append(records, models.RawRecord(m))
		}
	}
	return records
}

func cursorValue(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case json.Number:
		return c.String()
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryFetcher re-runs a failed walk from the first page. It is the extension
// point for retry policy; the Client itself never retries.
type RetryFetcher struct {
	Next        Fetcher
	MaxAttempts int
	Backoff     time.Duration
	Retryable   func(error) bool
}

// NewRetryFetcher wraps next with up to maxAttempts attempts.
func NewRetryFetcher(next Fetcher, maxAttempts int, backoff time.Duration) *RetryFetcher {
	return &RetryFetcher{Next: next, MaxAttempts: maxAttempts, Backoff: backoff, Retryable: IsRetryable}
}

// FetchAll implements Fetcher.
func (r *RetryFetcher) FetchAll(ctx context.Context, endpoint, method string, body interface{}) ([]models.RawRecord, error) {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryable := r.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		records, err := r.Next.FetchAll(ctx, endpoint, method, body)
		if err == nil {
			return records, nil
		}
		lastErr = err
		if attempt == attempts || !retryable(err) {
			break
		}

		wait := r.Backoff * time.Duration(attempt)
		log.Printf("[Upstream] attempt %d/%d for %s failed: %v; retrying in %s", attempt, attempts, endpoint, err, wait)
		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}
