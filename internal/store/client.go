package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/record"
)

// APIClient talks to the external store over HTTP using the
// GET/POST /{collection} and GET/PUT/DELETE /{collection}/{key} layout.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// Ensure APIClient implements the Store interface.
var _ Store = (*APIClient)(nil)

// NewClient creates a store client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// NewClientWithHTTP creates a store client using a specific http.Client.
// Useful for tests running against httptest servers.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *APIClient {
	return &APIClient{
		httpClient: httpClient,
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *APIClient) List(ctx context.Context, coll Collection) ([]record.Record, error) {
	resp, err := c.do(ctx, "list", coll, http.MethodGet, c.url(coll, ""), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	recs, err := record.DecodeList(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s list: %w", coll, err)
	}
	log.Debug("Listed records from store", "collection", coll, "count", len(recs))
	return recs, nil
}

func (c *APIClient) Get(ctx context.Context, coll Collection, key string) (record.Record, error) {
	resp, err := c.do(ctx, "get", coll, http.MethodGet, c.url(coll, key), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeOne(resp.Body, coll)
}

func (c *APIClient) Create(ctx context.Context, coll Collection, rec record.Record) (record.Record, error) {
	resp, err := c.do(ctx, "create", coll, http.MethodPost, c.url(coll, ""), rec)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	created, err := decodeOne(resp.Body, coll)
	if err != nil {
		return nil, err
	}
	log.Info("Created record in store", "collection", coll)
	return created, nil
}

func (c *APIClient) Update(ctx context.Context, coll Collection, key string, rec record.Record) (record.Record, error) {
	resp, err := c.do(ctx, "update", coll, http.MethodPut, c.url(coll, key), rec)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	updated, err := decodeOne(resp.Body, coll)
	if err != nil {
		// Only success matters to callers; an odd body is not a failed update.
		log.Warn("Store returned an unreadable update response", "collection", coll, "key", key, "error", err)
		return rec, nil
	}
	return updated, nil
}

func (c *APIClient) Delete(ctx context.Context, coll Collection, key string) error {
	resp, err := c.do(ctx, "delete", coll, http.MethodDelete, c.url(coll, key), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	log.Info("Deleted record from store", "collection", coll, "key", key)
	return nil
}

func (c *APIClient) url(coll Collection, key string) string {
	if key == "" {
		return fmt.Sprintf("%s/%s", c.BaseURL, coll)
	}
	return fmt.Sprintf("%s/%s/%s", c.BaseURL, coll, url.PathEscape(key))
}

func (c *APIClient) do(ctx context.Context, op string, coll Collection, method, target string, body record.Record) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", coll, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("Requesting store", "method", method, "url", target)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s request: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error("Received non-OK HTTP status from store", "op", op, "collection", coll, "status", resp.StatusCode, "body", string(data))
		return nil, &StatusError{Op: op, Collection: coll, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return resp, nil
}

func decodeOne(r io.Reader, coll Collection) (record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", coll, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return record.Record{}, nil
	}
	rec, err := record.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", coll, err)
	}
	return rec, nil
}
