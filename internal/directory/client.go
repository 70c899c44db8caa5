package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/entity"
)

// Org describes an organization as returned by create and join.
type Org struct {
	OrgID  string   `json:"orgId"`
	Code   string   `json:"code,omitempty"`
	Stores []string `json:"stores"`
}

// Client talks to the organization directory over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directory client. A nil httpClient means
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Create registers a new organization with this device's store as its
// first member and returns the join code for other stores.
func (c *Client) Create(ctx context.Context, storeName string) (Org, error) {
	var org Org
	err := c.post(ctx, "/orgs", map[string]string{"storeName": storeName}, &org)
	if err != nil {
		return Org{}, fmt.Errorf("create org: %w", err)
	}
	return org, nil
}

// Join adds this device's store to an existing organization by code.
func (c *Client) Join(ctx context.Context, code, storeName string) (Org, error) {
	var org Org
	err := c.post(ctx, "/orgs/"+url.PathEscape(code)+"/join", map[string]string{"storeName": storeName}, &org)
	if err != nil {
		return Org{}, fmt.Errorf("join org: %w", err)
	}
	return org, nil
}

// ListStores returns the store names registered under code.
func (c *Client) ListStores(ctx context.Context, code string) ([]string, error) {
	var out struct {
		Stores []string `json:"stores"`
	}
	if err := c.get(ctx, "/orgs/"+url.PathEscape(code)+"/stores", &out); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return out.Stores, nil
}

// PublishSnapshot uploads this store's current snapshot.
func (c *Client) PublishSnapshot(ctx context.Context, code, storeName string, snap entity.Snapshot) error {
	path := "/orgs/" + url.PathEscape(code) + "/stores/" + url.PathEscape(storeName) + "/snapshot"
	if err := c.post(ctx, path, snap, nil); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// FetchSnapshot downloads the latest published snapshot for a store.
func (c *Client) FetchSnapshot(ctx context.Context, code, storeName string) (entity.Snapshot, error) {
	var snap entity.Snapshot
	path := "/orgs/" + url.PathEscape(code) + "/stores/" + url.PathEscape(storeName) + "/snapshot"
	if err := c.get(ctx, path, &snap); err != nil {
		return entity.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("directory returned %d: %s", resp.StatusCode, errorReason(raw))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorReason pulls the collaborator's human-readable message out of an
// error response body.
func errorReason(raw []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return "no details"
}
