package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Item is one order line within a send request.
type Item struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// Message is the outbound send request. Wire-stable.
type Message struct {
	To        string `json:"to"`
	ReplyTo   string `json:"replyTo"`
	Subject   string `json:"subject"`
	Text      string `json:"text"`
	Items     []Item `json:"items,omitempty"`
	StoreName string `json:"storeName,omitempty"`
	DeviceID  string `json:"deviceId,omitempty"`
}

// Receipt acknowledges an accepted send.
type Receipt struct {
	MessageID string
}

// sendResponse is the relay's response body.
type sendResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

// Client talks to the email relay over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a relay client. A nil httpClient means
// http.DefaultClient; the embedding client's timeout bounds each send.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Send issues one outbound email request. A transport failure, a non-2xx
// status, or a body with success != true is an error carrying the relay's
// human-readable explanation.
func (c *Client) Send(ctx context.Context, msg Message) (Receipt, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return Receipt{}, fmt.Errorf("send: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("send: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Receipt{}, fmt.Errorf("send: read response: %w", err)
	}

	var parsed sendResponse
	// A non-JSON body on an error status still needs a readable message.
	_ = json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Receipt{}, fmt.Errorf("send: relay returned %d: %s", resp.StatusCode, responseReason(parsed, raw))
	}
	if !parsed.Success {
		return Receipt{}, fmt.Errorf("send: relay rejected message: %s", responseReason(parsed, raw))
	}

	return Receipt{MessageID: parsed.MessageID}, nil
}

// responseReason extracts the most specific human-readable explanation
// from a relay response.
func responseReason(parsed sendResponse, raw []byte) string {
	if parsed.Error != "" {
		return parsed.Error
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return "no details"
}
