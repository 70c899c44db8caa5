package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy-itayi/restock-app-2.0-sub001/internal/store"
)

func TestClient_Send_Success(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/send", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "messageId": "msg-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	receipt, err := c.Send(context.Background(), Message{
		To:        "orders@acme.test",
		ReplyTo:   "ana@shop.test",
		Subject:   "Restock order",
		Text:      "body",
		Items:     []Item{{ProductName: "Flour", Quantity: 3}},
		StoreName: "Main Street Grocers",
		DeviceID:  "device-1-abcd1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", receipt.MessageID)
	assert.Equal(t, "orders@acme.test", got.To)
	assert.Equal(t, "device-1-abcd1234", got.DeviceID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
}

func TestClient_Send_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "rate limit exceeded"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Send(context.Background(), Message{To: "a@b.test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestClient_Send_SuccessFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with success=false is still a failure.
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "mailbox unavailable"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Send(context.Background(), Message{To: "a@b.test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mailbox unavailable")
}

func TestClient_Send_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream relay down"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Send(context.Background(), Message{To: "a@b.test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream relay down")
}

func TestEnsureDeviceID_GeneratedOnceAndCached(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	id1 := EnsureDeviceID(ctx, s)
	id2 := EnsureDeviceID(ctx, s)

	assert.Equal(t, id1, id2, "device id is generated once and cached indefinitely")
	assert.True(t, strings.HasPrefix(id1, "device-"), "id = %q", id1)
	parts := strings.Split(id1, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 8)
}
