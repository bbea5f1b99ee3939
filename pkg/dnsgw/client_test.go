package dnsgw

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cuemby/hutch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testZone = types.ZoneConfig{Name: "games.example.com", TTL: 60}

// testClient builds a ready client pointed at a plain-HTTP test server; the
// mTLS transport is exercised separately through the not-ready paths.
func testClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		client:  http.DefaultClient,
		ready:   true,
	}
}

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare ipv4", input: "10.0.0.1", expected: "10.0.0.1"},
		{name: "ipv4 with port", input: "10.0.0.1:31000", expected: "10.0.0.1"},
		{name: "bracketed ipv6 with port", input: "[2001:db8::1]:31000", expected: "2001:db8::1"},
		{name: "bracketed ipv6 without port", input: "[2001:db8::1]", expected: "2001:db8::1"},
		{name: "bare ipv6 untouched", input: "2001:db8::1", expected: "2001:db8::1"},
		{name: "surrounding whitespace", input: " 10.0.0.1:80 ", expected: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIP(tt.input))
		})
	}
}

func TestNotReadyFailsClosed(t *testing.T) {
	client := NewClient(Config{Enabled: false})

	assert.False(t, client.Ready())
	assert.ErrorIs(t, client.Upsert(context.Background(), "minecraft-1", []string{"10.0.0.1"}, testZone), ErrNotReady)
	assert.ErrorIs(t, client.Delete(context.Background(), "minecraft-1", testZone), ErrNotReady)
	_, err := client.Get(context.Background(), "minecraft-1", testZone)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestUnreadableCredentialsFailClosed(t *testing.T) {
	client := NewClient(Config{
		Enabled:  true,
		URL:      "https://dns-gw.example.com",
		CertFile: "/nonexistent/client.crt",
		KeyFile:  "/nonexistent/client.key",
		CAFile:   "/nonexistent/ca.crt",
	})

	assert.False(t, client.Ready())
	assert.ErrorIs(t, client.Upsert(context.Background(), "minecraft-1", []string{"10.0.0.1"}, testZone), ErrNotReady)
}

func TestUpsert(t *testing.T) {
	var got types.DNSRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/zones/games.example.com/records", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.Upsert(context.Background(), "minecraft-1", []string{"10.0.0.1:31000", "[2001:db8::1]:31000"}, testZone)

	require.NoError(t, err)
	assert.Equal(t, "minecraft-1", got.Name)
	assert.Equal(t, "A", got.RecordType)
	assert.Equal(t, []string{"10.0.0.1", "2001:db8::1"}, got.Content)
	assert.Equal(t, 60, got.TTL)
}

func TestUpsertRejectedCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "zone frozen"}`))
	}))
	defer server.Close()

	err := testClient(server.URL).Upsert(context.Background(), "minecraft-1", []string{"10.0.0.1"}, testZone)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone frozen")
	assert.Contains(t, err.Error(), "422")
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/zones/games.example.com/records/minecraft-1/A", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	assert.NoError(t, testClient(server.URL).Delete(context.Background(), "minecraft-1", testZone))
}

func TestDeleteNotFoundIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	assert.NoError(t, testClient(server.URL).Delete(context.Background(), "minecraft-1", testZone))
}

func TestDeleteRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("not your zone"))
	}))
	defer server.Close()

	err := testClient(server.URL).Delete(context.Background(), "minecraft-1", testZone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not your zone")
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(types.DNSRecord{
			Name:       "minecraft-1",
			RecordType: "A",
			Content:    []string{"10.0.0.1"},
			TTL:        60,
		})
	}))
	defer server.Close()

	ips, err := testClient(server.URL).Get(context.Background(), "minecraft-1", testZone)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1"}, ips)
}

func TestGetAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ips, err := testClient(server.URL).Get(context.Background(), "minecraft-1", testZone)
	require.NoError(t, err)
	assert.Nil(t, ips)
}
