package geocode

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		BaseURL:   serverURL,
		UserAgent: "oficiogen-test/1.0",
		Timeout:   2 * time.Second,
	}, testLogger())
}

func TestClient_Reverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "-22.970722", r.URL.Query().Get("lat"))
		assert.Equal(t, "-43.186966", r.URL.Query().Get("lon"))
		assert.Equal(t, "pt-BR", r.URL.Query().Get("accept-language"))
		assert.Equal(t, "oficiogen-test/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address": {
			"road": "Avenida Atlântica",
			"house_number": "1702",
			"suburb": "Copacabana",
			"city": "Rio de Janeiro",
			"state": "Rio de Janeiro",
			"postcode": "22021-001"
		}}`))
	}))
	defer server.Close()

	address, err := newTestClient(server.URL).Reverse(context.Background(), "-22.970722", "-43.186966")
	require.NoError(t, err)
	assert.Equal(t,
		"Avenida Atlântica, 1702, Copacabana, Rio de Janeiro, Rio de Janeiro, CEP: 22021-001",
		address)
}

func TestClient_Reverse_ServiceErrorIsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer server.Close()

	address, err := newTestClient(server.URL).Reverse(context.Background(), "0.000000", "0.000000")
	require.NoError(t, err)
	assert.Empty(t, address)
}

func TestClient_Reverse_HTTPErrorIsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	address, err := newTestClient(server.URL).Reverse(context.Background(), "-22.970722", "-43.186966")
	require.NoError(t, err)
	assert.Empty(t, address)
}

func TestClient_Reverse_TimeoutIsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL:   server.URL,
		UserAgent: "oficiogen-test/1.0",
		Timeout:   20 * time.Millisecond,
	}, testLogger())

	address, err := client.Reverse(context.Background(), "-22.970722", "-43.186966")
	require.NoError(t, err)
	assert.Empty(t, address)
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{
			"street without number",
			Address{Road: "Rua do Catete", City: "Rio de Janeiro"},
			"Rua do Catete, Rio de Janeiro",
		},
		{
			"town fallback",
			Address{Road: "Rua Direita", Town: "Paraty", State: "Rio de Janeiro"},
			"Rua Direita, Paraty, Rio de Janeiro",
		},
		{
			"neighbourhood fallback",
			Address{Road: "Rua A", Neighbourhood: "Vila Nova", Village: "Conservatória"},
			"Rua A, Vila Nova, Conservatória",
		},
		{
			"suburb wins over neighbourhood",
			Address{Suburb: "Centro", Neighbourhood: "ignorado"},
			"Centro",
		},
		{
			"postcode only",
			Address{Postcode: "20000-000"},
			"CEP: 20000-000",
		},
		{"nothing", Address{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.addr))
		})
	}
}
