package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarimovel/backend/pkg/utils"
)

func TestClient_FetchNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "Rua Augusta São Paulo", r.URL.Query().Get("q"))
		assert.Equal(t, "pt-BR", r.URL.Query().Get("mkt"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": [
			{"name": "Nova linha de metrô", "url": "https://example.com/metro", "datePublished": "2024-04-01", "provider": [{"name": "Diário SP"}]},
			{"name": "Obras na região", "url": "https://example.com/obras", "datePublished": "2024-03-20"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", utils.GetLogger())

	items, err := client.FetchNews(context.Background(), "São Paulo", "Rua Augusta")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Nova linha de metrô", items[0].Title)
	assert.Equal(t, "Diário SP", items[0].Source)
	assert.Empty(t, items[1].Source)
}

func TestClient_NoAPIKeySkipsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without an API key")
	}))
	defer server.Close()

	client := NewClient(server.URL, "", utils.GetLogger())

	items, err := client.FetchNews(context.Background(), "São Paulo", "Rua Augusta")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_NonOKReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", utils.GetLogger())

	items, err := client.FetchNews(context.Background(), "São Paulo", "Rua Augusta")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_CapsAtFiveItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": [
			{"name": "1"}, {"name": "2"}, {"name": "3"}, {"name": "4"}, {"name": "5"}, {"name": "6"}, {"name": "7"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", utils.GetLogger())

	items, err := client.FetchNews(context.Background(), "São Paulo", "Rua Augusta")
	require.NoError(t, err)
	assert.Len(t, items, 5)
}
