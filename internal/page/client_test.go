package page

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarimovel/backend/internal/models"
	"github.com/radarimovel/backend/pkg/utils"
)

func TestClient_Analyze(t *testing.T) {
	want := sampleResponse("abc123def456")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.AnalyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Rua Augusta, 1500", req.Query)
		assert.Equal(t, "São Paulo", req.City)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(want)
	}))
	defer server.Close()

	client := NewClient(server.URL, utils.GetLogger())

	got, err := client.Analyze(context.Background(), "Rua Augusta, 1500", "São Paulo")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClient_NonOKBodyBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Bad city"))
	}))
	defer server.Close()

	client := NewClient(server.URL, utils.GetLogger())

	_, err := client.Analyze(context.Background(), "Rua Augusta, 1500", "São Paulo")
	require.Error(t, err)
	assert.Equal(t, "Bad city", err.Error())
}

func TestClient_EmptyErrorBodyFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, utils.GetLogger())

	_, err := client.Analyze(context.Background(), "Rua Augusta, 1500", "São Paulo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_MalformedJSONIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, utils.GetLogger())

	_, err := client.Analyze(context.Background(), "Rua Augusta, 1500", "São Paulo")
	assert.Error(t, err)
}
