package flowhost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flows/acme/onboarding", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"client":"acme","flow":"onboarding","title":"Onboarding","published":true,"variants":["a","b"]}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	info, err := client.Describe(context.Background(), "acme", "onboarding")
	require.NoError(t, err)
	assert.Equal(t, "Onboarding", info.Title)
	assert.True(t, info.Published)
	assert.Equal(t, []string{"a", "b"}, info.Variants)
}

func TestDescribeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Describe(context.Background(), "acme", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestDescribeRespectsContextCancellation(t *testing.T) {
	client := New("https://unreachable.invalid")
	client.SetRateLimit(0.0001)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Describe(ctx, "acme", "onboarding")
	assert.Error(t, err)
}
