package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasourceHTTP_Rows(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte("a,b;c,d@shares;x"))
	}))
	defer server.Close()

	src := NewHTTPSource(server.Client(), server.URL)
	assert.Equal(t, []string{"a,b", "c,d"}, drain(t, src))
	assert.Equal(t, 1, calls)
	assert.NoError(t, src.Close())
}

func TestDatasourceHTTP_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTPSource(nil, server.URL).Next(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
