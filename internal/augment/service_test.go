package augment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(Config{
		URL:     srv.URL,
		Query:   "classic literature",
		Limit:   24,
		Timeout: time.Second,
	}, zap.NewNop())
}

func TestService_Fetch(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search.json", r.URL.Path)
		require.Equal(t, "classic literature", r.URL.Query().Get("q"))
		require.Equal(t, "24", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"docs":[
			{"title":"Dune","author_name":["Frank Herbert"],"subject":["Science Fiction"],"isbn":["0441172717"]},
			{"title":"Solaris","author_name":["Stanislaw Lem"],"cover_i":12345},
			{}
		]}`))
	})

	books, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)

	require.Equal(t, "Dune", books[0].Title)
	require.Equal(t, "Frank Herbert", books[0].Author)
	require.Equal(t, "Science Fiction", books[0].Category)
	require.NotNil(t, books[0].CoverURL)
	require.Equal(t, "https://covers.openlibrary.org/b/isbn/0441172717-M.jpg", *books[0].CoverURL)

	require.Equal(t, "Solaris", books[1].Title)
	require.Equal(t, "General", books[1].Category)
	require.NotNil(t, books[1].CoverURL)
	require.Equal(t, "https://covers.openlibrary.org/b/id/12345-M.jpg", *books[1].CoverURL)

	require.Equal(t, "Untitled", books[2].Title)
	require.Equal(t, "Unknown", books[2].Author)
	require.Nil(t, books[2].CoverURL)

	for _, b := range books {
		require.GreaterOrEqual(t, b.Price, float64(priceMin))
		require.Less(t, b.Price, float64(priceMax))
		require.GreaterOrEqual(t, b.Stock, stockMin)
		require.LessOrEqual(t, b.Stock, stockMax)
	}
}

func TestService_FetchUpstreamError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := svc.Fetch(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 503")
}

func TestService_FetchBadPayload(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs":`))
	})

	_, err := svc.Fetch(context.Background())
	require.Error(t, err)
}

func TestService_Limit(t *testing.T) {
	svc := NewService(Config{Limit: 24}, zap.NewNop())
	require.Equal(t, 24, svc.Limit())
}
