package pg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/geoknoesis/pointedgraph/fetch"
	"github.com/geoknoesis/pointedgraph/rdf"
	"github.com/geoknoesis/pointedgraph/store"
	"github.com/geoknoesis/pointedgraph/stream"
)

func profileServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/n-triples")
		self := "http://" + r.Host + r.URL.Path
		_, _ = w.Write([]byte("<" + self + "#me> <http://xmlns.com/foaf/0.1/name> \"" + r.URL.Path + "\" .\n"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAll(t *testing.T) {
	srv := profileServer(t)
	f := fetch.New(store.New(), fetch.WithLogger(zaptest.NewLogger(t)))
	uris := []string{srv.URL + "/alice#me", srv.URL + "/bob#me", srv.URL + "/missing"}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pgs, err := FetchAll(ctx, f, uris, stream.WithLogger(zaptest.NewLogger(t))).Collect(ctx)
	require.NoError(t, err)

	var names []string
	for _, p := range pgs {
		names = append(names, p.GetLiteral(rdf.FOAF.Term("name"))...)
		doc, err := p.Document()
		require.NoError(t, err)
		assert.Equal(t, rdf.Term(rdf.Sym(doc)), p.Why())
	}
	assert.ElementsMatch(t, []string{"/alice", "/bob"}, names)
}

func TestFetchAllStopsOnError(t *testing.T) {
	srv := profileServer(t)
	f := fetch.New(store.New())
	stop := func(error) bool { return true }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := FetchAll(ctx, f, []string{srv.URL + "/alice", srv.URL + "/missing"}, stream.WithErrorHandler(stop)).Collect(ctx)
	var statusErr *fetch.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetchAllEmpty(t *testing.T) {
	pgs, err := FetchAll(context.Background(), fetch.New(store.New()), nil).Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pgs)
}
