package pg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/geoknoesis/pointedgraph/fetch"
	"github.com/geoknoesis/pointedgraph/rdf"
	"github.com/geoknoesis/pointedgraph/store"
)

const docURI = "http://example.org/doc"

// recordExchange adds the statements a fetcher writes for one exchange.
func recordExchange(t *testing.T, st *store.Store, id, doc, status string, headers map[string]string) rdf.Term {
	t.Helper()
	app := fetch.AppNode()
	req, resp := rdf.BNode("req-"+id), rdf.BNode("resp-"+id)
	stmts := []rdf.Statement{
		{Subject: req, Predicate: rdf.LinkRequested, Object: rdf.Lit(doc), Why: app},
		{Subject: req, Predicate: rdf.LinkResponse, Object: resp, Why: app},
		{Subject: resp, Predicate: rdf.HTTPStatus, Object: rdf.Lit(status), Why: resp},
		{Subject: resp, Predicate: rdf.HTTPStatusText, Object: rdf.Lit("OK"), Why: resp},
	}
	for name, value := range headers {
		stmts = append(stmts, rdf.Statement{Subject: resp, Predicate: rdf.HTTPH.Term(name), Object: rdf.Lit(value), Why: resp})
	}
	require.NoError(t, st.AddAll(stmts))
	return resp
}

func TestRequestAndResponseNodes(t *testing.T) {
	st := store.New()
	resp := recordExchange(t, st, "1", docURI, "200", nil)

	req, err := RequestNode(st, docURI)
	require.NoError(t, err)
	assert.Equal(t, rdf.Term(rdf.BNode("req-1")), req)

	got, err := ResponseNode(st, req)
	require.NoError(t, err)
	assert.Equal(t, resp, got)

	p := ForSymbol(st, rdf.Sym(docURI+"#me"))
	got, err = p.ResponseNode()
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestRequestNodeCardinality(t *testing.T) {
	st := store.New()
	_, err := RequestNode(st, docURI)
	var cerr *CardinalityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Count)

	recordExchange(t, st, "1", docURI, "200", nil)
	recordExchange(t, st, "2", docURI, "200", nil)
	_, err = RequestNode(st, docURI)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Count)
	assert.ErrorIs(t, err, ErrCardinality)

	_, err = ResponseNode(st, nil)
	assert.ErrorIs(t, err, rdf.ErrNotATerm)
}

func TestRequestNodeRequiresFragmentlessURI(t *testing.T) {
	_, err := RequestNode(store.New(), docURI+"#me")
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestResponseReadout(t *testing.T) {
	st := store.New()
	recordExchange(t, st, "1", docURI, "201", map[string]string{
		"allow":        "GET, POST",
		"content-type": "text/turtle",
	})
	p := ForSymbol(st, rdf.Sym(docURI+"#me"))

	status, err := p.ResponseStatus()
	require.NoError(t, err)
	assert.Equal(t, 201, status)

	text, err := p.ResponseStatusText()
	require.NoError(t, err)
	assert.Equal(t, "OK", text)

	value, ok, err := p.ResponseHeader("Content-Type")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "text/turtle", value)

	_, ok, err = p.ResponseHeader("ETag")
	require.NoError(t, err)
	assert.False(t, ok)

	ac, err := p.AccessControl()
	require.NoError(t, err)
	assert.ElementsMatch(t, []Mode{ModeRead, ModeAppend}, ac.Modes())
}

func TestResponseStatusNotANumber(t *testing.T) {
	st := store.New()
	recordExchange(t, st, "1", docURI, "teapot", nil)
	_, err := ForSymbol(st, rdf.Sym(docURI)).ResponseStatus()
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestResponseHeaderRepeated(t *testing.T) {
	st := store.New()
	resp := recordExchange(t, st, "1", docURI, "200", map[string]string{"allow": "GET"})
	_, err := st.Add(resp, rdf.HTTPH.Term("allow"), rdf.Lit("PUT"), resp)
	require.NoError(t, err)

	_, _, err = ForSymbol(st, rdf.Sym(docURI)).ResponseHeader("allow")
	assert.ErrorIs(t, err, ErrCardinality)
	_, err = ForSymbol(st, rdf.Sym(docURI)).AccessControl()
	assert.ErrorIs(t, err, ErrCardinality)
}

func TestAccessControlDefaultsToRead(t *testing.T) {
	st := store.New()
	recordExchange(t, st, "1", docURI, "200", nil)
	ac, err := ForSymbol(st, rdf.Sym(docURI)).AccessControl()
	require.NoError(t, err)
	assert.Equal(t, []string{"GET"}, ac.Verbs())
	assert.Equal(t, []Mode{ModeRead}, ac.Modes())
}

func TestMetadataOfFetchedDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/n-triples")
		w.Header().Set("Allow", "OPTIONS, GET, HEAD, POST, PUT, PATCH, DELETE")
		w.Header().Set("Link", `<card.acl>; rel="acl", <http://example.org/meta>; rel="describedby"`)
		_, _ = w.Write([]byte("<http://example.org/s> <http://example.org/p> \"o\" .\n"))
	}))
	defer srv.Close()

	st := store.New()
	f := fetch.New(st, fetch.WithLogger(zaptest.NewLogger(t)))
	uri := srv.URL + "/card#me"
	require.NoError(t, f.Load(context.Background(), uri))

	p := ForSymbol(st, rdf.Sym(uri))
	status, err := p.ResponseStatus()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	ac, err := p.AccessControl()
	require.NoError(t, err)
	assert.ElementsMatch(t, []Mode{ModeRead, ModeWrite, ModeAppend}, ac.Modes())

	acl, err := p.LinkTargets("ACL")
	require.NoError(t, err)
	assert.Equal(t, []rdf.Symbol{rdf.Sym(srv.URL + "/card.acl")}, acl)

	meta, err := p.LinkTargets(rdf.IANALinkRelations.Term("describedby").URI)
	require.NoError(t, err)
	assert.Equal(t, []rdf.Symbol{rdf.Sym("http://example.org/meta")}, meta)

	none, err := p.LinkTargets("next")
	require.NoError(t, err)
	assert.Empty(t, none)
}
