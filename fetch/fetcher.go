// Package fetch loads RDF documents over HTTP into a store and records how each
// document was obtained.
//
// For every load the fetcher writes a request node and a response node using the
// LINK, HTTP and HTTPH vocabularies:
//
//	_:req  link:requestedURI  "http://example.org/doc"   (context AppNode)
//	_:req  rdfs:label         "<time> Request for ..."   (context AppNode)
//	_:req  link:response      _:resp                     (context AppNode)
//	_:resp http:status        "200"                      (context _:resp)
//	_:resp http:statusText    "OK"                       (context _:resp)
//	_:resp httph:allow        "GET, HEAD"                (context _:resp)
//
// Document triples are stored with the fragment-less document symbol as context.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/cachecontrol"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/geoknoesis/pointedgraph/rdf"
	"github.com/geoknoesis/pointedgraph/store"
	"github.com/geoknoesis/pointedgraph/stream"
)

// AppNodeURI names the context of request statements recorded by any Fetcher.
const AppNodeURI = "chrome://TheCurrentSession"

// DefaultTimeout bounds a single HTTP exchange.
const DefaultTimeout = 30 * time.Second

// DefaultAccept is sent with every request.
const DefaultAccept = "application/n-triples, application/n-quads;q=0.9, application/ld+json;q=0.8, application/json;q=0.5, */*;q=0.1"

// AppNode returns the context term of request statements.
func AppNode() rdf.Symbol { return rdf.Sym(AppNodeURI) }

var (
	// ErrInvalidURI indicates a URI that is not an absolute http(s) URI.
	ErrInvalidURI = errors.New("fetch: invalid document URI")
)

// StatusError reports a non-2xx response. The response metadata is still
// recorded in the store.
type StatusError struct {
	URI        string
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %d %s", e.URI, e.StatusCode, e.StatusText)
}

// Options configures a Fetcher.
type Options struct {
	// Timeout bounds each HTTP exchange when Client is not set.
	Timeout time.Duration
	// Client overrides the HTTP client.
	Client *http.Client
	// Logger receives fetch diagnostics.
	Logger *zap.Logger
	// UserAgent is sent with each request when non-empty.
	UserAgent string
	// Now returns the current time.
	Now func() time.Time
}

// Option configures a Fetcher.
type Option func(*Options)

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.Client = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *Options) { o.UserAgent = ua }
}

// WithClock sets the time source used for labels and cache freshness.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

type docState struct {
	expires time.Time
}

// Fetcher loads documents into a store.
type Fetcher struct {
	store     *store.Store
	client    *http.Client
	logger    *zap.Logger
	userAgent string
	now       func() time.Time

	group singleflight.Group
	mu    sync.Mutex
	docs  map[string]docState
}

// New returns a Fetcher writing into st.
func New(st *store.Store, opts ...Option) *Fetcher {
	o := Options{Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Timeout}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return &Fetcher{
		store:     st,
		client:    o.Client,
		logger:    o.Logger,
		userAgent: o.UserAgent,
		now:       o.Now,
		docs:      make(map[string]docState),
	}
}

// Store returns the store the fetcher writes into.
func (f *Fetcher) Store() *store.Store { return f.store }

// DocumentURI strips the fragment from uri and checks it is an absolute
// http(s) URI.
func DocumentURI(uri string) (string, error) {
	doc, _, _ := strings.Cut(uri, "#")
	u, err := url.Parse(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return doc, nil
}

// Load fetches the document containing uri unless a fresh copy is already
// loaded. Concurrent loads of the same document share one request; that
// request is not canceled with ctx, so other callers still get its result.
// Only a successful, parsed load is ever considered fresh.
func (f *Fetcher) Load(ctx context.Context, uri string) error {
	doc, err := DocumentURI(uri)
	if err != nil {
		return err
	}
	if f.isFresh(doc) {
		f.logger.Debug("Document still fresh, skipping fetch", zap.String("uri", doc))
		return nil
	}
	shared := context.WithoutCancel(ctx)
	ch := f.group.DoChan(doc, func() (interface{}, error) {
		return nil, f.fetch(shared, doc)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh fetches the document containing uri even if it is fresh.
func (f *Fetcher) Refresh(ctx context.Context, uri string) error {
	doc, err := DocumentURI(uri)
	if err != nil {
		return err
	}
	f.mu.Lock()
	delete(f.docs, doc)
	f.mu.Unlock()
	return f.Load(ctx, doc)
}

// LoadAsync starts Load in a new goroutine. The promise resolves to the
// document symbol.
func (f *Fetcher) LoadAsync(ctx context.Context, uri string) *stream.Promise[rdf.Symbol] {
	return stream.Go(func() (rdf.Symbol, error) {
		doc, err := DocumentURI(uri)
		if err != nil {
			return rdf.Symbol{}, err
		}
		if err := f.Load(ctx, doc); err != nil {
			return rdf.Symbol{}, err
		}
		return rdf.Sym(doc), nil
	})
}

// Loaded reports whether the document containing uri has been fetched and not
// unloaded since.
func (f *Fetcher) Loaded(uri string) bool {
	doc, err := DocumentURI(uri)
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[doc]
	return ok
}

func (f *Fetcher) isFresh(doc string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.docs[doc]
	return ok && f.now().Before(state.expires)
}

// Unload removes the document triples and the request/response metadata of
// every previous load of the document containing uri.
func (f *Fetcher) Unload(uri string) error {
	doc, err := DocumentURI(uri)
	if err != nil {
		return err
	}
	f.unload(doc)
	return nil
}

func (f *Fetcher) unload(doc string) {
	app := AppNode()
	removed := f.store.RemoveMatches(nil, rdf.Symbol{}, nil, rdf.Sym(doc))
	for _, req := range f.store.Each(nil, rdf.LinkRequested, rdf.Lit(doc), app) {
		for _, resp := range f.store.Each(req, rdf.LinkResponse, nil, app) {
			removed += f.store.RemoveMatches(nil, rdf.Symbol{}, nil, resp)
		}
		removed += f.store.RemoveMatches(req, rdf.Symbol{}, nil, app)
	}
	f.mu.Lock()
	delete(f.docs, doc)
	f.mu.Unlock()
	f.logger.Debug("Unloaded document", zap.String("uri", doc), zap.Int("statements", removed))
}

func (f *Fetcher) fetch(ctx context.Context, doc string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	req.Header.Set("Accept", DefaultAccept)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.logger.Debug("Fetching document", zap.String("uri", doc))
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", doc, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("fetch %s: reading body: %w", doc, err)
	}

	f.unload(doc)
	if err := f.record(doc, resp); err != nil {
		return err
	}
	f.setState(doc, docState{})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URI: doc, StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}
	if err := f.parse(ctx, doc, resp.Header.Get("Content-Type"), body); err != nil {
		return err
	}

	if reasons, expires, err := cachecontrol.CachableResponse(req, resp, cachecontrol.Options{PrivateCache: true}); err == nil && len(reasons) == 0 {
		f.setState(doc, docState{expires: expires})
	}
	return nil
}

func (f *Fetcher) setState(doc string, state docState) {
	f.mu.Lock()
	f.docs[doc] = state
	f.mu.Unlock()
}

func (f *Fetcher) parse(ctx context.Context, doc, contentType string, body []byte) error {
	format, err := rdf.FormatForContentType(contentType)
	if err != nil {
		sniffed, ok := sniff(contentType, body)
		if !ok {
			f.logger.Debug("Skipping body of unsupported type",
				zap.String("uri", doc),
				zap.String("contentType", contentType))
			return nil
		}
		format = sniffed
	}
	var stmts []rdf.Statement
	err = rdf.Parse(ctx, bytes.NewReader(body), format, func(s rdf.Statement) error {
		stmts = append(stmts, s)
		return nil
	}, rdf.OptBase(doc), rdf.OptWhy(rdf.Sym(doc)), rdf.OptBlankNodePrefix(uuid.NewString()+"-"))
	if err != nil {
		f.logger.Warn("Failed to parse document", zap.String("uri", doc), zap.Error(err))
		return fmt.Errorf("fetch %s: %w", doc, err)
	}
	if err := f.store.AddAll(stmts); err != nil {
		return fmt.Errorf("fetch %s: %w", doc, err)
	}
	f.logger.Debug("Loaded document",
		zap.String("uri", doc),
		zap.String("format", string(format)),
		zap.Int("statements", len(stmts)))
	return nil
}

// record writes the request and response description of one exchange.
func (f *Fetcher) record(doc string, resp *http.Response) error {
	app := AppNode()
	req := rdf.BNode("req-" + uuid.NewString())
	res := rdf.BNode("resp-" + uuid.NewString())
	docSym := rdf.Sym(doc)

	stmts := []rdf.Statement{
		{Subject: req, Predicate: rdf.RDFSLabel, Object: rdf.Lit(f.now().Format(time.RFC3339) + " Request for " + doc), Why: app},
		{Subject: req, Predicate: rdf.LinkRequested, Object: rdf.Lit(doc), Why: app},
		{Subject: req, Predicate: rdf.LinkResponse, Object: res, Why: app},
		{Subject: res, Predicate: rdf.HTTPStatus, Object: rdf.Lit(strconv.Itoa(resp.StatusCode)), Why: res},
		{Subject: res, Predicate: rdf.HTTPStatusText, Object: rdf.Lit(statusText(resp)), Why: res},
	}
	for name, values := range resp.Header {
		stmts = append(stmts, rdf.Statement{
			Subject:   res,
			Predicate: rdf.HTTPH.Term(strings.ToLower(name)),
			Object:    rdf.Lit(strings.Join(values, ", ")),
			Why:       res,
		})
	}
	for _, link := range ParseLinkHeader(resp.Header.Values("Link"), doc) {
		stmts = append(stmts, rdf.Statement{Subject: docSym, Predicate: link.Rel, Object: link.Target, Why: res})
	}
	return f.store.AddAll(stmts)
}

// sniff guesses the format of bodies served without a meaningful type.
func sniff(contentType string, body []byte) (rdf.Format, bool) {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "", "application/octet-stream":
		return rdf.DetectFormat(body)
	default:
		return "", false
	}
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
