package pg

import (
	"context"

	"github.com/geoknoesis/pointedgraph/fetch"
	"github.com/geoknoesis/pointedgraph/rdf"
	"github.com/geoknoesis/pointedgraph/stream"
)

// FetchAll loads every uri and returns a stream of pointed graphs, one per
// successful load, in completion order. Each pointed graph points at the URI
// as given, scoped to its document. Failed loads follow the stream options;
// by default they are logged and skipped.
func FetchAll(ctx context.Context, f *fetch.Fetcher, uris []string, opts ...stream.Option) *stream.Stream[PointedGraph] {
	promises := make([]*stream.Promise[PointedGraph], len(uris))
	for i, uri := range uris {
		uri := uri
		promises[i] = stream.Then(f.LoadAsync(ctx, uri), func(rdf.Symbol) (PointedGraph, error) {
			return ForSymbol(f.Store(), rdf.Sym(uri)), nil
		})
	}
	return stream.FromPromises(promises, opts...)
}
