package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoknoesis/pointedgraph/pg"
	"github.com/geoknoesis/pointedgraph/stream"
)

func newFetchAllCmd(a *app) *cobra.Command {
	var failFast bool
	cmd := &cobra.Command{
		Use:   "fetch-all <url>...",
		Short: "Load documents concurrently and report each as it arrives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []stream.Option{stream.WithLogger(a.logger)}
			if failFast {
				opts = append(opts, stream.WithErrorHandler(func(err error) bool {
					a.logger.Warn("Load failed, stopping", zap.Error(err))
					return true
				}))
			}
			s := pg.FetchAll(cmd.Context(), a.newFetcher(), args, opts...)
			return printEvents(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failed load")
	return cmd
}

// printEvents writes one "status document" line per loaded document until the
// stream ends. The subscription is released on every return path.
func printEvents(ctx context.Context, w io.Writer, s *stream.Stream[pg.PointedGraph]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for ev := range s.Subscribe(ctx) {
		switch ev.Kind {
		case stream.EventNext:
			status, err := ev.Value.ResponseStatus()
			if err != nil {
				return err
			}
			doc, err := ev.Value.Document()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d %s\n", status, doc)
		case stream.EventError:
			return ev.Err
		case stream.EventComplete:
			return nil
		}
	}
	return ctx.Err()
}
