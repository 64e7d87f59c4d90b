package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/pointedgraph/rdf"
)

func newDumpCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump <url>...",
		Short: "Load documents and write the store, metadata included",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, ok := rdf.ParseFormat(format)
			if !ok || out == rdf.FormatJSONLD {
				return fmt.Errorf("%w: %q", rdf.ErrUnsupportedFormat, format)
			}
			f := a.newFetcher()
			for _, uri := range args {
				if err := f.Load(cmd.Context(), uri); err != nil {
					return err
				}
			}
			return f.Store().Dump(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "nquads", "Output format: nquads or ntriples")
	return cmd
}
