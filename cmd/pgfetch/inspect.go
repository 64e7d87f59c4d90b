package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/pointedgraph/fetch"
	"github.com/geoknoesis/pointedgraph/pg"
	"github.com/geoknoesis/pointedgraph/rdf"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <url>",
		Short: "Show the response metadata and access modes of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := a.newFetcher()
			loadErr := f.Load(cmd.Context(), args[0])
			var statusErr *fetch.StatusError
			if loadErr != nil && !errors.As(loadErr, &statusErr) {
				return loadErr
			}
			doc, err := fetch.DocumentURI(args[0])
			if err != nil {
				return err
			}
			if err := printMetadata(cmd.OutOrStdout(), pg.ForSymbol(f.Store(), rdf.Sym(doc))); err != nil {
				return err
			}
			return loadErr
		},
	}
}

func printMetadata(w io.Writer, p pg.PointedGraph) error {
	doc, err := p.Document()
	if err != nil {
		return err
	}
	status, err := p.ResponseStatus()
	if err != nil {
		return err
	}
	text, err := p.ResponseStatusText()
	if err != nil {
		return err
	}
	contentType, _, err := p.ResponseHeader("Content-Type")
	if err != nil {
		return err
	}
	ac, err := p.AccessControl()
	if err != nil {
		return err
	}
	acl, err := p.LinkTargets("acl")
	if err != nil {
		return err
	}

	modes := pg.Map(ac.Modes(), func(m pg.Mode) string { return string(m) })
	fmt.Fprintf(w, "document:     %s\n", doc)
	fmt.Fprintf(w, "status:       %d %s\n", status, text)
	fmt.Fprintf(w, "content-type: %s\n", contentType)
	fmt.Fprintf(w, "allow:        %s\n", strings.Join(ac.Verbs(), ", "))
	fmt.Fprintf(w, "modes:        %s\n", strings.Join(modes, ", "))
	for _, target := range acl {
		fmt.Fprintf(w, "acl:          %s\n", target.URI)
	}
	return nil
}
