// Package convert turns raw pathway records into canonical typed graphs.
// Mapping is deterministic rule dispatch: node and interaction type tags are
// classified first-match-wins, gene-like nodes are rewritten through the
// identifier resolver, and every drop decision is accounted for in a Report
// instead of being logged away.
package convert

import (
	"context"
	"fmt"

	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/pathway"
	"github.com/openpathway/pathmerge/pkg/resolve"

	"golang.org/x/sync/errgroup"
)

// Converter assembles pathway graphs from raw record documents. It is
// stateless apart from the resolver and safe for concurrent use.
type Converter struct {
	resolver resolve.Resolver
}

// New creates a converter using the given identifier resolver.
func New(resolver resolve.Resolver) *Converter {
	return &Converter{resolver: resolver}
}

// Convert assembles one pathway graph from a record document. Raw nodes are
// mapped first, complexes second (they may only reference plain nodes) and
// interactions last. The returned report accounts for every record that was
// dropped or guessed at.
//
// The only fatal condition is invalid pathway metadata; every other problem
// degrades to a smaller graph.
func (c *Converter) Convert(ctx context.Context, doc *pathway.Document) (*bel.Graph, *Report, error) {
	if err := doc.Info.Validate(); err != nil {
		return nil, nil, fmt.Errorf("pathway %q: %w", doc.Info.Identifier, err)
	}

	graph := bel.NewGraph(bel.Metadata{
		Title:       doc.Info.Title,
		Identifier:  doc.Info.Identifier,
		Description: pathway.NormalizeDescription(doc.Info.Description),
		Database:    doc.Info.Database,
	})
	report := &Report{
		Pathway:  doc.Info.Identifier,
		Database: doc.Info.Database,
	}

	resolved := make(map[string]bel.Term, len(doc.Nodes))
	for _, raw := range doc.Nodes {
		term, ok, err := c.mapNode(ctx, raw, report)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		resolved[raw.URI] = term
		graph.AddNode(term)
		report.MappedNodes++
	}

	for _, raw := range doc.Complexes {
		c.mapComplex(raw, doc.Info.Database, resolved, graph, report)
	}

	for _, raw := range doc.Interactions {
		c.mapInteraction(raw, resolved, graph, report)
	}

	return graph, report, nil
}

// Result is the outcome of converting one document in a batch.
type Result struct {
	Graph  *bel.Graph
	Report *Report
	Err    error
}

// ConvertAll converts documents with at most workers conversions in flight.
// Pathways are independent, so one failed document never aborts the batch;
// its error is recorded in the matching result instead. Results align with
// the input order.
func (c *Converter) ConvertAll(ctx context.Context, docs []*pathway.Document, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(docs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, doc := range docs {
		eg.Go(func() error {
			graph, report, err := c.Convert(ctx, doc)
			results[i] = Result{Graph: graph, Report: report, Err: err}
			return nil
		})
	}
	_ = eg.Wait()
	return results
}
