// Package store defines the persistence contract for pathway graph
// archives. Archives are opaque to their consumers: a store loads and saves
// whole graphs keyed by path and lists the archives under a directory, which
// is all the merge pipeline needs.
package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/openpathway/pathmerge/pkg/bel"
)

// ArchiveExt is the file extension of serialized graph archives.
const ArchiveExt = ".graph.gob"

// ErrNotFound is returned when the requested archive does not exist.
var ErrNotFound = errors.New("graph archive not found")

// GraphStore persists and lists pathway graph archives.
type GraphStore interface {
	Save(ctx context.Context, graph *bel.Graph, path string) error
	Load(ctx context.Context, path string) (*bel.Graph, error)
	List(ctx context.Context, dir string) ([]string, error)
}

// archive is the flat wire form of a graph. Graphs are rebuilt through their
// constructors on load, so the endpoint invariant holds for every loaded
// graph as well.
type archive struct {
	Meta    bel.Metadata
	Nodes   []bel.Term
	Edges   []bel.Edge
	Domains map[string][]string
}

// Encode serializes the graph into its archive wire form.
func Encode(graph *bel.Graph) ([]byte, error) {
	env := archive{
		Meta:    graph.Metadata(),
		Nodes:   graph.Nodes(),
		Edges:   graph.Edges(),
		Domains: graph.AnnotationDomains(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("failed to encode graph archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode rebuilds a graph from its archive wire form.
func Decode(data []byte) (*bel.Graph, error) {
	var env archive
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode graph archive: %w", err)
	}

	graph := bel.NewGraph(env.Meta)
	for _, term := range env.Nodes {
		graph.AddNode(term)
	}
	for _, edge := range env.Edges {
		if err := graph.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("corrupt graph archive: %w", err)
		}
	}
	for key, values := range env.Domains {
		graph.DeclareAnnotation(key, values...)
	}
	return graph, nil
}
