package bel

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingEndpoint is returned when an edge references a term that has not
// been added to the graph. Such edges are never stored.
var ErrMissingEndpoint = errors.New("edge endpoint not present in graph")

// Metadata carries the pathway-level attributes of a graph. Database names
// the source database the pathway came from and is empty on merged universe
// graphs.
type Metadata struct {
	Title       string
	Identifier  string
	Description string
	Database    string
}

// Graph owns a set of terms and a set of edges between them, keyed by their
// canonical keys, plus the declared value domains of its edge annotations.
// A graph has exactly one writer while it is being assembled and is treated
// as read-only afterwards; merge-time processing works on copies.
type Graph struct {
	meta    Metadata
	nodes   map[string]Term
	edges   map[string]Edge
	domains map[string][]string
}

// NewGraph creates an empty graph with the given metadata.
func NewGraph(meta Metadata) *Graph {
	return &Graph{
		meta:    meta,
		nodes:   make(map[string]Term),
		edges:   make(map[string]Edge),
		domains: make(map[string][]string),
	}
}

// Metadata returns the pathway metadata the graph was created with.
func (g *Graph) Metadata() Metadata {
	return g.meta
}

// AddNode inserts the term and returns the stored value. When a term with an
// equal key is already present the existing term is kept.
func (g *Graph) AddNode(term Term) Term {
	key := term.Key()
	if existing, ok := g.nodes[key]; ok {
		return existing
	}
	g.nodes[key] = term
	return term
}

// Node returns the term stored under the given canonical key.
func (g *Graph) Node(key string) (Term, bool) {
	term, ok := g.nodes[key]
	return term, ok
}

// HasNode reports whether a term with the given canonical key is present.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// AddEdge inserts the edge. Both endpoints must already be present as nodes;
// otherwise the edge is rejected with ErrMissingEndpoint and the graph is
// unchanged. Duplicate edges (equal keys) collapse to one.
func (g *Graph) AddEdge(edge Edge) error {
	if !g.HasNode(edge.Source) {
		return fmt.Errorf("source %q: %w", edge.Source, ErrMissingEndpoint)
	}
	if !g.HasNode(edge.Target) {
		return fmt.Errorf("target %q: %w", edge.Target, ErrMissingEndpoint)
	}
	g.edges[edge.Key()] = edge
	return nil
}

// NodeCount returns the number of distinct terms.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns all terms in canonical key order.
func (g *Graph) Nodes() []Term {
	keys := make([]string, 0, len(g.nodes))
	for key := range g.nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	nodes := make([]Term, len(keys))
	for i, key := range keys {
		nodes[i] = g.nodes[key]
	}
	return nodes
}

// Edges returns all edges in canonical key order.
func (g *Graph) Edges() []Edge {
	keys := make([]string, 0, len(g.edges))
	for key := range g.edges {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	edges := make([]Edge, len(keys))
	for i, key := range keys {
		edges[i] = g.edges[key]
	}
	return edges
}

// DeclareAnnotation merges the given values into the declared domain of the
// annotation key. Domains record which values are legal for an annotation,
// independent of which values edges actually carry.
func (g *Graph) DeclareAnnotation(key string, values ...string) {
	merged := append(append([]string(nil), g.domains[key]...), values...)
	sort.Strings(merged)
	deduped := merged[:0]
	var prev string
	for i, value := range merged {
		if i > 0 && value == prev {
			continue
		}
		deduped = append(deduped, value)
		prev = value
	}
	g.domains[key] = deduped
}

// AnnotationDomains returns a copy of the declared annotation domains.
func (g *Graph) AnnotationDomains() map[string][]string {
	domains := make(map[string][]string, len(g.domains))
	for key, values := range g.domains {
		domains[key] = append([]string(nil), values...)
	}
	return domains
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	clone := NewGraph(g.meta)
	for key, term := range g.nodes {
		clone.nodes[key] = copyTerm(term)
	}
	for key, edge := range g.edges {
		clone.edges[key] = copyEdge(edge)
	}
	for key, values := range g.domains {
		clone.domains[key] = append([]string(nil), values...)
	}
	return clone
}

// Absorb unions every node, edge and annotation domain of other into g.
// Nodes and edges merge by canonical key, so equal terms contributed by
// different graphs collapse into one.
func (g *Graph) Absorb(other *Graph) error {
	for _, term := range other.Nodes() {
		g.AddNode(term)
	}
	for _, edge := range other.Edges() {
		if err := g.AddEdge(edge); err != nil {
			return err
		}
	}
	for key, values := range other.domains {
		g.DeclareAnnotation(key, values...)
	}
	return nil
}

// Equal reports whether both graphs have equal metadata, node sets, edge
// sets and annotation domains. Node and edge comparison is by canonical key.
func (g *Graph) Equal(other *Graph) bool {
	if g.meta != other.meta {
		return false
	}
	if len(g.nodes) != len(other.nodes) || len(g.edges) != len(other.edges) {
		return false
	}
	for key := range g.nodes {
		if _, ok := other.nodes[key]; !ok {
			return false
		}
	}
	for key := range g.edges {
		if _, ok := other.edges[key]; !ok {
			return false
		}
	}
	if len(g.domains) != len(other.domains) {
		return false
	}
	for key, values := range g.domains {
		otherValues, ok := other.domains[key]
		if !ok || len(values) != len(otherValues) {
			return false
		}
		for i, value := range values {
			if otherValues[i] != value {
				return false
			}
		}
	}
	return true
}

func copyTerm(term Term) Term {
	term.Members = copyTerms(term.Members)
	term.Reactants = copyTerms(term.Reactants)
	term.Products = copyTerms(term.Products)
	return term
}

func copyTerms(terms []Term) []Term {
	if terms == nil {
		return nil
	}
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = copyTerm(t)
	}
	return out
}

func copyEdge(edge Edge) Edge {
	if edge.Annotations != nil {
		annotations := make(map[string][]string, len(edge.Annotations))
		for key, values := range edge.Annotations {
			annotations[key] = append([]string(nil), values...)
		}
		edge.Annotations = annotations
	}
	return edge
}
