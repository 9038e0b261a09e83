package bel

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Summary holds the size and shape statistics of a graph.
type Summary struct {
	Title            string              `json:"title,omitempty"`
	Identifier       string              `json:"identifier,omitempty"`
	Database         string              `json:"database,omitempty"`
	Nodes            int                 `json:"nodes"`
	Edges            int                 `json:"edges"`
	Functions        map[Func]int        `json:"functions"`
	Relations        map[Relation]int    `json:"relations"`
	Components       int                 `json:"components"`
	LargestComponent int                 `json:"largest_component"`
	Density          float64             `json:"density"`
	Annotations      map[string][]string `json:"annotations,omitempty"`
}

// Summarize computes node/edge counts by class, graph density and the
// weakly-connected component structure of the graph.
func (g *Graph) Summarize() Summary {
	summary := Summary{
		Title:       g.meta.Title,
		Identifier:  g.meta.Identifier,
		Database:    g.meta.Database,
		Nodes:       g.NodeCount(),
		Edges:       g.EdgeCount(),
		Functions:   make(map[Func]int),
		Relations:   make(map[Relation]int),
		Annotations: g.AnnotationDomains(),
	}
	for _, term := range g.nodes {
		summary.Functions[term.Function]++
	}
	for _, edge := range g.edges {
		summary.Relations[edge.Relation]++
	}
	if summary.Nodes > 1 {
		summary.Density = float64(summary.Edges) / float64(summary.Nodes*(summary.Nodes-1))
	}

	components := topo.ConnectedComponents(g.undirected())
	summary.Components = len(components)
	for _, component := range components {
		if len(component) > summary.LargestComponent {
			summary.LargestComponent = len(component)
		}
	}
	return summary
}

// undirected projects the graph onto a gonum undirected graph with stable
// integer IDs assigned in canonical key order.
func (g *Graph) undirected() *simple.UndirectedGraph {
	projection := simple.NewUndirectedGraph()
	ids := make(map[string]int64, len(g.nodes))
	for i, term := range g.Nodes() {
		id := int64(i)
		ids[term.Key()] = id
		projection.AddNode(simple.Node(id))
	}
	for _, edge := range g.edges {
		from, to := ids[edge.Source], ids[edge.Target]
		if from == to {
			continue
		}
		projection.SetEdge(projection.NewEdge(simple.Node(from), simple.Node(to)))
	}
	return projection
}
