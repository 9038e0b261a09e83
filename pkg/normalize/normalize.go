// Package normalize rewrites node display names into a canonical per-source
// vocabulary so the same biological entity referenced by different
// source-specific names becomes comparable across databases. Tables are
// compiled-in per source and can be overlaid from a YAML file.
package normalize

import (
	"fmt"
	"os"

	"github.com/openpathway/pathmerge/pkg/bel"

	"gopkg.in/yaml.v3"
)

// Table maps raw display names onto their canonical replacement for one
// source database.
type Table map[string]string

// Tables holds one replacement table per source database.
type Tables map[string]Table

// Default returns the compiled-in replacement tables. Every value is a fixed
// point of its own table, so applying a table twice equals applying it once.
func Default() Tables {
	return Tables{
		"kegg": {
			"C00001":          "water",
			"C00002":          "ATP",
			"C00008":          "ADP",
			"C00031":          "glucose",
			"GSK3B, GSK3beta": "GSK3B",
			"AKT1, AKT, PKB":  "AKT1",
			"TP53, p53":       "TP53",
			"CASP3, CPP32":    "CASP3",
		},
		"reactome": {
			"H2O":                     "water",
			"Adenosine triphosphate": "ATP",
			"Adenosine diphosphate":  "ADP",
			"D-Glucose":              "glucose",
			"p-T308,S473-AKT1":       "AKT1",
			"p53 tetramer":           "TP53",
		},
		"wikipathways": {
			"H2O":       "water",
			"ATP(4-)":   "ATP",
			"ADP(3-)":   "ADP",
			"D-glucose": "glucose",
			"Akt":       "AKT1",
			"p53":       "TP53",
		},
	}.canonicalize()
}

// Load returns the default tables overlaid with the per-source replacements
// read from a YAML file. Overlay entries win over compiled-in ones.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read normalization tables: %w", err)
	}

	var overlay Tables
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse normalization tables: %w", err)
	}

	tables := Default()
	for database, table := range overlay {
		merged := tables[database]
		if merged == nil {
			merged = make(Table, len(table))
		}
		for name, canonical := range table {
			merged[name] = canonical
		}
		tables[database] = merged
	}
	return tables.canonicalize(), nil
}

// canonicalize follows replacement chains until every table value is a fixed
// point. Cycles collapse onto the first name reached twice, which keeps the
// result deterministic; idempotence of Apply depends on this.
func (t Tables) canonicalize() Tables {
	for _, table := range t {
		for name := range table {
			seen := map[string]bool{name: true}
			canonical := table[name]
			for {
				next, ok := table[canonical]
				if !ok || next == canonical || seen[canonical] {
					break
				}
				seen[canonical] = true
				canonical = next
			}
			table[name] = canonical
		}
	}
	return t
}

// Apply rebuilds the graph with every node name rewritten through the
// source's table. The input graph is never modified. Databases without a
// table yield an unchanged copy.
func (t Tables) Apply(g *bel.Graph, database string) *bel.Graph {
	table, ok := t[database]
	if !ok || len(table) == 0 {
		return g.Clone()
	}

	renamed := bel.NewGraph(g.Metadata())
	rewired := make(map[string]string, g.NodeCount())
	for _, term := range g.Nodes() {
		oldKey := term.Key()
		renamedTerm := renameTerm(term, table)
		renamed.AddNode(renamedTerm)
		rewired[oldKey] = renamedTerm.Key()
	}

	for _, edge := range g.Edges() {
		edge.Source = rewired[edge.Source]
		edge.Target = rewired[edge.Target]
		// Endpoints exist by construction; renaming cannot orphan an edge.
		_ = renamed.AddEdge(edge)
	}
	for key, values := range g.AnnotationDomains() {
		renamed.DeclareAnnotation(key, values...)
	}
	return renamed
}

// renameTerm rewrites the term's own name and recurses into member,
// reactant and product sets, so composites and reactions stay consistent
// with their renamed parts.
func renameTerm(term bel.Term, table Table) bel.Term {
	if canonical, ok := table[term.Name]; ok {
		term.Name = canonical
	}
	term.Members = renameTerms(term.Members, table)
	term.Reactants = renameTerms(term.Reactants, table)
	term.Products = renameTerms(term.Products, table)
	return term
}

func renameTerms(terms []bel.Term, table Table) []bel.Term {
	if terms == nil {
		return nil
	}
	out := make([]bel.Term, len(terms))
	for i, term := range terms {
		out[i] = renameTerm(term, table)
	}
	return out
}
