package convert

import (
	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/pathway"
)

// Composite-abundance namespaces, one per source database.
const (
	NamespaceKEGGComplex     = "kegg_complex"
	NamespaceReactomeComplex = "reactome_complex"
	NamespaceWPComplex       = "wp_complex"
	namespaceGenericComplex  = "complex"
)

func complexNamespace(database string) string {
	switch database {
	case "kegg":
		return NamespaceKEGGComplex
	case "reactome":
		return NamespaceReactomeComplex
	case "wikipathways":
		return NamespaceWPComplex
	default:
		return namespaceGenericComplex
	}
}

// mapComplex builds the composite term for one raw complex and registers it
// in the graph immediately. Members are looked up in the resolved mapping;
// absent members shrink the member set without raising an error, the count
// is recorded in the report.
func (c *Converter) mapComplex(raw pathway.Complex, database string, resolved map[string]bel.Term, g *bel.Graph, report *Report) bel.Term {
	members := make([]bel.Term, 0, len(raw.Members))
	for _, memberURI := range raw.Members {
		member, ok := resolved[memberURI]
		if !ok {
			report.DroppedMembers++
			continue
		}
		members = append(members, member)
	}

	var identifier string
	if iri, err := pathway.ParseIRI(raw.URI); err == nil {
		identifier = iri.Identifier
	}

	term := bel.NewComplex(complexNamespace(database), "", identifier, members)
	g.AddNode(term)
	resolved[raw.URI] = term
	report.MappedComplexes++
	return term
}
