package merge

import (
	"github.com/openpathway/pathmerge/pkg/bel"
)

// Flatten replaces every composite node that declares members with its
// transitive member set, fanning out every edge endpoint that referenced the
// composite to each member. Composites without members are source-defined
// named complexes and are kept; there is nothing to fan them out to.
// Reaction nodes are rewritten in place: composite reactants and products are
// replaced by their members. The input graph is never modified.
func Flatten(g *bel.Graph) *bel.Graph {
	replacements := make(map[string][]bel.Term, g.NodeCount())
	out := bel.NewGraph(g.Metadata())

	for _, term := range g.Nodes() {
		var replaced []bel.Term
		switch {
		case term.Function == bel.FuncComplex && len(term.Members) > 0:
			replaced = leafMembers(term, map[string]bool{})
		case term.Function == bel.FuncReaction:
			replaced = []bel.Term{flattenReaction(term)}
		default:
			replaced = []bel.Term{term}
		}
		replacements[term.Key()] = replaced
		for _, r := range replaced {
			out.AddNode(r)
		}
	}

	for _, edge := range g.Edges() {
		for _, source := range replacements[edge.Source] {
			for _, target := range replacements[edge.Target] {
				fanned := edge
				fanned.Source = source.Key()
				fanned.Target = target.Key()
				// Endpoints were added above; a composite that flattened to
				// nothing simply drops its edges through the empty fan-out.
				_ = out.AddEdge(fanned)
			}
		}
	}

	for key, values := range g.AnnotationDomains() {
		out.DeclareAnnotation(key, values...)
	}
	return out
}

// leafMembers expands a composite into its non-composite members,
// descending through nested composites. seen guards against membership
// cycles in malformed archives.
func leafMembers(term bel.Term, seen map[string]bool) []bel.Term {
	key := term.Key()
	if seen[key] {
		return nil
	}
	seen[key] = true

	var leaves []bel.Term
	for _, member := range term.Members {
		if member.Function == bel.FuncComplex && len(member.Members) > 0 {
			leaves = append(leaves, leafMembers(member, seen)...)
			continue
		}
		leaves = append(leaves, member)
	}
	return leaves
}

// flattenReaction rewrites the reactant and product sets with composites
// replaced by their members.
func flattenReaction(term bel.Term) bel.Term {
	return bel.NewReaction(
		flattenSet(term.Reactants),
		flattenSet(term.Products),
	)
}

func flattenSet(terms []bel.Term) []bel.Term {
	var out []bel.Term
	for _, term := range terms {
		if term.Function == bel.FuncComplex && len(term.Members) > 0 {
			out = append(out, leafMembers(term, map[string]bool{})...)
			continue
		}
		out = append(out, term)
	}
	return out
}
