package convert

import (
	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/pathway"
)

// mapInteraction classifies one raw interaction and adds the resulting
// edges, or the reaction construct for conversions, to the graph.
func (c *Converter) mapInteraction(raw pathway.Interaction, resolved map[string]bel.Term, g *bel.Graph, report *Report) {
	if hasType(raw.Types, pathway.InteractionConversion) {
		c.mapConversion(raw, resolved, g, report)
		report.MappedInteractions++
		return
	}

	for _, pair := range raw.Participants {
		source, ok := resolved[pair.Source]
		if !ok {
			report.DroppedParticipants++
			continue
		}
		target, ok := resolved[pair.Target]
		if !ok {
			report.DroppedParticipants++
			report.warnf(WarnMissingTarget, raw.URI, "target %q is not a resolved node", pair.Target)
			continue
		}
		c.addSimpleEdge(source, target, raw, g, report)
	}
	report.MappedInteractions++
}

// mapConversion collects every participant pair's source into the reactant
// set and every target into the product set, then emits exactly one reaction
// construct. Unresolved references are dropped from their set without
// failing the reaction.
func (c *Converter) mapConversion(raw pathway.Interaction, resolved map[string]bel.Term, g *bel.Graph, report *Report) {
	var reactants, products []bel.Term
	for _, pair := range raw.Participants {
		if reactant, ok := resolved[pair.Source]; ok {
			reactants = append(reactants, reactant)
		} else {
			report.DroppedParticipants++
			report.warnf(WarnDroppedReactant, raw.URI, "reactant %q is not a resolved node", pair.Source)
		}
		if product, ok := resolved[pair.Target]; ok {
			products = append(products, product)
		} else {
			report.DroppedParticipants++
			report.warnf(WarnDroppedProduct, raw.URI, "product %q is not a resolved node", pair.Target)
		}
	}
	g.AddNode(bel.NewReaction(reactants, products))
}

// addSimpleEdge dispatches on the interaction type tags, first match wins,
// and emits at most one edge for the pair. Generic "Interaction" tags are
// treated as non-informative on purpose.
func (c *Converter) addSimpleEdge(source, target bel.Term, raw pathway.Interaction, g *bel.Graph, report *Report) {
	edge := bel.Edge{
		Source:   source.Key(),
		Target:   target.Key(),
		Citation: raw.URI,
	}

	switch {
	case hasType(raw.Types, pathway.InteractionStimulation):
		edge.Relation = bel.RelationIncreases
		edge.ObjectModifier = bel.ModifierActivity
	case hasType(raw.Types, pathway.InteractionInhibition):
		edge.Relation = bel.RelationDecreases
		edge.ObjectModifier = bel.ModifierActivity
	case hasType(raw.Types, pathway.InteractionCatalysis):
		edge.Relation = bel.RelationIncreases
		edge.ObjectModifier = bel.ModifierActivity
	case hasType(raw.Types, pathway.InteractionTranscriptionTranslation):
		edge.Relation = bel.RelationTranslatedTo
	case hasType(raw.Types, pathway.InteractionDirected):
		edge.Relation = bel.RelationAssociation
		edge.Annotations = map[string][]string{
			"EdgeTypes": append([]string(nil), raw.Types...),
		}
	case hasType(raw.Types, pathway.InteractionGeneric):
		// Non-informative by definition, no edge.
		return
	default:
		report.DroppedEdges++
		report.warnf(WarnUnknownInteraction, raw.URI, "no edge semantics for %v", raw.Types)
		return
	}

	if err := g.AddEdge(edge); err != nil {
		report.DroppedEdges++
		report.warnf(WarnRejectedEdge, raw.URI, "edge rejected: %v", err)
	}
}

func hasType(types []string, tag string) bool {
	for _, t := range types {
		if t == tag {
			return true
		}
	}
	return false
}
