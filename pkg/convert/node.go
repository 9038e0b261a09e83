package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/pathway"
)

// nodeClass is the outcome of classifying a raw node's type tags.
// Classification is total: tags matching none of the known classes yield
// classUnclassified, never a sentinel value.
type nodeClass int

const (
	classProtein nodeClass = iota
	classRNA
	classGeneProduct
	classMetabolite
	classPathway
	classDataNode
	classUnclassified
)

// classifyNode dispatches on the raw type tags, first match wins. The
// priority order is fixed: Protein, Rna, GeneProduct, Metabolite, Pathway,
// DataNode.
func classifyNode(types []string) nodeClass {
	ordered := []struct {
		tag   string
		class nodeClass
	}{
		{pathway.TypeProtein, classProtein},
		{pathway.TypeRNA, classRNA},
		{pathway.TypeGeneProduct, classGeneProduct},
		{pathway.TypeMetabolite, classMetabolite},
		{pathway.TypePathway, classPathway},
		{pathway.TypeDataNode, classDataNode},
	}
	for _, candidate := range ordered {
		for _, tag := range types {
			if tag == candidate.tag {
				return candidate.class
			}
		}
	}
	return classUnclassified
}

// mapNode maps one raw node to a canonical term. The boolean result is false
// for unclassified nodes, which produce no term; callers must treat such
// nodes as absent. An error is returned only when the resolver fails
// terminally (context cancellation); resolver misses and lookup failures
// fall back to the raw identity.
func (c *Converter) mapNode(ctx context.Context, raw pathway.Node, report *Report) (bel.Term, bool, error) {
	class := classifyNode(raw.Types)
	if class == classUnclassified {
		report.UnclassifiedNodes++
		report.warnf(WarnUnclassifiedNode, raw.URI, "no known node type in %v", raw.Types)
		return bel.Term{}, false, nil
	}

	namespace, name, identifier := c.rawIdentity(raw, report)

	switch class {
	case classProtein, classRNA, classGeneProduct:
		identity, ok, err := c.resolver.Resolve(ctx, raw.Xrefs)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return bel.Term{}, false, err
			}
			report.UnresolvedGenes++
			report.warnf(WarnUnresolvedGene, raw.URI, "resolver lookup failed: %v", err)
		} else if ok {
			namespace, name, identifier = identity.Namespace, identity.Name, identity.Identifier
		} else {
			report.UnresolvedGenes++
			report.warnf(WarnUnresolvedGene, raw.URI, "no canonical identity for %v", raw.Xrefs)
		}
	case classMetabolite, classPathway, classDataNode:
		// Raw identity is used unchanged.
	}

	return bel.NewTerm(functionFor(class), namespace, name, identifier), true, nil
}

// rawIdentity determines the (namespace, name, identifier) triple straight
// from the record: the explicit identifier field wins over the URI tail, the
// URI path supplies the default namespace, and multi-valued fields pick
// their first element.
func (c *Converter) rawIdentity(raw pathway.Node, report *Report) (namespace, name, identifier string) {
	iri, err := pathway.ParseIRI(raw.URI)
	if err == nil {
		namespace = iri.Namespace
		identifier = iri.Identifier
	}

	if len(raw.Identifiers) > 0 {
		identifier = raw.Identifiers[0]
		if len(raw.Identifiers) > 1 {
			report.AmbiguousFields++
			report.warnf(WarnAmbiguousIdentifier, raw.URI,
				"%d identifier values, using %q", len(raw.Identifiers), identifier)
		}
	}

	name = identifier
	if len(raw.Names) > 0 {
		name = raw.Names[0]
		if len(raw.Names) > 1 {
			report.AmbiguousFields++
			report.warnf(WarnAmbiguousName, raw.URI,
				"%d name values, using %q", len(raw.Names), name)
		}
	}
	return namespace, name, identifier
}

func functionFor(class nodeClass) bel.Func {
	switch class {
	case classProtein:
		return bel.FuncProtein
	case classRNA:
		return bel.FuncRNA
	case classGeneProduct:
		return bel.FuncGene
	case classPathway:
		return bel.FuncBioProcess
	case classMetabolite, classDataNode:
		return bel.FuncAbundance
	default:
		panic(fmt.Sprintf("no function for node class %d", class))
	}
}
