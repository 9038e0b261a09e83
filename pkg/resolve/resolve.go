// Package resolve maps candidate external identifiers of gene-like entities
// to their canonical (namespace, name, identifier) identity. The conversion
// pipeline consults a Resolver for protein, RNA and gene-product nodes only;
// all other node classes keep their raw identity.
package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

// Identity is a resolved canonical identity triple.
type Identity struct {
	Namespace  string `json:"namespace"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// Resolver looks up the canonical identity for a set of candidate xrefs.
// The boolean result reports whether any candidate matched; a miss is not an
// error. Implementations must be safe for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, xrefs []pathway.Xref) (Identity, bool, error)
}

// namespacePriority orders candidate namespaces by lookup preference.
// Unknown namespaces sort after all known ones in their input order.
var namespacePriority = map[string]int{
	"hgnc":        0,
	"ncbigene":    1,
	"entrez":      1,
	"ensembl":     2,
	"uniprot":     3,
	"hgnc.symbol": 4,
	"symbol":      4,
}

// orderXrefs returns the candidates sorted by namespace preference, most
// reliable first. The sort is stable so equal-priority candidates keep their
// source order.
func orderXrefs(xrefs []pathway.Xref) []pathway.Xref {
	ordered := append([]pathway.Xref(nil), xrefs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return xrefRank(ordered[i]) < xrefRank(ordered[j])
	})
	return ordered
}

func xrefRank(xref pathway.Xref) int {
	rank, ok := namespacePriority[strings.ToLower(xref.Namespace)]
	if !ok {
		return len(namespacePriority) + 1
	}
	return rank
}
