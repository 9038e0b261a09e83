package convert

import "fmt"

// Warning kinds recorded while converting raw records.
const (
	WarnAmbiguousIdentifier = "ambiguous-identifier"
	WarnAmbiguousName       = "ambiguous-name"
	WarnUnclassifiedNode    = "unclassified-node"
	WarnUnresolvedGene      = "unresolved-gene"
	WarnMissingTarget       = "missing-target"
	WarnDroppedReactant     = "dropped-reactant"
	WarnDroppedProduct      = "dropped-product"
	WarnUnknownInteraction  = "unknown-interaction-type"
	WarnRejectedEdge        = "rejected-edge"
)

// Warning is one recoverable drop or fallback decision made during
// conversion, tied to the raw record URI it concerns.
type Warning struct {
	Kind    string `json:"kind"`
	URI     string `json:"uri,omitempty"`
	Message string `json:"message"`
}

// Report collects the diagnostics of one pathway conversion. Conversion
// never fails on bad records; everything it drops or guesses is accounted
// for here so callers can decide what to surface.
type Report struct {
	Pathway             string    `json:"pathway"`
	Database            string    `json:"database,omitempty"`
	MappedNodes         int       `json:"mapped_nodes"`
	MappedComplexes     int       `json:"mapped_complexes"`
	MappedInteractions  int       `json:"mapped_interactions"`
	UnclassifiedNodes   int       `json:"unclassified_nodes"`
	UnresolvedGenes     int       `json:"unresolved_genes"`
	AmbiguousFields     int       `json:"ambiguous_fields"`
	DroppedMembers      int       `json:"dropped_members"`
	DroppedParticipants int       `json:"dropped_participants"`
	DroppedEdges        int       `json:"dropped_edges"`
	Warnings            []Warning `json:"warnings,omitempty"`
}

func (r *Report) warnf(kind, uri, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Kind:    kind,
		URI:     uri,
		Message: fmt.Sprintf(format, args...),
	})
}

// Merge accumulates the counts and warnings of other into r. Pathway and
// Database are kept from r, so merging per-pathway reports into a batch
// total keeps the batch identity.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.MappedNodes += other.MappedNodes
	r.MappedComplexes += other.MappedComplexes
	r.MappedInteractions += other.MappedInteractions
	r.UnclassifiedNodes += other.UnclassifiedNodes
	r.UnresolvedGenes += other.UnresolvedGenes
	r.AmbiguousFields += other.AmbiguousFields
	r.DroppedMembers += other.DroppedMembers
	r.DroppedParticipants += other.DroppedParticipants
	r.DroppedEdges += other.DroppedEdges
	r.Warnings = append(r.Warnings, other.Warnings...)
}
