// Package pathway defines the raw record model pathway files are parsed
// into: loosely typed nodes, complexes and interactions plus pathway-level
// metadata. Records keep the source vocabulary as-is; the convert package
// turns them into typed graph terms.
package pathway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Node type tags as used by the source vocabularies.
const (
	TypeProtein     = "Protein"
	TypeRNA         = "Rna"
	TypeGeneProduct = "GeneProduct"
	TypeMetabolite  = "Metabolite"
	TypePathway     = "Pathway"
	TypeDataNode    = "DataNode"
)

// Interaction type tags as used by the source vocabularies.
const (
	InteractionStimulation              = "Stimulation"
	InteractionInhibition               = "Inhibition"
	InteractionCatalysis                = "Catalysis"
	InteractionTranscriptionTranslation = "TranscriptionTranslation"
	InteractionDirected                 = "DirectedInteraction"
	InteractionGeneric                  = "Interaction"
	InteractionConversion               = "Conversion"
)

// Xref is one candidate external identifier for a node.
type Xref struct {
	Namespace  string `json:"namespace"`
	Identifier string `json:"identifier"`
}

// Node is the raw form of one pathway participant. Names and Identifiers
// are ordered: when source data carries several values for what should be a
// scalar field, consumers pick the first one, so the order here fixes that
// choice.
type Node struct {
	URI         string   `json:"uri"`
	Types       []string `json:"types"`
	Names       []string `json:"names,omitempty"`
	Identifiers []string `json:"identifiers,omitempty"`
	Xrefs       []Xref   `json:"xrefs,omitempty"`
}

// Complex is a raw composite entity. Members lists the URIs of the nodes it
// aggregates; members must reference nodes of the same pathway.
type Complex struct {
	Node
	Members []string `json:"members"`
}

// Participant is one (source, target) pair of an interaction, referencing
// nodes by URI.
type Participant struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Interaction is the raw form of one pathway interaction.
type Interaction struct {
	URI          string        `json:"uri"`
	Types        []string      `json:"types"`
	Participants []Participant `json:"participants"`
}

// Info carries pathway-level metadata. Title and Identifier are required;
// a pathway without them cannot be assembled.
type Info struct {
	Title       string `json:"title" validate:"required"`
	Identifier  string `json:"identifier" validate:"required"`
	Description string `json:"description,omitempty"`
	Database    string `json:"database,omitempty" validate:"omitempty,oneof=kegg reactome wikipathways"`
}

// Document is one parsed pathway file: its metadata plus all raw records.
type Document struct {
	Info         Info          `json:"info"`
	Nodes        []Node        `json:"nodes"`
	Complexes    []Complex     `json:"complexes,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

// ErrInvalidInfo marks pathway metadata that fails validation.
var ErrInvalidInfo = errors.New("invalid pathway info")

var validate = validator.New()

// Validate checks the metadata against its validation tags.
func (i Info) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInfo, err)
	}
	return nil
}

// NormalizeDescription collapses all whitespace runs in a pathway
// description into single spaces.
func NormalizeDescription(description string) string {
	return strings.Join(strings.Fields(description), " ")
}
