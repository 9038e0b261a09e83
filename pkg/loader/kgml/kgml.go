// Package kgml parses KEGG KGML pathway files into raw record documents.
// KGML references participants by pathway-local entry IDs, so every record
// URI is qualified by the pathway identifier to keep entries from different
// pathways apart.
package kgml

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

// Loader parses KEGG KGML.
type Loader struct{}

// New creates a KGML loader.
func New() *Loader {
	return &Loader{}
}

type kgmlPathway struct {
	XMLName   xml.Name       `xml:"pathway"`
	Name      string         `xml:"name,attr"`
	Org       string         `xml:"org,attr"`
	Number    string         `xml:"number,attr"`
	Title     string         `xml:"title,attr"`
	Link      string         `xml:"link,attr"`
	Entries   []kgmlEntry    `xml:"entry"`
	Relations []kgmlRelation `xml:"relation"`
	Reactions []kgmlReaction `xml:"reaction"`
}

type kgmlEntry struct {
	ID         string          `xml:"id,attr"`
	Name       string          `xml:"name,attr"`
	Type       string          `xml:"type,attr"`
	Link       string          `xml:"link,attr"`
	Graphics   kgmlGraphics    `xml:"graphics"`
	Components []kgmlComponent `xml:"component"`
}

type kgmlGraphics struct {
	Name string `xml:"name,attr"`
}

type kgmlComponent struct {
	ID string `xml:"id,attr"`
}

type kgmlRelation struct {
	Entry1   string        `xml:"entry1,attr"`
	Entry2   string        `xml:"entry2,attr"`
	Type     string        `xml:"type,attr"`
	Subtypes []kgmlSubtype `xml:"subtype"`
}

type kgmlSubtype struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type kgmlReaction struct {
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	Substrates []kgmlSpecies `xml:"substrate"`
	Products   []kgmlSpecies `xml:"product"`
}

type kgmlSpecies struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// relationTags maps KGML relation subtypes onto the raw interaction
// vocabulary. Post-translational modifications carry direction but no sign,
// so they land on DirectedInteraction; indirect and purely structural
// subtypes are non-informative.
var relationTags = map[string]string{
	"activation":          pathway.InteractionStimulation,
	"inhibition":          pathway.InteractionInhibition,
	"expression":          pathway.InteractionTranscriptionTranslation,
	"repression":          pathway.InteractionInhibition,
	"binding/association": pathway.InteractionDirected,
	"dissociation":        pathway.InteractionDirected,
	"phosphorylation":     pathway.InteractionDirected,
	"dephosphorylation":   pathway.InteractionDirected,
	"ubiquitination":      pathway.InteractionDirected,
	"glycosylation":       pathway.InteractionDirected,
	"methylation":         pathway.InteractionDirected,
	"indirect effect":     pathway.InteractionGeneric,
	"state change":        pathway.InteractionGeneric,
	"compound":            pathway.InteractionGeneric,
	"hidden compound":     pathway.InteractionGeneric,
}

// Load parses one KGML file.
func (l *Loader) Load(_ context.Context, name string, data []byte) (*pathway.Document, error) {
	var parsed kgmlPathway
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse KGML %s: %w", name, err)
	}

	pathwayID := strings.TrimPrefix(parsed.Name, "path:")
	if pathwayID == "" {
		pathwayID = parsed.Org + parsed.Number
	}

	doc := &pathway.Document{
		Info: pathway.Info{
			Title:      parsed.Title,
			Identifier: pathwayID,
			Database:   "kegg",
		},
	}

	// Relations and reactions reference entries by their local ID.
	uriByEntry := make(map[string]string, len(parsed.Entries))

	for _, entry := range parsed.Entries {
		if entry.Type == "group" {
			uri := groupURI(pathwayID, entry.ID)
			uriByEntry[entry.ID] = uri
			members := make([]string, 0, len(entry.Components))
			for _, component := range entry.Components {
				members = append(members, entryURI(pathwayID, component.ID))
			}
			doc.Complexes = append(doc.Complexes, pathway.Complex{
				Node:    pathway.Node{URI: uri},
				Members: members,
			})
			continue
		}

		node, ok := mapEntry(pathwayID, entry)
		if !ok {
			continue
		}
		uriByEntry[entry.ID] = node.URI
		doc.Nodes = append(doc.Nodes, node)
	}

	for _, relation := range parsed.Relations {
		source, ok1 := uriByEntry[relation.Entry1]
		target, ok2 := uriByEntry[relation.Entry2]
		if !ok1 || !ok2 {
			continue
		}

		types := make([]string, 0, len(relation.Subtypes))
		for _, subtype := range relation.Subtypes {
			tag, ok := relationTags[subtype.Name]
			if !ok {
				tag = subtype.Name
			}
			types = append(types, tag)
		}
		if len(types) == 0 {
			types = []string{pathway.InteractionGeneric}
		}

		doc.Interactions = append(doc.Interactions, pathway.Interaction{
			URI:          relationURI(pathwayID, relation.Entry1, relation.Entry2),
			Types:        types,
			Participants: []pathway.Participant{{Source: source, Target: target}},
		})
	}

	for _, reaction := range parsed.Reactions {
		doc.Interactions = append(doc.Interactions, pathway.Interaction{
			URI:          reactionURI(pathwayID, reaction.ID),
			Types:        []string{pathway.InteractionConversion},
			Participants: reactionPairs(pathwayID, reaction, uriByEntry),
		})
	}

	return doc, nil
}

// mapEntry maps one non-group entry to a raw node. Entries KEGG draws but
// that carry no biological identity (brite hierarchies, undefined shapes)
// produce no record.
func mapEntry(pathwayID string, entry kgmlEntry) (pathway.Node, bool) {
	node := pathway.Node{
		URI:   entryURI(pathwayID, entry.ID),
		Names: graphicsNames(entry.Graphics.Name),
	}

	switch entry.Type {
	case "gene", "ortholog":
		node.Types = []string{pathway.TypeGeneProduct}
		node.Xrefs = geneXrefs(entry.Name)
	case "compound":
		node.Types = []string{pathway.TypeMetabolite}
		if id, ok := strings.CutPrefix(firstToken(entry.Name), "cpd:"); ok {
			node.URI = "http://identifiers.org/kegg.compound/" + id
			node.Identifiers = []string{id}
		}
	case "map":
		node.Types = []string{pathway.TypePathway}
		if id, ok := strings.CutPrefix(firstToken(entry.Name), "path:"); ok {
			node.URI = "http://identifiers.org/kegg.pathway/" + id
			node.Identifiers = []string{id}
		}
	case "enzyme", "other":
		node.Types = []string{pathway.TypeDataNode}
	default:
		return pathway.Node{}, false
	}
	return node, true
}

// geneXrefs turns the space-separated KEGG name list ("hsa:842 hsa:843")
// into candidate identifiers. Organism-prefixed IDs are Entrez gene IDs;
// ortholog entries carry KO accessions.
func geneXrefs(name string) []pathway.Xref {
	var xrefs []pathway.Xref
	for _, token := range strings.Fields(name) {
		prefix, id, ok := strings.Cut(token, ":")
		if !ok || id == "" {
			continue
		}
		switch prefix {
		case "ko":
			xrefs = append(xrefs, pathway.Xref{Namespace: "kegg.orthology", Identifier: id})
		default:
			xrefs = append(xrefs, pathway.Xref{Namespace: "ncbigene", Identifier: id})
		}
	}
	return xrefs
}

// graphicsNames splits the comma-separated display label. KEGG truncates
// long labels with a trailing ellipsis, which is not part of any name.
func graphicsNames(label string) []string {
	label = strings.TrimSuffix(strings.TrimSpace(label), "...")
	if label == "" {
		return nil
	}
	parts := strings.Split(label, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// reactionPairs pairs every substrate with every product so the conversion
// classifier collects the full reactant and product sets.
func reactionPairs(pathwayID string, reaction kgmlReaction, uriByEntry map[string]string) []pathway.Participant {
	substrates := speciesURIs(pathwayID, reaction.Substrates, uriByEntry)
	products := speciesURIs(pathwayID, reaction.Products, uriByEntry)
	if len(substrates) == 0 {
		substrates = []string{""}
	}
	if len(products) == 0 {
		products = []string{""}
	}

	pairs := make([]pathway.Participant, 0, len(substrates)*len(products))
	for _, substrate := range substrates {
		for _, product := range products {
			pairs = append(pairs, pathway.Participant{Source: substrate, Target: product})
		}
	}
	return pairs
}

func speciesURIs(pathwayID string, species []kgmlSpecies, uriByEntry map[string]string) []string {
	uris := make([]string, 0, len(species))
	for _, s := range species {
		if uri, ok := uriByEntry[s.ID]; ok {
			uris = append(uris, uri)
			continue
		}
		if id, ok := strings.CutPrefix(firstToken(s.Name), "cpd:"); ok {
			uris = append(uris, "http://identifiers.org/kegg.compound/"+id)
		}
	}
	return uris
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func entryURI(pathwayID, entryID string) string {
	return fmt.Sprintf("https://www.kegg.jp/kgml/%s/%s", pathwayID, entryID)
}

func groupURI(pathwayID, entryID string) string {
	return fmt.Sprintf("https://www.kegg.jp/kgml/%s/%s_group_%s", pathwayID, pathwayID, entryID)
}

func relationURI(pathwayID, entry1, entry2 string) string {
	return fmt.Sprintf("https://www.kegg.jp/kgml/%s/relation/%s-%s", pathwayID, entry1, entry2)
}

func reactionURI(pathwayID, reactionID string) string {
	return fmt.Sprintf("https://www.kegg.jp/kgml/%s/reaction/%s", pathwayID, reactionID)
}
