// Package biopax parses Reactome BioPAX Level 3 OWL exports into raw record
// documents. BioPAX references entities via rdf:ID / rdf:resource fragments;
// those fragments serve as the record URIs within a document.
package biopax

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

// Loader parses Reactome BioPAX.
type Loader struct{}

// New creates a BioPAX loader.
func New() *Loader {
	return &Loader{}
}

type bpDocument struct {
	XMLName          xml.Name
	Pathways         []bpEntity   `xml:"Pathway"`
	Proteins         []bpEntity   `xml:"Protein"`
	Rnas             []bpEntity   `xml:"Rna"`
	Dnas             []bpEntity   `xml:"Dna"`
	SmallMolecules   []bpEntity   `xml:"SmallMolecule"`
	PhysicalEntities []bpEntity   `xml:"PhysicalEntity"`
	Complexes        []bpEntity   `xml:"Complex"`
	Reactions        []bpReaction `xml:"BiochemicalReaction"`
	Catalyses        []bpControl  `xml:"Catalysis"`
	Controls         []bpControl  `xml:"Control"`
	ProteinRefs      []bpEntity   `xml:"ProteinReference"`
	RnaRefs          []bpEntity   `xml:"RnaReference"`
	DnaRefs          []bpEntity   `xml:"DnaReference"`
	MoleculeRefs     []bpEntity   `xml:"SmallMoleculeReference"`
	Xrefs            []bpXref     `xml:"UnificationXref"`
}

type bpEntity struct {
	ID          string       `xml:"ID,attr"`
	About       string       `xml:"about,attr"`
	DisplayName string       `xml:"displayName"`
	Names       []string     `xml:"name"`
	Comments    []string     `xml:"comment"`
	Xrefs       []bpResource `xml:"xref"`
	EntityRef   bpResource   `xml:"entityReference"`
	Components  []bpResource `xml:"component"`
}

type bpReaction struct {
	ID    string       `xml:"ID,attr"`
	About string       `xml:"about,attr"`
	Left  []bpResource `xml:"left"`
	Right []bpResource `xml:"right"`
}

type bpControl struct {
	ID          string       `xml:"ID,attr"`
	About       string       `xml:"about,attr"`
	Controllers []bpResource `xml:"controller"`
	Controlled  bpResource   `xml:"controlled"`
	ControlType string       `xml:"controlType"`
}

type bpResource struct {
	Resource string `xml:"resource,attr"`
}

type bpXref struct {
	ID     string `xml:"ID,attr"`
	About  string `xml:"about,attr"`
	Db     string `xml:"db"`
	XrefID string `xml:"id"`
}

// namespaces maps BioPAX xref database labels onto the registry prefixes the
// rest of the pipeline resolves against.
var namespaces = map[string]string{
	"uniprot":               "uniprot",
	"uniprot isoform":       "uniprot",
	"chebi":                 "chebi",
	"ncbi gene":             "ncbigene",
	"entrez gene":           "ncbigene",
	"hgnc":                  "hgnc",
	"hgnc symbol":           "hgnc.symbol",
	"ensembl":               "ensembl",
	"mirbase":               "mirbase",
	"reactome":              "reactome",
	"pubchem compound":      "pubchem.compound",
	"kegg compound":         "kegg.compound",
	"chembl compound":       "chembl.compound",
	"guide to pharmacology": "iuphar.ligand",
}

// Load parses one BioPAX OWL file.
func (l *Loader) Load(_ context.Context, name string, data []byte) (*pathway.Document, error) {
	var parsed bpDocument
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse BioPAX %s: %w", name, err)
	}

	xrefsByID := make(map[string]pathway.Xref, len(parsed.Xrefs))
	for _, xref := range parsed.Xrefs {
		ns, ok := namespaces[strings.ToLower(xref.Db)]
		if !ok {
			ns = strings.ToLower(xref.Db)
		}
		xrefsByID[fragment(xref.ID, xref.About)] = pathway.Xref{Namespace: ns, Identifier: xref.XrefID}
	}

	refXrefs := make(map[string][]pathway.Xref)
	for _, refs := range [][]bpEntity{parsed.ProteinRefs, parsed.RnaRefs, parsed.DnaRefs, parsed.MoleculeRefs} {
		for _, ref := range refs {
			refXrefs[fragment(ref.ID, ref.About)] = resolveXrefs(ref.Xrefs, xrefsByID, nil)
		}
	}

	doc := &pathway.Document{Info: pathway.Info{Database: "reactome"}}

	// Reactome exports put the pathway the file is about first; the rest
	// are sub-pathways and appear as pathway nodes.
	for i, pw := range parsed.Pathways {
		if i == 0 {
			doc.Info.Title = pw.DisplayName
			doc.Info.Identifier = stableIdentifier(pw, xrefsByID)
			doc.Info.Description = pathway.NormalizeDescription(strings.Join(pw.Comments, " "))
			continue
		}
		doc.Nodes = append(doc.Nodes, mapEntity(pw, pathway.TypePathway, xrefsByID, refXrefs))
	}

	classes := []struct {
		entities []bpEntity
		tag      string
	}{
		{parsed.Proteins, pathway.TypeProtein},
		{parsed.Rnas, pathway.TypeRNA},
		{parsed.Dnas, pathway.TypeGeneProduct},
		{parsed.SmallMolecules, pathway.TypeMetabolite},
		{parsed.PhysicalEntities, pathway.TypeDataNode},
	}
	for _, class := range classes {
		for _, entity := range class.entities {
			doc.Nodes = append(doc.Nodes, mapEntity(entity, class.tag, xrefsByID, refXrefs))
		}
	}

	for _, entity := range parsed.Complexes {
		members := make([]string, 0, len(entity.Components))
		for _, component := range entity.Components {
			members = append(members, fragment("", component.Resource))
		}
		doc.Complexes = append(doc.Complexes, pathway.Complex{
			Node: pathway.Node{
				URI:   fragment(entity.ID, entity.About),
				Names: entityNames(entity),
			},
			Members: members,
		})
	}

	// Control interactions point at a reaction; the regulated entities are
	// the reaction's products.
	productsByReaction := make(map[string][]string, len(parsed.Reactions))
	for _, reaction := range parsed.Reactions {
		uri := fragment(reaction.ID, reaction.About)
		productsByReaction[uri] = resources(reaction.Right)
		doc.Interactions = append(doc.Interactions, pathway.Interaction{
			URI:          uri,
			Types:        []string{pathway.InteractionConversion},
			Participants: cartesian(resources(reaction.Left), resources(reaction.Right)),
		})
	}

	for _, control := range parsed.Catalyses {
		doc.Interactions = append(doc.Interactions, controlInteraction(control, pathway.InteractionCatalysis, productsByReaction))
	}
	for _, control := range parsed.Controls {
		tag := pathway.InteractionGeneric
		switch strings.ToUpper(control.ControlType) {
		case "ACTIVATION":
			tag = pathway.InteractionStimulation
		case "INHIBITION":
			tag = pathway.InteractionInhibition
		}
		doc.Interactions = append(doc.Interactions, controlInteraction(control, tag, productsByReaction))
	}

	return doc, nil
}

func mapEntity(entity bpEntity, tag string, xrefsByID map[string]pathway.Xref, refXrefs map[string][]pathway.Xref) pathway.Node {
	inherited := refXrefs[fragment("", entity.EntityRef.Resource)]
	return pathway.Node{
		URI:   fragment(entity.ID, entity.About),
		Types: []string{tag},
		Names: entityNames(entity),
		Xrefs: resolveXrefs(entity.Xrefs, xrefsByID, inherited),
	}
}

func entityNames(entity bpEntity) []string {
	names := make([]string, 0, 1+len(entity.Names))
	if entity.DisplayName != "" {
		names = append(names, entity.DisplayName)
	}
	for _, n := range entity.Names {
		if n != "" && n != entity.DisplayName {
			names = append(names, n)
		}
	}
	return names
}

// resolveXrefs looks up the referenced unification xrefs and appends the ones
// inherited from the entity reference.
func resolveXrefs(refs []bpResource, xrefsByID map[string]pathway.Xref, inherited []pathway.Xref) []pathway.Xref {
	var xrefs []pathway.Xref
	for _, ref := range refs {
		if xref, ok := xrefsByID[fragment("", ref.Resource)]; ok {
			xrefs = append(xrefs, xref)
		}
	}
	return append(xrefs, inherited...)
}

func controlInteraction(control bpControl, tag string, productsByReaction map[string][]string) pathway.Interaction {
	controlled := fragment("", control.Controlled.Resource)
	targets, ok := productsByReaction[controlled]
	if !ok {
		targets = []string{controlled}
	}
	return pathway.Interaction{
		URI:          fragment(control.ID, control.About),
		Types:        []string{tag},
		Participants: cartesian(resources(control.Controllers), targets),
	}
}

func cartesian(sources, targets []string) []pathway.Participant {
	if len(sources) == 0 {
		sources = []string{""}
	}
	if len(targets) == 0 {
		targets = []string{""}
	}
	pairs := make([]pathway.Participant, 0, len(sources)*len(targets))
	for _, source := range sources {
		for _, target := range targets {
			pairs = append(pairs, pathway.Participant{Source: source, Target: target})
		}
	}
	return pairs
}

func resources(refs []bpResource) []string {
	uris := make([]string, 0, len(refs))
	for _, ref := range refs {
		uris = append(uris, fragment("", ref.Resource))
	}
	return uris
}

// stableIdentifier picks the Reactome stable ID from the pathway's xrefs.
func stableIdentifier(pw bpEntity, xrefsByID map[string]pathway.Xref) string {
	for _, ref := range pw.Xrefs {
		if xref, ok := xrefsByID[fragment("", ref.Resource)]; ok && xref.Namespace == "reactome" {
			return xref.Identifier
		}
	}
	return fragment(pw.ID, pw.About)
}

// fragment normalizes rdf:ID values and rdf:resource / rdf:about references
// to one URI form.
func fragment(id, resource string) string {
	if id != "" {
		return id
	}
	return strings.TrimPrefix(resource, "#")
}
