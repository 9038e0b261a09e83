package wprdf

import (
	"context"
	"reflect"
	"testing"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

const fixture = `<http://identifiers.org/wikipathways/WP254_r95107> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Pathway> .
<http://identifiers.org/wikipathways/WP254_r95107> <http://purl.org/dc/elements/1.1/title> "Apoptosis"@en .
<http://identifiers.org/wikipathways/WP254_r95107> <http://purl.org/dc/terms/identifier> "WP254" .
<http://identifiers.org/wikipathways/WP254_r95107> <http://purl.org/dc/terms/description> "Programmed cell death." .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#DataNode> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Protein> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> <http://www.w3.org/2000/01/rdf-schema#label> "CASP3"@en .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> <http://purl.org/dc/terms/identifier> "836" .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> <http://vocabularies.wikipathways.org/wp#bdbEntrezGene> <http://identifiers.org/ncbigene/836> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> <http://vocabularies.wikipathways.org/wp#bdbHgncSymbol> <http://identifiers.org/hgnc.symbol/CASP3> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#DataNode> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Metabolite> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2> <http://www.w3.org/2000/01/rdf-schema#label> "Cytochrome C"@en .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2> <http://vocabularies.wikipathways.org/wp#bdbChEBI> <http://identifiers.org/chebi/CHEBI:18070> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/Complex/d3> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Complex> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/Complex/d3> <http://vocabularies.wikipathways.org/wp#participants> <http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/Complex/d3> <http://vocabularies.wikipathways.org/wp#participants> <http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/WP/Interaction/e4> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Interaction> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/WP/Interaction/e4> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#DirectedInteraction> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/WP/Interaction/e4> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://vocabularies.wikipathways.org/wp#Stimulation> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/WP/Interaction/e4> <http://vocabularies.wikipathways.org/wp#participants> <http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/WP/Interaction/e4> <http://vocabularies.wikipathways.org/wp#participants> <http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/WP/Interaction/e4> <http://vocabularies.wikipathways.org/wp#source> <http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1> .
<http://rdf.wikipathways.org/Pathway/WP254_r95107/WP/Interaction/e4> <http://vocabularies.wikipathways.org/wp#target> <http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2> .
`

func load(t *testing.T) *pathway.Document {
	t.Helper()
	doc, err := New().Load(context.Background(), "WP254.nt", []byte(fixture))
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	return doc
}

func TestLoad_Info(t *testing.T) {
	doc := load(t)

	want := pathway.Info{
		Title:       "Apoptosis",
		Identifier:  "WP254",
		Description: "Programmed cell death.",
		Database:    "wikipathways",
	}
	if doc.Info != want {
		t.Errorf("unexpected info: %+v", doc.Info)
	}
	if err := doc.Info.Validate(); err != nil {
		t.Errorf("expected valid info: %v", err)
	}
}

func TestLoad_ProteinNode(t *testing.T) {
	doc := load(t)
	if len(doc.Nodes) != 2 {
		t.Fatalf("expected 2 data nodes, got %d", len(doc.Nodes))
	}

	node := doc.Nodes[0]
	if node.URI != "http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1" {
		t.Fatalf("unexpected node URI %q", node.URI)
	}
	if !reflect.DeepEqual(node.Types, []string{pathway.TypeDataNode, pathway.TypeProtein}) {
		t.Errorf("unexpected types: %v", node.Types)
	}
	if !reflect.DeepEqual(node.Names, []string{"CASP3"}) {
		t.Errorf("expected the language tag to be stripped, got %v", node.Names)
	}
	if !reflect.DeepEqual(node.Identifiers, []string{"836"}) {
		t.Errorf("unexpected identifiers: %v", node.Identifiers)
	}
	want := []pathway.Xref{
		{Namespace: "ncbigene", Identifier: "836"},
		{Namespace: "hgnc.symbol", Identifier: "CASP3"},
	}
	if !reflect.DeepEqual(node.Xrefs, want) {
		t.Errorf("unexpected xrefs: %v", node.Xrefs)
	}
}

func TestLoad_MetaboliteXref(t *testing.T) {
	doc := load(t)
	node := doc.Nodes[1]

	if !reflect.DeepEqual(node.Xrefs, []pathway.Xref{{Namespace: "chebi", Identifier: "CHEBI:18070"}}) {
		t.Errorf("unexpected xrefs: %v", node.Xrefs)
	}
}

func TestLoad_Complex(t *testing.T) {
	doc := load(t)
	if len(doc.Complexes) != 1 {
		t.Fatalf("expected 1 complex, got %d", len(doc.Complexes))
	}

	want := []string{
		"http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1",
		"http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2",
	}
	if !reflect.DeepEqual(doc.Complexes[0].Members, want) {
		t.Errorf("unexpected members: %v", doc.Complexes[0].Members)
	}
}

func TestLoad_Interaction(t *testing.T) {
	doc := load(t)
	if len(doc.Interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(doc.Interactions))
	}

	interaction := doc.Interactions[0]
	wantTypes := []string{
		pathway.InteractionGeneric,
		pathway.InteractionDirected,
		pathway.InteractionStimulation,
	}
	if !reflect.DeepEqual(interaction.Types, wantTypes) {
		t.Errorf("unexpected types: %v", interaction.Types)
	}
	wantPair := pathway.Participant{
		Source: "http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/b1",
		Target: "http://rdf.wikipathways.org/Pathway/WP254_r95107/DataNode/c2",
	}
	if !reflect.DeepEqual(interaction.Participants, []pathway.Participant{wantPair}) {
		t.Errorf("unexpected participants: %v", interaction.Participants)
	}
}

func TestLoad_PathwayRootIsNotARecord(t *testing.T) {
	doc := load(t)
	for _, node := range doc.Nodes {
		if node.URI == "http://identifiers.org/wikipathways/WP254_r95107" {
			t.Error("the pathway root must not appear as a data node")
		}
	}
}

func TestLoad_MalformedTriples(t *testing.T) {
	_, err := New().Load(context.Background(), "bad.nt", []byte("<only-a-subject> .\n"))
	if err == nil {
		t.Fatal("expected an error for malformed N-Triples")
	}
}
