package biopax

import (
	"context"
	"reflect"
	"testing"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

const fixture = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:bp="http://www.biopax.org/release/biopax-level3.owl#"
         xml:base="http://www.reactome.org/biopax/70/109581">
 <bp:Pathway rdf:ID="Pathway1">
  <bp:displayName>Apoptosis</bp:displayName>
  <bp:comment>Programmed   cell death.</bp:comment>
  <bp:xref rdf:resource="#UnificationXref1"/>
 </bp:Pathway>
 <bp:Pathway rdf:ID="Pathway2">
  <bp:displayName>Intrinsic Pathway for Apoptosis</bp:displayName>
 </bp:Pathway>
 <bp:UnificationXref rdf:ID="UnificationXref1">
  <bp:db>Reactome</bp:db>
  <bp:id>R-HSA-109581</bp:id>
 </bp:UnificationXref>
 <bp:Protein rdf:ID="Protein1">
  <bp:displayName>CASP3</bp:displayName>
  <bp:name>Caspase-3</bp:name>
  <bp:entityReference rdf:resource="#ProteinReference1"/>
 </bp:Protein>
 <bp:ProteinReference rdf:ID="ProteinReference1">
  <bp:xref rdf:resource="#UnificationXref2"/>
 </bp:ProteinReference>
 <bp:UnificationXref rdf:ID="UnificationXref2">
  <bp:db>UniProt</bp:db>
  <bp:id>P42574</bp:id>
 </bp:UnificationXref>
 <bp:SmallMolecule rdf:ID="SmallMolecule1">
  <bp:displayName>ATP</bp:displayName>
  <bp:entityReference rdf:resource="#SmallMoleculeReference1"/>
 </bp:SmallMolecule>
 <bp:SmallMoleculeReference rdf:ID="SmallMoleculeReference1">
  <bp:xref rdf:resource="#UnificationXref3"/>
 </bp:SmallMoleculeReference>
 <bp:UnificationXref rdf:ID="UnificationXref3">
  <bp:db>ChEBI</bp:db>
  <bp:id>CHEBI:30616</bp:id>
 </bp:UnificationXref>
 <bp:SmallMolecule rdf:ID="SmallMolecule2">
  <bp:displayName>ADP</bp:displayName>
 </bp:SmallMolecule>
 <bp:Complex rdf:ID="Complex1">
  <bp:displayName>Apoptosome</bp:displayName>
  <bp:component rdf:resource="#Protein1"/>
  <bp:component rdf:resource="#SmallMolecule1"/>
 </bp:Complex>
 <bp:BiochemicalReaction rdf:ID="Reaction1">
  <bp:left rdf:resource="#SmallMolecule1"/>
  <bp:right rdf:resource="#SmallMolecule2"/>
 </bp:BiochemicalReaction>
 <bp:Catalysis rdf:ID="Catalysis1">
  <bp:controller rdf:resource="#Protein1"/>
  <bp:controlled rdf:resource="#Reaction1"/>
  <bp:controlType>ACTIVATION</bp:controlType>
 </bp:Catalysis>
 <bp:Control rdf:ID="Control1">
  <bp:controller rdf:resource="#Protein1"/>
  <bp:controlled rdf:resource="#Pathway2"/>
  <bp:controlType>INHIBITION</bp:controlType>
 </bp:Control>
</rdf:RDF>`

func load(t *testing.T) *pathway.Document {
	t.Helper()
	doc, err := New().Load(context.Background(), "R-HSA-109581.owl", []byte(fixture))
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	return doc
}

func nodeByURI(t *testing.T, doc *pathway.Document, uri string) pathway.Node {
	t.Helper()
	for _, node := range doc.Nodes {
		if node.URI == uri {
			return node
		}
	}
	t.Fatalf("no node with URI %q", uri)
	return pathway.Node{}
}

func TestLoad_Info(t *testing.T) {
	doc := load(t)

	want := pathway.Info{
		Title:       "Apoptosis",
		Identifier:  "R-HSA-109581",
		Description: "Programmed cell death.",
		Database:    "reactome",
	}
	if doc.Info != want {
		t.Errorf("unexpected info: %+v", doc.Info)
	}
	if err := doc.Info.Validate(); err != nil {
		t.Errorf("expected valid info: %v", err)
	}
}

func TestLoad_SubPathwayBecomesNode(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "Pathway2")

	if !reflect.DeepEqual(node.Types, []string{pathway.TypePathway}) {
		t.Errorf("unexpected types: %v", node.Types)
	}
	if !reflect.DeepEqual(node.Names, []string{"Intrinsic Pathway for Apoptosis"}) {
		t.Errorf("unexpected names: %v", node.Names)
	}
}

func TestLoad_ProteinInheritsReferenceXrefs(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "Protein1")

	if !reflect.DeepEqual(node.Types, []string{pathway.TypeProtein}) {
		t.Errorf("unexpected types: %v", node.Types)
	}
	if !reflect.DeepEqual(node.Names, []string{"CASP3", "Caspase-3"}) {
		t.Errorf("unexpected names: %v", node.Names)
	}
	if !reflect.DeepEqual(node.Xrefs, []pathway.Xref{{Namespace: "uniprot", Identifier: "P42574"}}) {
		t.Errorf("unexpected xrefs: %v", node.Xrefs)
	}
}

func TestLoad_SmallMolecule(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "SmallMolecule1")

	if !reflect.DeepEqual(node.Types, []string{pathway.TypeMetabolite}) {
		t.Errorf("unexpected types: %v", node.Types)
	}
	if !reflect.DeepEqual(node.Xrefs, []pathway.Xref{{Namespace: "chebi", Identifier: "CHEBI:30616"}}) {
		t.Errorf("unexpected xrefs: %v", node.Xrefs)
	}
}

func TestLoad_Complex(t *testing.T) {
	doc := load(t)
	if len(doc.Complexes) != 1 {
		t.Fatalf("expected 1 complex, got %d", len(doc.Complexes))
	}

	apoptosome := doc.Complexes[0]
	if !reflect.DeepEqual(apoptosome.Names, []string{"Apoptosome"}) {
		t.Errorf("unexpected names: %v", apoptosome.Names)
	}
	if !reflect.DeepEqual(apoptosome.Members, []string{"Protein1", "SmallMolecule1"}) {
		t.Errorf("unexpected members: %v", apoptosome.Members)
	}
}

func TestLoad_ReactionBecomesConversion(t *testing.T) {
	doc := load(t)
	if len(doc.Interactions) != 3 {
		t.Fatalf("expected 3 interactions, got %d", len(doc.Interactions))
	}

	reaction := doc.Interactions[0]
	if !reflect.DeepEqual(reaction.Types, []string{pathway.InteractionConversion}) {
		t.Errorf("unexpected types: %v", reaction.Types)
	}
	want := []pathway.Participant{{Source: "SmallMolecule1", Target: "SmallMolecule2"}}
	if !reflect.DeepEqual(reaction.Participants, want) {
		t.Errorf("unexpected participants: %v", reaction.Participants)
	}
}

func TestLoad_CatalysisTargetsReactionProducts(t *testing.T) {
	doc := load(t)
	catalysis := doc.Interactions[1]

	if !reflect.DeepEqual(catalysis.Types, []string{pathway.InteractionCatalysis}) {
		t.Errorf("unexpected types: %v", catalysis.Types)
	}
	want := []pathway.Participant{{Source: "Protein1", Target: "SmallMolecule2"}}
	if !reflect.DeepEqual(catalysis.Participants, want) {
		t.Errorf("expected the catalyst paired with the reaction product, got %v", catalysis.Participants)
	}
}

func TestLoad_ControlTypeMapsToSign(t *testing.T) {
	doc := load(t)
	control := doc.Interactions[2]

	if !reflect.DeepEqual(control.Types, []string{pathway.InteractionInhibition}) {
		t.Errorf("unexpected types: %v", control.Types)
	}
	want := []pathway.Participant{{Source: "Protein1", Target: "Pathway2"}}
	if !reflect.DeepEqual(control.Participants, want) {
		t.Errorf("expected the controlled pathway as target, got %v", control.Participants)
	}
}

func TestLoad_MalformedOWL(t *testing.T) {
	_, err := New().Load(context.Background(), "bad.owl", []byte("<rdf:RDF"))
	if err == nil {
		t.Fatal("expected an error for malformed OWL")
	}
}
