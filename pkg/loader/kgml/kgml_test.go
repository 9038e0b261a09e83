package kgml

import (
	"context"
	"reflect"
	"testing"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

const fixture = `<?xml version="1.0"?>
<pathway name="path:hsa04210" org="hsa" number="04210" title="Apoptosis"
         link="https://www.kegg.jp/kegg-bin/show_pathway?hsa04210">
  <entry id="1" name="hsa:842" type="gene" link="https://www.kegg.jp/dbget-bin/www_bget?hsa:842">
    <graphics name="CASP9, APAF3, ICE-LAP6..." type="rectangle"/>
  </entry>
  <entry id="2" name="hsa:836 hsa:837" type="gene">
    <graphics name="CASP3" type="rectangle"/>
  </entry>
  <entry id="3" name="cpd:C00002" type="compound">
    <graphics name="ATP" type="circle"/>
  </entry>
  <entry id="4" name="cpd:C00008" type="compound">
    <graphics name="ADP" type="circle"/>
  </entry>
  <entry id="5" name="path:hsa04115" type="map">
    <graphics name="p53 signaling pathway" type="roundrectangle"/>
  </entry>
  <entry id="6" name="undefined" type="group">
    <component id="1"/>
    <component id="2"/>
  </entry>
  <entry id="7" name="ko:K02187" type="ortholog">
    <graphics name="CASP3" type="rectangle"/>
  </entry>
  <relation entry1="1" entry2="2" type="PPrel">
    <subtype name="activation" value="--&gt;"/>
  </relation>
  <relation entry1="2" entry2="5" type="maplink">
    <subtype name="indirect effect" value="..&gt;"/>
  </relation>
  <reaction id="8" name="rn:R00086" type="irreversible">
    <substrate id="3" name="cpd:C00002"/>
    <product id="4" name="cpd:C00008"/>
  </reaction>
</pathway>`

func load(t *testing.T) *pathway.Document {
	t.Helper()
	doc, err := New().Load(context.Background(), "hsa04210.kgml", []byte(fixture))
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
	if doc.Info.Title != "Apoptosis" || doc.Info.Identifier != "hsa04210" {
		t.Errorf("unexpected info: %+v", doc.Info)
	}
	if doc.Info.Database != "kegg" {
		t.Errorf("expected kegg database, got %q", doc.Info.Database)
	}
	if err := doc.Info.Validate(); err != nil {
		t.Errorf("expected valid info: %v", err)
	}
}

func TestLoad_GeneEntry(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "https://www.kegg.jp/kgml/hsa04210/1")

	if !reflect.DeepEqual(node.Types, []string{pathway.TypeGeneProduct}) {
		t.Errorf("unexpected types: %v", node.Types)
	}
	if !reflect.DeepEqual(node.Names, []string{"CASP9", "APAF3", "ICE-LAP6"}) {
		t.Errorf("expected the ellipsis-trimmed name list, got %v", node.Names)
	}
	if !reflect.DeepEqual(node.Xrefs, []pathway.Xref{{Namespace: "ncbigene", Identifier: "842"}}) {
		t.Errorf("unexpected xrefs: %v", node.Xrefs)
	}
}

func TestLoad_MultiGeneEntryKeepsAllCandidates(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "https://www.kegg.jp/kgml/hsa04210/2")

	want := []pathway.Xref{
		{Namespace: "ncbigene", Identifier: "836"},
		{Namespace: "ncbigene", Identifier: "837"},
	}
	if !reflect.DeepEqual(node.Xrefs, want) {
		t.Errorf("expected both entrez candidates, got %v", node.Xrefs)
	}
}

func TestLoad_CompoundEntry(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "http://identifiers.org/kegg.compound/C00002")

	if !reflect.DeepEqual(node.Types, []string{pathway.TypeMetabolite}) {
		t.Errorf("unexpected types: %v", node.Types)
	}
	if !reflect.DeepEqual(node.Identifiers, []string{"C00002"}) {
		t.Errorf("unexpected identifiers: %v", node.Identifiers)
	}
}

func TestLoad_MapEntry(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "http://identifiers.org/kegg.pathway/hsa04115")

	if !reflect.DeepEqual(node.Types, []string{pathway.TypePathway}) {
		t.Errorf("unexpected types: %v", node.Types)
	}
}

func TestLoad_OrthologEntry(t *testing.T) {
	doc := load(t)
	node := nodeByURI(t, doc, "https://www.kegg.jp/kgml/hsa04210/7")

	if !reflect.DeepEqual(node.Xrefs, []pathway.Xref{{Namespace: "kegg.orthology", Identifier: "K02187"}}) {
		t.Errorf("unexpected xrefs: %v", node.Xrefs)
	}
}

func TestLoad_GroupBecomesComplex(t *testing.T) {
	doc := load(t)
	if len(doc.Complexes) != 1 {
		t.Fatalf("expected 1 complex, got %d", len(doc.Complexes))
	}

	group := doc.Complexes[0]
	if group.URI != "https://www.kegg.jp/kgml/hsa04210/hsa04210_group_6" {
		t.Errorf("expected a pathway-qualified group URI, got %q", group.URI)
	}
	want := []string{
		"https://www.kegg.jp/kgml/hsa04210/1",
		"https://www.kegg.jp/kgml/hsa04210/2",
	}
	if !reflect.DeepEqual(group.Members, want) {
		t.Errorf("unexpected members: %v", group.Members)
	}
}

func TestLoad_Relations(t *testing.T) {
	doc := load(t)
	if len(doc.Interactions) != 3 {
		t.Fatalf("expected 2 relations and 1 reaction, got %d interactions", len(doc.Interactions))
	}

	activation := doc.Interactions[0]
	if !reflect.DeepEqual(activation.Types, []string{pathway.InteractionStimulation}) {
		t.Errorf("expected activation to map to Stimulation, got %v", activation.Types)
	}
	wantPair := pathway.Participant{
		Source: "https://www.kegg.jp/kgml/hsa04210/1",
		Target: "https://www.kegg.jp/kgml/hsa04210/2",
	}
	if !reflect.DeepEqual(activation.Participants, []pathway.Participant{wantPair}) {
		t.Errorf("unexpected participants: %v", activation.Participants)
	}

	indirect := doc.Interactions[1]
	if !reflect.DeepEqual(indirect.Types, []string{pathway.InteractionGeneric}) {
		t.Errorf("expected indirect effect to be non-informative, got %v", indirect.Types)
	}
}

func TestLoad_ReactionBecomesConversion(t *testing.T) {
	doc := load(t)
	reaction := doc.Interactions[2]

	if !reflect.DeepEqual(reaction.Types, []string{pathway.InteractionConversion}) {
		t.Errorf("expected a Conversion interaction, got %v", reaction.Types)
	}
	want := []pathway.Participant{{
		Source: "http://identifiers.org/kegg.compound/C00002",
		Target: "http://identifiers.org/kegg.compound/C00008",
	}}
	if !reflect.DeepEqual(reaction.Participants, want) {
		t.Errorf("unexpected reaction participants: %v", reaction.Participants)
	}
}

func TestLoad_MalformedXML(t *testing.T) {
	_, err := New().Load(context.Background(), "bad.kgml", []byte("<pathway"))
	if err == nil {
		t.Fatal("expected an error for malformed XML")
	}
}
