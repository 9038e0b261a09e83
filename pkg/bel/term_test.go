package bel

import (
	"reflect"
	"testing"
)

func TestTermKey(t *testing.T) {
	water := NewTerm(FuncAbundance, "chebi", "water", "15377")
	akt1 := NewTerm(FuncProtein, "hgnc", "AKT1", "391")

	tests := []struct {
		name string
		term Term
		want string
	}{
		{
			name: "protein",
			term: akt1,
			want: `p(hgnc:391!"AKT1")`,
		},
		{
			name: "abundance",
			term: water,
			want: `a(chebi:15377!"water")`,
		},
		{
			name: "bioprocess",
			term: NewTerm(FuncBioProcess, "kegg.pathway", "Apoptosis", "hsa04210"),
			want: `bp(kegg.pathway:hsa04210!"Apoptosis")`,
		},
		{
			name: "named complex",
			term: NewComplex("wp_complex", "", "c3f1a2", []Term{akt1, water}),
			want: `complex(wp_complex:c3f1a2!"")`,
		},
		{
			name: "anonymous complex lists members",
			term: NewComplex("", "", "", []Term{water, akt1}),
			want: `complex(a(chebi:15377!"water"); p(hgnc:391!"AKT1"))`,
		},
		{
			name: "reaction",
			term: NewReaction([]Term{water}, []Term{akt1}),
			want: `rxn(reactants(a(chebi:15377!"water")), products(p(hgnc:391!"AKT1")))`,
		},
		{
			name: "name with quotes is escaped",
			term: NewTerm(FuncProtein, "uniprot", `p53 "tumor"`, "P04637"),
			want: `p(uniprot:P04637!"p53 \"tumor\"")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.term.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewComplex_MemberOrderDoesNotMatter(t *testing.T) {
	a := NewTerm(FuncProtein, "hgnc", "AKT1", "391")
	b := NewTerm(FuncProtein, "hgnc", "TP53", "11998")
	c := NewTerm(FuncAbundance, "chebi", "ATP", "15422")

	first := NewComplex("reactome_complex", "", "R-HSA-1", []Term{a, b, c})
	second := NewComplex("reactome_complex", "", "R-HSA-1", []Term{c, a, b, a})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("complexes differ by member order:\n%v\n%v", first, second)
	}
}

func TestNewReaction_SetSemantics(t *testing.T) {
	atp := NewTerm(FuncAbundance, "chebi", "ATP", "15422")
	adp := NewTerm(FuncAbundance, "chebi", "ADP", "16761")
	akt := NewTerm(FuncProtein, "hgnc", "AKT1", "391")

	reaction := NewReaction([]Term{atp, akt, atp, atp}, []Term{adp, adp})

	if len(reaction.Reactants) != 2 {
		t.Fatalf("expected 2 distinct reactants, got %d", len(reaction.Reactants))
	}
	if len(reaction.Products) != 1 {
		t.Fatalf("expected 1 distinct product, got %d", len(reaction.Products))
	}

	reordered := NewReaction([]Term{akt, atp}, []Term{adp})
	if reaction.Key() != reordered.Key() {
		t.Errorf("reaction keys differ by input order: %q vs %q", reaction.Key(), reordered.Key())
	}
}
