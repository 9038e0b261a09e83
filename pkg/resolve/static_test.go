package resolve

import (
	"context"
	"testing"

	"github.com/openpathway/pathmerge/pkg/pathway"
)

func TestStaticResolve_PrefersReliableNamespaces(t *testing.T) {
	r := NewStatic()
	r.Add("hgnc", "391", Identity{Namespace: "hgnc", Name: "AKT1", Identifier: "391"})
	r.Add("symbol", "AKT", Identity{Namespace: "hgnc", Name: "AKT-legacy", Identifier: "0"})

	// The symbol candidate comes first in source order but hgnc outranks it.
	identity, ok, err := r.Resolve(context.Background(), []pathway.Xref{
		{Namespace: "symbol", Identifier: "AKT"},
		{Namespace: "hgnc", Identifier: "391"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a resolution")
	}
	if identity.Name != "AKT1" {
		t.Errorf("expected hgnc candidate to win, got %+v", identity)
	}
}

func TestStaticResolve_CaseInsensitiveNamespace(t *testing.T) {
	r := NewStatic()
	r.Add("HGNC", "391", Identity{Namespace: "hgnc", Name: "AKT1", Identifier: "391"})

	_, ok, err := r.Resolve(context.Background(), []pathway.Xref{
		{Namespace: "hgnc", Identifier: "391"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected namespace match to be case-insensitive")
	}
}

func TestStaticResolve_Miss(t *testing.T) {
	r := NewStatic()

	identity, ok, err := r.Resolve(context.Background(), []pathway.Xref{
		{Namespace: "ensembl", Identifier: "ENSG00000142208"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("expected a miss, got %+v", identity)
	}
}
