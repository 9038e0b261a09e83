package file

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/store"
)

func testGraph() *bel.Graph {
	g := bel.NewGraph(bel.Metadata{
		Title:      "Apoptosis",
		Identifier: "WP254",
		Database:   "wikipathways",
	})
	akt := bel.NewTerm(bel.FuncProtein, "hgnc", "AKT1", "391")
	tp53 := bel.NewTerm(bel.FuncProtein, "hgnc", "TP53", "11998")
	g.AddNode(akt)
	g.AddNode(tp53)
	g.AddNode(bel.NewComplex("wp_complex", "", "c1", []bel.Term{akt, tp53}))
	_ = g.AddEdge(bel.Edge{
		Relation:       bel.RelationIncreases,
		Source:         akt.Key(),
		Target:         tp53.Key(),
		Citation:       "http://example.org/e1",
		ObjectModifier: bel.ModifierActivity,
		Annotations:    map[string][]string{"database": {"wikipathways"}},
	})
	g.DeclareAnnotation("database", "kegg", "reactome", "wikipathways")
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "WP254"+store.ArchiveExt)

	if err := s.Save(context.Background(), testGraph(), path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := s.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !loaded.Equal(testGraph()) {
		t.Error("loaded graph differs from the saved one")
	}
}

func TestLoadMissingArchive(t *testing.T) {
	s := New()

	_, err := s.Load(context.Background(), filepath.Join(t.TempDir(), "nope"+store.ArchiveExt))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "kegg", "hsa04210"+store.ArchiveExt)

	if err := s.Save(context.Background(), testGraph(), path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := s.Load(context.Background(), path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func TestListReturnsFilesOnly(t *testing.T) {
	s := New()
	dir := t.TempDir()
	ctx := context.Background()

	for _, name := range []string{"WP1" + store.ArchiveExt, "WP2" + store.ArchiveExt} {
		if err := s.Save(ctx, testGraph(), filepath.Join(dir, name)); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	paths, err := s.List(ctx, dir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 archives, got %d: %v", len(paths), paths)
	}
}

func TestListMissingDirectory(t *testing.T) {
	s := New()

	_, err := s.List(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
