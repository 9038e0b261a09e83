package neo4j

import (
	"testing"

	"github.com/openpathway/pathmerge/pkg/bel"
)

func TestTermMaps(t *testing.T) {
	akt := bel.NewTerm(bel.FuncProtein, "hgnc", "AKT1", "391")
	maps := termMaps([]bel.Term{akt})

	if len(maps) != 1 {
		t.Fatalf("expected 1 map, got %d", len(maps))
	}
	if maps[0]["key"] != akt.Key() || maps[0]["function"] != "p" {
		t.Errorf("unexpected term map: %v", maps[0])
	}
}

func TestEdgeMaps_CarryDatabases(t *testing.T) {
	edge := bel.Edge{
		Relation: bel.RelationIncreases,
		Source:   "s",
		Target:   "t",
		Citation: "http://kegg/e1",
	}.WithAnnotation("database", "kegg")

	maps := edgeMaps([]bel.Edge{edge})
	if len(maps) != 1 {
		t.Fatalf("expected 1 map, got %d", len(maps))
	}
	databases, ok := maps[0]["databases"].([]string)
	if !ok || len(databases) != 1 || databases[0] != "kegg" {
		t.Errorf("unexpected databases: %v", maps[0]["databases"])
	}
	if maps[0]["key"] != edge.Key() {
		t.Errorf("unexpected edge key: %v", maps[0]["key"])
	}
}

func TestBatchMaps(t *testing.T) {
	maps := make([]map[string]any, batchSize+1)
	for i := range maps {
		maps[i] = map[string]any{}
	}

	batches := batchMaps(maps)
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if len(batches[0]) != batchSize || len(batches[1]) != 1 {
		t.Errorf("unexpected batch sizes: %d, %d", len(batches[0]), len(batches[1]))
	}
}
