// Package neo4j exports a pathway graph into Neo4j. Terms become Term nodes
// keyed by their canonical expression; edges become RELATES relationships
// keyed by the full edge identity, so re-exporting the same universe is an
// upsert, not a duplication.
package neo4j

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openpathway/pathmerge/internal/util"
	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const batchSize = 500

// Exporter writes graphs to one Neo4j database.
type Exporter struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewFromEnv connects using NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD and
// NEO4J_DATABASE and verifies connectivity. An empty NEO4J_URI disables the
// export; callers get (nil, nil) and skip it.
func NewFromEnv(ctx context.Context) (*Exporter, error) {
	uri := strings.TrimSpace(util.GetEnv("NEO4J_URI"))
	if uri == "" {
		return nil, nil
	}

	user := util.GetEnvString("NEO4J_USER", "neo4j")
	password := util.GetEnv("NEO4J_PASSWORD")

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify neo4j connectivity: %w", err)
	}

	return &Exporter{
		driver:   driver,
		database: util.GetEnv("NEO4J_DATABASE"),
	}, nil
}

// Close shuts the driver down.
func (e *Exporter) Close(ctx context.Context) error {
	if e == nil || e.driver == nil {
		return nil
	}
	return e.driver.Close(ctx)
}

// Export upserts all nodes and edges of the graph.
func (e *Exporter) Export(ctx context.Context, g *bel.Graph) error {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: e.database,
	})
	defer session.Close(ctx)

	// Best-effort schema init.
	constraints := []string{
		`CREATE CONSTRAINT term_key_unique IF NOT EXISTS FOR (t:Term) REQUIRE t.key IS UNIQUE`,
	}
	for _, stmt := range constraints {
		if res, err := session.Run(ctx, stmt, nil); err != nil {
			logger.Warn("[Neo4j] Schema init failed, continuing", "err", err)
		} else {
			_, _ = res.Consume(ctx)
		}
	}

	for _, batch := range batchMaps(termMaps(g.Nodes())) {
		if err := runBatch(ctx, session, `
UNWIND $batch AS n
MERGE (t:Term {key: n.key})
SET t += n
`, batch); err != nil {
			return fmt.Errorf("failed to upsert term batch: %w", err)
		}
	}

	for _, batch := range batchMaps(edgeMaps(g.Edges())) {
		if err := runBatch(ctx, session, `
UNWIND $batch AS e
MATCH (s:Term {key: e.source})
MATCH (t:Term {key: e.target})
MERGE (s)-[r:RELATES {key: e.key}]->(t)
SET r.relation = e.relation,
    r.citation = e.citation,
    r.evidence = e.evidence,
    r.object_modifier = e.object_modifier,
    r.databases = e.databases
`, batch); err != nil {
			return fmt.Errorf("failed to upsert edge batch: %w", err)
		}
	}

	logger.Info("[Neo4j] Export finished", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return nil
}

func runBatch(ctx context.Context, session neo4j.SessionWithContext, query string, batch []map[string]any) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{"batch": batch})
		if err != nil {
			return nil, err
		}
		return nil, res.Err()
	})
	return err
}

func termMaps(terms []bel.Term) []map[string]any {
	maps := make([]map[string]any, 0, len(terms))
	for _, term := range terms {
		maps = append(maps, map[string]any{
			"key":        term.Key(),
			"function":   string(term.Function),
			"namespace":  term.Namespace,
			"name":       term.Name,
			"identifier": term.Identifier,
		})
	}
	return maps
}

func edgeMaps(edges []bel.Edge) []map[string]any {
	maps := make([]map[string]any, 0, len(edges))
	for _, edge := range edges {
		maps = append(maps, map[string]any{
			"key":             edge.Key(),
			"source":          edge.Source,
			"target":          edge.Target,
			"relation":        string(edge.Relation),
			"citation":        edge.Citation,
			"evidence":        edge.Evidence,
			"object_modifier": string(edge.ObjectModifier),
			"databases":       edge.Annotations["database"],
		})
	}
	return maps
}

func batchMaps(maps []map[string]any) [][]map[string]any {
	var batches [][]map[string]any
	for start := 0; start < len(maps); start += batchSize {
		end := start + batchSize
		if end > len(maps) {
			end = len(maps)
		}
		batches = append(batches, maps[start:end])
	}
	return batches
}
