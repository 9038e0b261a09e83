// Package merge builds the universe graph: it loads per-pathway graph
// archives from the three source databases, flattens composites, normalizes
// names per source, tags every edge with its contributing database and
// unions everything into one graph. Nodes merge by canonical key across
// sources; edges stay distinct per provenance tag.
package merge

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/openpathway/pathmerge/pkg/bel"
	"github.com/openpathway/pathmerge/pkg/normalize"
	"github.com/openpathway/pathmerge/pkg/store"
)

// AnnotationDatabase is the edge annotation key recording which source
// database contributed an edge.
const AnnotationDatabase = "database"

// Sources lists the known source databases in merge order.
var Sources = []string{"kegg", "reactome", "wikipathways"}

// ErrUnknownSource marks archive sets keyed by a database name outside the
// known three.
var ErrUnknownSource = errors.New("unknown source database")

// Options control the per-graph processing steps of a merge run. Both
// switches default to on in the batch surfaces.
type Options struct {
	// Flatten replaces composite nodes with their member sets. This trades
	// structural fidelity for comparability across sources that do not all
	// model complexes identically.
	Flatten bool

	// Normalize rewrites node names through the per-source tables before the
	// union.
	Normalize bool

	// Tables are the normalization tables to use; nil falls back to the
	// compiled-in defaults.
	Tables normalize.Tables
}

// Report accounts for everything a merge run skipped or could not read.
type Report struct {
	// Graphs counts merged graphs per source database.
	Graphs map[string]int `json:"graphs"`

	// SkippedFiles lists files that are not graph archives.
	SkippedFiles []string `json:"skipped_files,omitempty"`

	// FailedArchives lists archives that could not be loaded.
	FailedArchives []string `json:"failed_archives,omitempty"`

	// EmptySources lists sources that contributed nothing.
	EmptySources []string `json:"empty_sources,omitempty"`
}

// Merger builds universe graphs from stored pathway archives.
type Merger struct {
	store store.GraphStore
	opts  Options
}

// New creates a merger on the given archive store.
func New(st store.GraphStore, opts Options) *Merger {
	if opts.Tables == nil {
		opts.Tables = normalize.Default()
	}
	return &Merger{store: st, opts: opts}
}

// Merge lists the archives under root, one subdirectory per source database,
// and unions them into the universe graph. Files that belong to no known
// source layout and archives that fail to load are recorded in the report
// and skipped, never fatal.
func (m *Merger) Merge(ctx context.Context, root string) (*bel.Graph, *Report, error) {
	report := newReport()
	pathsBySource := make(map[string][]string, len(Sources))

	for _, source := range Sources {
		dir := path.Join(root, source)
		files, err := m.store.List(ctx, dir)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, report, fmt.Errorf("failed to list %s archives: %w", source, err)
		}
		for _, file := range files {
			if !strings.HasSuffix(file, store.ArchiveExt) {
				report.SkippedFiles = append(report.SkippedFiles, file)
				continue
			}
			pathsBySource[source] = append(pathsBySource[source], file)
		}
	}

	universe, err := m.MergePaths(ctx, pathsBySource, report)
	return universe, report, err
}

// MergePaths unions the given archives, keyed by source database, into the
// universe graph. Keys outside the known sources are recorded and skipped.
func (m *Merger) MergePaths(ctx context.Context, pathsBySource map[string][]string, report *Report) (*bel.Graph, error) {
	if report == nil {
		report = newReport()
	}
	for source := range pathsBySource {
		if !knownSource(source) {
			report.SkippedFiles = append(report.SkippedFiles,
				fmt.Sprintf("%s: %v", source, ErrUnknownSource))
		}
	}

	universe := bel.NewGraph(bel.Metadata{Title: "universe"})
	for _, source := range Sources {
		paths := pathsBySource[source]
		if len(paths) == 0 {
			report.EmptySources = append(report.EmptySources, source)
			continue
		}

		stream := NewStream(ctx, m.store, paths, func(path string, err error) {
			report.FailedArchives = append(report.FailedArchives,
				fmt.Sprintf("%s: %v", path, err))
		})
		for stream.Next() {
			processed := m.processGraph(stream.Graph(), source)
			if err := universe.Absorb(processed); err != nil {
				return nil, fmt.Errorf("failed to union %s graph: %w", source, err)
			}
			report.Graphs[source]++
		}
		if err := stream.Err(); err != nil {
			return nil, err
		}
	}
	return universe, nil
}

// processGraph runs the per-graph pipeline: flatten, normalize, annotate.
// Every step produces a new graph; loaded archives are never mutated.
func (m *Merger) processGraph(g *bel.Graph, source string) *bel.Graph {
	if m.opts.Flatten {
		g = Flatten(g)
	}
	if m.opts.Normalize {
		g = m.opts.Tables.Apply(g, source)
	}
	return annotate(g, source)
}

// annotate returns a copy of the graph whose database annotation declares
// all three sources as its legal domain while every edge asserts the one
// source that actually contributed it.
func annotate(g *bel.Graph, source string) *bel.Graph {
	out := bel.NewGraph(g.Metadata())
	for _, term := range g.Nodes() {
		out.AddNode(term)
	}
	for _, edge := range g.Edges() {
		// WithAnnotation allocates the annotation container when the edge
		// carries none, so indexing by annotation is never blocked later.
		_ = out.AddEdge(edge.WithAnnotation(AnnotationDatabase, source))
	}
	for key, values := range g.AnnotationDomains() {
		out.DeclareAnnotation(key, values...)
	}
	out.DeclareAnnotation(AnnotationDatabase, Sources...)
	return out
}

func newReport() *Report {
	return &Report{Graphs: make(map[string]int, len(Sources))}
}

func knownSource(source string) bool {
	for _, s := range Sources {
		if s == source {
			return true
		}
	}
	return false
}
