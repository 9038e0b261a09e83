// Command pathmerge is the batch CLI: convert source pathway exports into
// graph archives, merge archives into the universe graph, summarize archives
// and print the record-document schema.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/openpathway/pathmerge/internal/util"
	"github.com/openpathway/pathmerge/pkg/convert"
	"github.com/openpathway/pathmerge/pkg/loader"
	"github.com/openpathway/pathmerge/pkg/logger"
	"github.com/openpathway/pathmerge/pkg/logger/console"
	"github.com/openpathway/pathmerge/pkg/merge"
	"github.com/openpathway/pathmerge/pkg/normalize"
	"github.com/openpathway/pathmerge/pkg/pathway"
	"github.com/openpathway/pathmerge/pkg/resolve"
	"github.com/openpathway/pathmerge/pkg/store"
	"github.com/openpathway/pathmerge/pkg/store/file"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{Debug: debug}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(ctx, os.Args[2:])
	case "merge":
		err = runMerge(ctx, os.Args[2:])
	case "summarize":
		err = runSummarize(ctx, os.Args[2:])
	case "schema":
		err = runSchema()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("Command failed", "command", os.Args[1], "err", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pathmerge <convert|merge|summarize|schema> [flags]")
}

func runConvert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	source := fs.String("source", "", "pathway database (kegg, reactome, wikipathways)")
	inputDir := fs.String("in", "", "directory with source pathway files")
	outputDir := fs.String("out", "", "directory for graph archives")
	workers := fs.Int("workers", 4, "parallel conversions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" || *inputDir == "" || *outputDir == "" {
		fs.Usage()
		return fmt.Errorf("convert: -source, -in and -out are required")
	}

	entries, err := os.ReadDir(*inputDir)
	if err != nil {
		return err
	}

	docs := make([]*pathway.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := loader.ForFile(entry.Name()); err != nil {
			logger.Debug("Skipping file without loader", "file", entry.Name())
			continue
		}
		raw, err := os.ReadFile(filepath.Join(*inputDir, entry.Name()))
		if err != nil {
			return err
		}
		doc, err := loader.Load(ctx, entry.Name(), raw)
		if err != nil {
			logger.Error("Failed to parse pathway file", "file", entry.Name(), "err", err)
			continue
		}
		if doc.Info.Database == "" {
			doc.Info.Database = *source
		}
		docs = append(docs, doc)
	}

	st := file.New()
	converter := convert.New(newResolver(ctx))
	results := converter.ConvertAll(ctx, docs, *workers)

	total := convert.Report{Database: *source}
	failed := 0
	for i, result := range results {
		if result.Err != nil {
			logger.Error("Failed to convert pathway", "pathway", docs[i].Info.Identifier, "err", result.Err)
			failed++
			continue
		}
		path := filepath.Join(*outputDir, result.Graph.Metadata().Identifier+store.ArchiveExt)
		if err := st.Save(ctx, result.Graph, path); err != nil {
			return err
		}
		total.Merge(result.Report)
	}

	logger.Info("Conversion finished",
		"source", *source,
		"pathways", len(docs)-failed,
		"failed", failed,
		"nodes", total.MappedNodes,
		"complexes", total.MappedComplexes,
		"interactions", total.MappedInteractions,
		"unresolved_genes", total.UnresolvedGenes,
		"dropped_edges", total.DroppedEdges,
	)
	if failed > 0 {
		return fmt.Errorf("%d pathway(s) failed to convert", failed)
	}
	return nil
}

func runMerge(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	root := fs.String("root", "", "archive root with per-source directories")
	output := fs.String("out", "", "universe archive path (default <root>/universe"+store.ArchiveExt+")")
	flatten := fs.Bool("flatten", true, "replace composites with their member fan-out")
	normalizeNames := fs.Bool("normalize", true, "apply per-source name normalization")
	tablesPath := fs.String("tables", "", "YAML overlay with normalization tables")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *root == "" {
		fs.Usage()
		return fmt.Errorf("merge: -root is required")
	}

	opts := merge.Options{Flatten: *flatten, Normalize: *normalizeNames}
	if *tablesPath != "" {
		tables, err := normalize.Load(*tablesPath)
		if err != nil {
			return err
		}
		opts.Tables = tables
	}

	st := file.New()
	universe, report, err := merge.New(st, opts).Merge(ctx, *root)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = filepath.Join(*root, "universe"+store.ArchiveExt)
	}
	if err := st.Save(ctx, universe, path); err != nil {
		return err
	}

	logger.Info("Merge finished",
		"output", path,
		"nodes", universe.NodeCount(),
		"edges", universe.EdgeCount(),
		"graphs", report.Graphs,
		"empty_sources", report.EmptySources,
		"failed_archives", len(report.FailedArchives),
		"skipped_files", len(report.SkippedFiles),
	)
	return nil
}

func runSummarize(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summarize", flag.ExitOnError)
	archive := fs.String("archive", "", "graph archive to summarize")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		fs.Usage()
		return fmt.Errorf("summarize: -archive is required")
	}

	graph, err := file.New().Load(ctx, *archive)
	if err != nil {
		return err
	}

	return printJSON(graph.Summarize())
}

func runSchema() error {
	return printJSON(pathway.DocumentSchema())
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// newResolver builds the identifier resolver from the environment: static
// tables offline, pgx when DATABASE_URL is set, fronted by Redis when
// REDIS_URL is set on top.
func newResolver(ctx context.Context) resolve.Resolver {
	databaseURL := util.GetEnv("DATABASE_URL")
	if databaseURL == "" {
		return resolve.NewStatic()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}

	var resolver resolve.Resolver = resolve.NewPgx(pool)
	if redisURL := util.GetEnv("REDIS_URL"); redisURL != "" {
		client, err := resolve.NewRedisClient(redisURL)
		if err != nil {
			logger.Fatal("Unable to connect to Redis", "err", err)
		}
		resolver = resolve.NewCached(resolver, client, 24*time.Hour)
	}
	return resolver
}
