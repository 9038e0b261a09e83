package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openpathway/pathmerge/internal/util"
	"github.com/openpathway/pathmerge/pkg/convert"
	"github.com/openpathway/pathmerge/pkg/loader"
	"github.com/openpathway/pathmerge/pkg/logger"
	"github.com/openpathway/pathmerge/pkg/pathway"
	"github.com/openpathway/pathmerge/pkg/resolve"
	"github.com/openpathway/pathmerge/pkg/store"
)

// ProcessConvertMessage converts every pathway file in the job's input
// directory and writes one graph archive per pathway. A file that fails to
// parse or convert is logged and skipped; the job fails only when the input
// directory is unreadable or an archive cannot be written.
func ProcessConvertMessage(
	ctx context.Context,
	st store.GraphStore,
	resolver resolve.Resolver,
	msg string,
) error {
	data := new(ConvertJobMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	entries, err := os.ReadDir(data.InputDir)
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}

	docs := make([]*pathway.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := loader.ForFile(entry.Name()); err != nil {
			logger.Debug("[Queue] Skipping file without loader", "file", entry.Name())
			continue
		}

		path := filepath.Join(data.InputDir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Error("[Queue] Failed to read pathway file", "file", path, "err", err)
			continue
		}

		doc, err := loader.Load(ctx, entry.Name(), raw)
		if err != nil {
			logger.Error("[Queue] Failed to parse pathway file", "file", path, "err", err)
			continue
		}
		if doc.Info.Database == "" {
			doc.Info.Database = data.Source
		}
		docs = append(docs, doc)
	}

	workers := int(util.GetEnvNumeric("CONVERT_WORKERS", 4))
	converter := convert.New(resolver)
	results := converter.ConvertAll(ctx, docs, workers)

	total := convert.Report{Database: data.Source}
	converted := 0
	for i, result := range results {
		if result.Err != nil {
			logger.Error("[Queue] Failed to convert pathway",
				"pathway", docs[i].Info.Identifier, "err", result.Err)
			continue
		}

		path := filepath.Join(data.OutputDir, result.Graph.Metadata().Identifier+store.ArchiveExt)
		if err := st.Save(ctx, result.Graph, path); err != nil {
			return fmt.Errorf("failed to save archive %s: %w", path, err)
		}
		total.Merge(result.Report)
		converted++
	}

	logger.Info("[Queue] Convert job finished",
		"source", data.Source,
		"correlation_id", data.CorrelationID,
		"pathways", converted,
		"nodes", total.MappedNodes,
		"interactions", total.MappedInteractions,
		"unresolved_genes", total.UnresolvedGenes,
		"dropped_edges", total.DroppedEdges,
	)
	return nil
}
