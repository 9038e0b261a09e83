package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/openpathway/pathmerge/pkg/export/neo4j"
	"github.com/openpathway/pathmerge/pkg/leaselock"
	"github.com/openpathway/pathmerge/pkg/logger"
	"github.com/openpathway/pathmerge/pkg/merge"
	"github.com/openpathway/pathmerge/pkg/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// universeLockKey serializes merge runs. Only one merge may rebuild the
// universe archive at a time.
const universeLockKey = "universe"

// ProcessMergeMessage rebuilds the universe archive from the per-source
// archive directories under the job's root, guarded by the pgx lease so
// concurrent merge jobs queue up instead of clobbering each other's output.
func ProcessMergeMessage(
	ctx context.Context,
	conn *pgxpool.Pool,
	st store.GraphStore,
	exporter *neo4j.Exporter,
	msg string,
) error {
	data := new(MergeJobMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return err
	}

	output := data.Output
	if output == "" {
		output = filepath.Join(data.Root, "universe"+store.ArchiveExt)
	}

	lockClient := leaselock.New(conn)
	return lockClient.WithLease(ctx, universeLockKey, leaselock.Options{
		TTL:         10 * time.Minute,
		RenewEvery:  4 * time.Minute,
		Wait:        true,
		TokenPrefix: "merge/",
	}, func(ctx context.Context) error {
		merger := merge.New(st, merge.Options{
			Flatten:   data.Flatten,
			Normalize: data.Normalize,
		})

		universe, report, err := merger.Merge(ctx, data.Root)
		if err != nil {
			return fmt.Errorf("failed to merge archives: %w", err)
		}

		if err := st.Save(ctx, universe, output); err != nil {
			return fmt.Errorf("failed to save universe archive: %w", err)
		}

		logger.Info("[Queue] Merge job finished",
			"correlation_id", data.CorrelationID,
			"output", output,
			"nodes", universe.NodeCount(),
			"edges", universe.EdgeCount(),
			"graphs", report.Graphs,
			"failed_archives", len(report.FailedArchives),
			"skipped_files", len(report.SkippedFiles),
		)

		if exporter != nil {
			if err := exporter.Export(ctx, universe); err != nil {
				return fmt.Errorf("failed to export universe to neo4j: %w", err)
			}
		}
		return nil
	})
}
