// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Sheimsito/picm-server/internal/adapters/db"
	"github.com/Sheimsito/picm-server/internal/adapters/storage"
)

// Soft-deleted catalog rows older than this are purged for good. The
// movements ledger is never touched; it is the audit trail.
const purgeAfter = 90 * 24 * time.Hour

// CleanupProcessor handles periodic housekeeping tasks.
type CleanupProcessor struct {
	db      *db.Database
	storage storage.StorageClient
	logger  *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(database *db.Database, store storage.StorageClient, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		db:      database,
		storage: store,
		logger:  logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupOldJobs handles cleanup:old_jobs tasks. It purges long-dead
// soft-deleted catalog rows and stale report archives.
func (p *CleanupProcessor) CleanupOldJobs(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "running cleanup")

	cutoff := time.Now().UTC().Add(-purgeAfter)

	var purged int64
	for _, table := range []string{"products", "supplies", "categories", "suppliers", "users"} {
		query := fmt.Sprintf(
			`DELETE FROM %s WHERE active = FALSE AND deleted_at IS NOT NULL AND deleted_at < $1`, table)

		result, err := p.db.Exec(ctx, query, cutoff)
		if err != nil {
			return fmt.Errorf("failed to purge %s: %w", table, err)
		}
		purged += result.RowsAffected()
	}

	archivesDeleted, err := p.pruneReportArchives(ctx, cutoff)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to prune report archives", "err", err)
	}

	p.logger.InfoContext(ctx, "cleanup completed",
		slog.Int64("rows_purged", purged),
		slog.Int("archives_deleted", archivesDeleted))

	return nil
}

// pruneReportArchives removes workbook archives older than the cutoff. The
// object key embeds the generation timestamp.
func (p *CleanupProcessor) pruneReportArchives(ctx context.Context, cutoff time.Time) (int, error) {
	if p.storage == nil {
		return 0, nil
	}

	keys, err := p.storage.List(ctx, "reports/movements/")
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, key := range keys {
		generatedAt, ok := reportKeyTime(key)
		if !ok || !generatedAt.Before(cutoff) {
			continue
		}
		if err := p.storage.Delete(ctx, key); err != nil {
			p.logger.WarnContext(ctx, "failed to delete archive",
				slog.String("key", key),
				"err", err)
			continue
		}
		deleted++
	}

	return deleted, nil
}

func reportKeyTime(key string) (time.Time, bool) {
	const prefix = "reports/movements/"
	const stampLen = len("20060102_150405")
	if len(key) < len(prefix)+stampLen {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102_150405", key[len(prefix):len(prefix)+stampLen])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
