package performance

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CleanupReport summarizes a cleanup sweep.
type CleanupReport struct {
	Deleted         int64 `json:"deleted"`
	ArchivesRemoved int   `json:"archives_removed"`
}

// Cleanup deletes every performance that began before now. Archived listings
// older than the retention are pruned as well; a failed prune is logged only.
func (s *Service) Cleanup(ctx context.Context, now time.Time) (*CleanupReport, error) {
	deleted, err := s.adapter.DeleteBefore(ctx, now)
	if err != nil {
		return nil, err
	}
	s.deps.Metrics.CleanupDeleted(deleted)

	report := &CleanupReport{Deleted: deleted}

	if s.deps.ArchiveRetention > 0 {
		removed, err := s.deps.Archive.Prune(ctx, now.Add(-s.deps.ArchiveRetention))
		if err != nil {
			s.logger.Warn("Failed to prune listing archive", zap.Error(err))
		}
		report.ArchivesRemoved = removed
	}

	s.logger.Info("Cleanup sweep finished",
		zap.Int64("deleted", deleted),
		zap.Int("archives_removed", report.ArchivesRemoved),
		zap.Time("threshold", now))

	return report, nil
}
