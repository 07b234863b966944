package application

import (
	"context"
	"os"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"batchpix/internal/common"
	"batchpix/internal/transport"
)

// StatsManager accumulates per-session conversion totals. Runs are
// serialized by the runner, so updates never race.
type StatsManager struct {
	ctx   context.Context
	stats *transport.AppStats
}

func NewStatsManager(ctx context.Context) *StatsManager {
	return &StatsManager{
		ctx:   ctx,
		stats: &transport.AppStats{},
	}
}

// RecordRun folds one finished run's emissions into the session totals
// and pushes the new figures to the frontend.
func (m *StatsManager) RecordRun(paths []string) {
	var written int64
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			written += info.Size()
		}
	}

	m.stats.FilesConverted += len(paths)
	m.stats.BytesWritten += written

	wailsruntime.EventsEmit(m.ctx, common.EventStatsUpdate, m.stats)
}

func (m *StatsManager) Stats() *transport.AppStats {
	return m.stats
}
