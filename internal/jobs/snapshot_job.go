package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"courier-tracking/internal/broadcast"
	"courier-tracking/internal/domain"
	"courier-tracking/internal/logx"
)

// snapshotSource is the store view the periodic broadcast reads.
type snapshotSource interface {
	ListJoined(ctx context.Context) ([]domain.CourierPosition, error)
}

// SnapshotJob periodically pushes the full joined position snapshot to all
// observers. It is the resynchronization floor for observers that missed an
// event-driven push, not a source of truth ordering: a tick may overwrite a
// just-delivered event with a snapshot queried before it.
type SnapshotJob struct {
	source   snapshotSource
	hub      *broadcast.Hub
	cron     *cron.Cron
	interval time.Duration
	logger   logx.Logger

	ticks    prometheus.Counter
	failures prometheus.Counter
}

// NewSnapshotJob creates the periodic snapshot job.
func NewSnapshotJob(
	source snapshotSource,
	hub *broadcast.Hub,
	interval time.Duration,
	logger logx.Logger,
	ticks, failures prometheus.Counter,
) *SnapshotJob {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &SnapshotJob{
		source:   source,
		hub:      hub,
		cron:     cron.New(),
		interval: interval,
		logger:   logger.With(logx.String("component", "snapshot_job")),
		ticks:    ticks,
		failures: failures,
	}
}

// Start schedules the snapshot broadcast at the configured interval.
// A failed store query is logged and the tick skipped; the loop never dies.
func (j *SnapshotJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.tick)
	if err != nil {
		return fmt.Errorf("schedule snapshot job: %w", err)
	}
	j.cron.Start()
	j.logger.Info("snapshot job started", logx.Duration("interval", j.interval))
	return nil
}

func (j *SnapshotJob) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), j.interval)
	defer cancel()

	positions, err := j.source.ListJoined(ctx)
	if err != nil {
		j.failures.Inc()
		j.logger.Error("snapshot query failed, tick skipped", logx.Any("err", err))
		return
	}
	j.hub.Publish(broadcast.EventLocationsUpdate, positions)
	j.ticks.Inc()
}

// Stop cancels the schedule. A tick already running finishes on its own.
func (j *SnapshotJob) Stop() {
	j.cron.Stop()
	j.logger.Info("snapshot job stopped")
}
