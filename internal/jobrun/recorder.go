package jobrun

import (
	"context"
	"time"

	"github.com/affistack/brandledger/internal/clock"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one recorded job execution. Scheduled runs leave one row each, so a
// missing day is visible without digging through logs.
type Run struct {
	ID         string            `json:"id" gorm:"primaryKey;type:text"`
	Job        string            `json:"job" gorm:"type:text;not null;index"`
	Status     string            `json:"status" gorm:"type:text;not null"`
	Error      string            `json:"error,omitempty" gorm:"type:text"`
	StartedAt  time.Time         `json:"started_at" gorm:"not null"`
	FinishedAt time.Time         `json:"finished_at"`
	Counters   datatypes.JSONMap `json:"counters,omitempty" gorm:"type:jsonb"`
}

func (Run) TableName() string { return "job_runs" }

var Module = fx.Module("jobrun",
	fx.Provide(NewRecorder),
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

// Recorder persists job runs. Recording is best-effort: a bookkeeping
// failure never turns a succeeded job into a failed one.
type Recorder struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func NewRecorder(p Params) *Recorder {
	return &Recorder{
		db:    p.DB,
		log:   p.Log.Named("jobrun"),
		clock: p.Clock,
	}
}

func (r *Recorder) Begin(job string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Job:       job,
		StartedAt: r.clock.Now(),
	}
}

func (r *Recorder) Finish(ctx context.Context, run *Run, counters map[string]any, runErr error) {
	run.FinishedAt = r.clock.Now()
	if runErr != nil {
		run.Status = StatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = StatusSucceeded
	}
	if counters != nil {
		run.Counters = datatypes.JSONMap(counters)
	}

	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		r.log.Warn("failed to record job run",
			zap.String("job", run.Job),
			zap.String("run_id", run.ID),
			zap.Error(err),
		)
	}
}
