// Package ingestion implements the corpus-refresh collaborator mentioned
// in SPEC_FULL.md §2/§5: the only writer to the signal corpus, scheduled
// by a `robfig/cron` expression. On every refresh it touches the corpus
// watermark and invalidates every pipeline cache, since the corpus is
// treated as read-only from the pipeline's own perspective.
package ingestion

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job represents a scheduled background job, grounded on the teacher's
// Job interface shape (trader-go/internal/scheduler).
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages the corpus-refresh cron job.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a scheduler using standard (minute-granularity) cron
// expressions.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With().Str("component", "ingestion_scheduler").Logger(),
	}
}

// Start begins running registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("ingestion scheduler started")
}

// Stop waits for any in-flight job to finish, then stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("ingestion scheduler stopped")
}

// AddJob registers job to run on schedule (standard 5-field cron syntax,
// e.g. "*/15 * * * *" for every 15 minutes).
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debug().Str("job", job.Name()).Msg("running ingestion job")
		if err := job.Run(context.Background()); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("ingestion job failed")
			return
		}
		s.log.Debug().Str("job", job.Name()).Msg("ingestion job completed")
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("schedule", schedule).Str("job", job.Name()).Msg("ingestion job registered")
	return nil
}

// RunNow executes job immediately, outside of its schedule.
func (s *Scheduler) RunNow(ctx context.Context, job Job) error {
	s.log.Info().Str("job", job.Name()).Msg("running ingestion job immediately")
	return job.Run(ctx)
}
