// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/crmdesk/backend/internal/infrastructure/telemetry"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobStatus represents the outcome of the last run of a job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobFunc is the work of a job. ctx carries the job timeout.
type JobFunc func(ctx context.Context) error

// JobRun describes the latest execution of a job
type JobRun struct {
	Name        string     `json:"name"`
	Schedule    string     `json:"schedule"`
	Status      JobStatus  `json:"status"`
	Error       string     `json:"error,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	NextRunAt   *time.Time `json:"next_run_at,omitempty"`
}

type job struct {
	name    string
	spec    string
	fn      JobFunc
	entryID cron.EntryID

	mu      sync.Mutex
	running bool
	last    JobRun
}

// Config holds scheduler settings
type Config struct {
	// JobTimeout bounds a single run; zero means no timeout
	JobTimeout time.Duration
	// Location evaluates cron expressions; nil means time.Local
	Location *time.Location
	// Observer, when set, is told about every finished run
	Observer JobObserver
}

// JobObserver receives the outcome of every job run
type JobObserver interface {
	JobFinished(ctx context.Context, name string, d time.Duration, err error)
}

// Scheduler runs registered jobs on their cron schedules. Overlapping runs of
// the same job are skipped and panics are recovered.
type Scheduler struct {
	cron   *cron.Cron
	config Config
	logger *zap.Logger

	mu   sync.RWMutex
	jobs map[string]*job

	// baseCtx is cancelled by Stop so running jobs see shutdown
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New creates a stopped scheduler
func New(config Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := config.Location
	if loc == nil {
		loc = time.Local
	}
	cl := cronLogger{logger: logger.Named("cron")}
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		config:     config,
		logger:     logger,
		jobs:       make(map[string]*job),
		baseCtx:    baseCtx,
		cancelBase: cancel,
	}
}

// Register adds a job under a standard 5-field cron expression
func (s *Scheduler) Register(name, spec string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, name)
	}

	j := &job{name: name, spec: spec, fn: fn, last: JobRun{Name: name, Schedule: spec, Status: JobStatusPending}}
	id, err := s.cron.AddFunc(spec, func() { _ = s.execute(s.baseCtx, j) })
	if err != nil {
		return fmt.Errorf("%w: job %s: %v", ErrInvalidConfig, name, err)
	}
	j.entryID = id
	s.jobs[name] = j

	s.logger.Info("job registered", zap.String("job", name), zap.String("schedule", spec))
	return nil
}

// Start begins evaluating schedules in a background goroutine
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Int("jobs", len(s.jobs)))
	s.cron.Start()
}

// Stop stops scheduling, cancels running jobs and waits for them to return or
// for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info("stopping scheduler")
	done := s.cron.Stop()
	s.cancelBase()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// RunNow executes a job immediately in the caller's goroutine
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.execute(ctx, j)
}

// Runs reports the latest run of every registered job
func (s *Scheduler) Runs() []JobRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]JobRun, 0, len(s.jobs))
	for _, j := range s.jobs {
		j.mu.Lock()
		run := j.last
		j.mu.Unlock()
		if next := s.cron.Entry(j.entryID).Next; !next.IsZero() {
			run.NextRunAt = &next
		}
		runs = append(runs, run)
	}
	return runs
}

func (s *Scheduler) execute(ctx context.Context, j *job) error {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrJobAlreadyRunning, j.name)
	}
	started := time.Now()
	j.running = true
	j.last.Status = JobStatusRunning
	j.last.StartedAt = &started
	j.last.CompletedAt = nil
	j.last.Error = ""
	j.mu.Unlock()

	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	ctx, span := telemetry.StartSpan(ctx, "job."+j.name, telemetry.AttrJob.String(j.name))
	s.logger.Info("job started", zap.String("job", j.name))
	err := j.fn(ctx)
	completed := time.Now()
	telemetry.EndSpan(span, err)
	if s.config.Observer != nil {
		s.config.Observer.JobFinished(ctx, j.name, completed.Sub(started), err)
	}

	j.mu.Lock()
	j.running = false
	j.last.CompletedAt = &completed
	if err != nil {
		j.last.Status = JobStatusFailed
		j.last.Error = err.Error()
	} else {
		j.last.Status = JobStatusSuccess
	}
	j.mu.Unlock()

	if err != nil {
		s.logger.Error("job failed",
			zap.String("job", j.name),
			zap.Duration("duration", completed.Sub(started)),
			zap.Error(err))
		return err
	}
	s.logger.Info("job finished", zap.String("job", j.name), zap.Duration("duration", completed.Sub(started)))
	return nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
