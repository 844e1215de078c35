package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestScheduler_Register(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.Register("weekly_report", "0 20 * * 5", noop))

	err := s.Register("weekly_report", "0 20 * * 5", noop)
	assert.ErrorIs(t, err, ErrDuplicateJob)

	err = s.Register("broken", "not a cron", noop)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_RunNowRecordsOutcome(t *testing.T) {
	s := New(Config{JobTimeout: time.Second}, zaptest.NewLogger(t))

	var calls atomic.Int32
	require.NoError(t, s.Register("ok", "@every 1h", func(ctx context.Context) error {
		calls.Add(1)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}))
	boom := errors.New("webhook returned 500")
	require.NoError(t, s.Register("fails", "@every 1h", func(context.Context) error { return boom }))

	require.NoError(t, s.RunNow(context.Background(), "ok"))
	assert.ErrorIs(t, s.RunNow(context.Background(), "fails"), boom)
	assert.ErrorIs(t, s.RunNow(context.Background(), "missing"), ErrJobNotFound)
	assert.Equal(t, int32(1), calls.Load())

	byName := map[string]JobRun{}
	for _, run := range s.Runs() {
		byName[run.Name] = run
	}
	assert.Equal(t, JobStatusSuccess, byName["ok"].Status)
	assert.NotNil(t, byName["ok"].CompletedAt)
	assert.Equal(t, JobStatusFailed, byName["fails"].Status)
	assert.Equal(t, "webhook returned 500", byName["fails"].Error)

	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_RunNowRejectsOverlap(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, s.Register("slow", "@every 1h", func(context.Context) error {
		close(started)
		<-release
		return nil
	}))

	done := make(chan error, 1)
	go func() { done <- s.RunNow(context.Background(), "slow") }()
	<-started

	assert.ErrorIs(t, s.RunNow(context.Background(), "slow"), ErrJobAlreadyRunning)
	close(release)
	require.NoError(t, <-done)

	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_FiresOnSchedule(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	fired := make(chan struct{}, 1)
	require.NoError(t, s.Register("tick", "@every 1s", func(context.Context) error {
		select {
		case fired <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire")
	}
	require.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))
	started := make(chan struct{}, 1)
	require.NoError(t, s.Register("blocking", "@every 1s", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return ctx.Err()
	}))

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

type recordingObserver struct {
	mu   sync.Mutex
	runs map[string]error
}

func (o *recordingObserver) JobFinished(_ context.Context, name string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs[name] = err
}

func TestScheduler_NotifiesObserver(t *testing.T) {
	obs := &recordingObserver{runs: map[string]error{}}
	s := New(Config{Observer: obs}, zaptest.NewLogger(t))
	boom := errors.New("boom")
	require.NoError(t, s.Register("digest", "@every 1h", func(context.Context) error { return boom }))

	_ = s.RunNow(context.Background(), "digest")

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.ErrorIs(t, obs.runs["digest"], boom)
	require.NoError(t, s.Stop(context.Background()))
}
