package scheduler

import "errors"

var (
	// ErrInvalidConfig is returned when a cron expression cannot be parsed
	ErrInvalidConfig = errors.New("invalid scheduler configuration")

	// ErrJobNotFound is returned when a job name is not registered
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when a job name is registered twice
	ErrDuplicateJob = errors.New("job already registered")

	// ErrJobAlreadyRunning is returned by RunNow while the same job is executing
	ErrJobAlreadyRunning = errors.New("job already running")
)
