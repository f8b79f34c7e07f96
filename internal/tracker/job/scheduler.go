package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type JobFunc func(ctx context.Context) error

// Scheduler runs registered jobs on fixed intervals until stopped.
type Scheduler struct {
	jobs    map[string]*ScheduledJob
	running bool
	mu      sync.Mutex
	logger  *zap.Logger
}

type ScheduledJob struct {
	name     string
	interval time.Duration
	fn       JobFunc
	stopCh   chan struct{}
	done     sync.WaitGroup
	cancel   context.CancelFunc
	once     bool
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		jobs:   make(map[string]*ScheduledJob),
		logger: logger,
	}
}

func (s *Scheduler) RegisterJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[name] = &ScheduledJob{
		name:     name,
		interval: interval,
		fn:       fn,
		stopCh:   make(chan struct{}),
	}

	s.logger.Info("Registered job", zap.String("job", name), zap.Duration("interval", interval))
}

// RegisterOnceJob registers a job that runs a single time at startup.
func (s *Scheduler) RegisterOnceJob(name string, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[name] = &ScheduledJob{
		name:   name,
		fn:     fn,
		stopCh: make(chan struct{}),
		once:   true,
	}

	s.logger.Info("Registered once job", zap.String("job", name))
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	for _, job := range s.jobs {
		j := job
		j.done.Add(1)

		go func() {
			defer j.done.Done()
			if j.once {
				s.runOnceJob(ctx, j)
			} else {
				s.runJob(ctx, j)
			}
		}()
	}
}

// Stop signals every job and waits for them, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false

	for _, job := range s.jobs {
		if job.cancel != nil {
			job.cancel()
		}
		close(job.stopCh)
	}
	s.mu.Unlock()

	s.logger.Warn("Stopping scheduler...")

	waitCh := make(chan struct{})
	go func() {
		for _, job := range s.jobs {
			job.done.Wait()
		}
		close(waitCh)
	}()

	select {
	case <-waitCh:
		s.logger.Info("All jobs stopped successfully")
	case <-ctx.Done():
		s.logger.Warn("Context deadline exceeded while waiting for jobs to stop")
	}
}

func (s *Scheduler) runOnceJob(ctx context.Context, job *ScheduledJob) {
	s.logger.Info("Running one-time job", zap.String("job", job.name))
	s.executeJob(ctx, job)
}

func (s *Scheduler) runJob(ctx context.Context, job *ScheduledJob) {
	s.logger.Info("Running job", zap.String("job", job.name))

	ticker := time.NewTicker(job.interval)
	defer ticker.Stop()

	// first run happens immediately, not after one interval
	s.executeJob(ctx, job)

	for {
		select {
		case <-ticker.C:
			s.executeJob(ctx, job)
		case <-job.stopCh:
			s.logger.Info("Stopping job", zap.String("job", job.name))
			return
		case <-ctx.Done():
			s.logger.Info("Context cancelled, stopping job", zap.String("job", job.name))
			return
		}
	}
}

func (s *Scheduler) executeJob(ctx context.Context, job *ScheduledJob) {
	jobCtx, cancel := context.WithCancel(ctx)
	if !job.once {
		// a periodic run must finish well before its next tick
		jobCtx, cancel = context.WithTimeout(ctx, job.interval)
	}
	job.cancel = cancel
	defer cancel()

	startTime := time.Now()

	if err := job.fn(jobCtx); err != nil {
		s.logger.Error("Job execution failed",
			zap.String("job", job.name),
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
	} else {
		s.logger.Debug("Job execution completed",
			zap.String("job", job.name),
			zap.Duration("duration", time.Since(startTime)))
	}
}
