package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fantasy-points/internal/platform/logging"
	"github.com/riskibarqy/fantasy-points/internal/platform/resilience"
	"github.com/robfig/cron/v3"
)

var ErrUnknownJob = errors.New("unknown scheduled job")

var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSpec parses a cron expression with an optional leading seconds field.
func ParseSpec(spec string) (cron.Schedule, error) {
	return specParser.Parse(spec)
}

// Job is one entry of the declarative schedule.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

type RejectionRecorder interface {
	ObserveCircuitRejected(job string)
}

type noopRejections struct{}

func (noopRejections) ObserveCircuitRejected(string) {}

type Options struct {
	Timeout    time.Duration
	Circuit    resilience.CircuitBreakerConfig
	Clock      clockwork.Clock
	Logger     *logging.Logger
	Rejections RejectionRecorder
}

type entry struct {
	job     Job
	id      cron.EntryID
	breaker *resilience.CircuitBreaker
}

// Scheduler runs registered jobs on their cron specs. Each job has its own circuit
// breaker, and overlapping runs of the same job are skipped.
type Scheduler struct {
	cron       *cron.Cron
	timeout    time.Duration
	circuit    resilience.CircuitBreakerConfig
	clock      clockwork.Clock
	logger     *logging.Logger
	rejections RejectionRecorder

	mu      sync.Mutex
	entries map[string]*entry
	baseCtx context.Context
	cancel  context.CancelFunc
}

func New(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Rejections == nil {
		opts.Rejections = noopRejections{}
	}

	cronLogger := cronLogAdapter{logger: opts.Logger}
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(specParser),
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		timeout:    opts.Timeout,
		circuit:    opts.Circuit,
		clock:      opts.Clock,
		logger:     opts.Logger,
		rejections: opts.Rejections,
		entries:    make(map[string]*entry),
		baseCtx:    baseCtx,
		cancel:     cancel,
	}
}

// Register adds jobs to the schedule. Names must be unique.
func (s *Scheduler) Register(jobs ...Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range jobs {
		if job.Name == "" || job.Run == nil {
			return fmt.Errorf("register job %q: name and run func are required", job.Name)
		}
		if _, exists := s.entries[job.Name]; exists {
			return fmt.Errorf("register job %q: already registered", job.Name)
		}

		item := &entry{
			job:     job,
			breaker: resilience.NewCircuitBreaker(s.circuit, s.clock),
		}
		id, err := s.cron.AddFunc(job.Spec, func() {
			_ = s.execute(s.baseCtx, item)
		})
		if err != nil {
			return fmt.Errorf("register job %q spec %q: %w", job.Name, job.Spec, err)
		}
		item.id = id
		s.entries[job.Name] = item
	}
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info("scheduler starting", "jobs", len(s.entries))
	s.cron.Start()
}

// Stop halts new runs, cancels running ones and waits for them until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow executes a registered job immediately through its circuit breaker.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	item, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.execute(ctx, item)
}

// CircuitState reports the breaker state of a registered job.
func (s *Scheduler) CircuitState(name string) (resilience.CircuitState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.entries[name]
	if !ok {
		return "", false
	}
	return item.breaker.State(), true
}

// NextRun returns the next activation time of a registered job once the scheduler
// has started.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	s.mu.Lock()
	item, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	next := s.cron.Entry(item.id).Next
	return next, !next.IsZero()
}

func (s *Scheduler) execute(ctx context.Context, item *entry) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	startedAt := s.clock.Now()
	err := item.breaker.Execute(ctx, item.job.Run)
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		s.rejections.ObserveCircuitRejected(item.job.Name)
		s.logger.WarnContext(ctx, "scheduled run skipped", "job", item.job.Name, "reason", "circuit open")
	case err != nil:
		s.logger.ErrorContext(ctx, "scheduled run failed",
			"job", item.job.Name,
			"duration", s.clock.Since(startedAt),
			"circuit", item.breaker.State(),
			"error", err,
		)
	default:
		s.logger.InfoContext(ctx, "scheduled run finished", "job", item.job.Name, "duration", s.clock.Since(startedAt))
	}
	return err
}

// cronLogAdapter routes cron's internal logging to the process logger.
type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
