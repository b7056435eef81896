package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"roomgrid/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Poller refreshes the store on a cron schedule and runs housekeeping jobs
// on the same scheduler.
type Poller struct {
	cron    *cron.Cron
	store   Refresher
	spec    string
	timeout time.Duration
	log     *logger.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	refresh cron.EntryID
}

// NewPoller accepts standard five-field specs and descriptors such as
// "@every 1m". Each refresh is bounded by timeout.
func NewPoller(spec string, timeout time.Duration, store Refresher, log *logger.Logger) *Poller {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With("poller")
	cl := cronLogger{log: log}

	return &Poller{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		store:   store,
		spec:    spec,
		timeout: timeout,
		log:     log,
		ctx:     context.Background(),
	}
}

// AddJob schedules fn under name. Jobs receive the context given to Start.
func (p *Poller) AddJob(spec, name string, fn func(ctx context.Context)) error {
	_, err := p.cron.AddFunc(spec, func() {
		p.log.Debug("Running scheduled job", "job", name)
		fn(p.context())
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	id, err := p.cron.AddFunc(p.spec, func() { p.RunRefresh(p.context()) })
	if err != nil {
		p.cancel()
		return fmt.Errorf("schedule refresh %q: %w", p.spec, err)
	}

	p.mu.Lock()
	p.refresh = id
	p.mu.Unlock()

	p.cron.Start()
	p.log.Info("Snapshot poller started", "schedule", p.spec, "next_run", p.NextRefresh())
	return nil
}

// Stop waits for running jobs to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	<-p.cron.Stop().Done()
	p.log.Info("Snapshot poller stopped")
}

// RunRefresh performs one bounded refresh. Failures are logged; the store
// keeps serving its previous snapshot.
func (p *Poller) RunRefresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.store.RefreshFrom(ctx, SourcePoller); err != nil {
		p.log.Warn("Scheduled refresh failed", "error", err)
	}
}

// NextRefresh is zero until Start has scheduled the refresh.
func (p *Poller) NextRefresh() time.Time {
	p.mu.Lock()
	id := p.refresh
	p.mu.Unlock()
	if id == 0 {
		return time.Time{}
	}
	entry := p.cron.Entry(id)
	if entry.Next.IsZero() && entry.Schedule != nil {
		return entry.Schedule.Next(time.Now())
	}
	return entry.Next
}

func (p *Poller) context() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx
}

// cronLogger routes the scheduler's own logging to slog.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
