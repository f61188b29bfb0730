package reward

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/progression"
)

// Result is delivered once per dispatched report.
type Result struct {
	Report progression.SessionReport
	Award  Award // Zero when Err is set
	Err    error
}

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	QueueSize  int           // Reports waiting for submission
	ResultSize int           // Results waiting for the consumer
	Timeout    time.Duration // Per report submission deadline
}

// DefaultDispatcherConfig returns sensible defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		QueueSize:  16,
		ResultSize: 16,
		Timeout:    5 * time.Second,
	}
}

// Dispatcher submits reports on a background goroutine. It implements
// progression.Reporter so the simulation can hand reports over without
// blocking its tick.
type Dispatcher struct {
	submitter Submitter
	config    DispatcherConfig
	logger    *log.Logger

	mu     sync.Mutex
	closed bool
	queue  chan progression.SessionReport

	results chan Result
	done    chan struct{}
}

// NewDispatcher creates a dispatcher and starts its worker.
func NewDispatcher(s Submitter, cfg DispatcherConfig, logger *log.Logger) *Dispatcher {
	def := DefaultDispatcherConfig()
	if cfg.QueueSize < 1 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.ResultSize < 1 {
		cfg.ResultSize = def.ResultSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = log.Default()
	}

	d := &Dispatcher{
		submitter: s,
		config:    cfg,
		logger:    logger,
		queue:     make(chan progression.SessionReport, cfg.QueueSize),
		results:   make(chan Result, cfg.ResultSize),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Report enqueues r and never blocks. Reports that cannot be queued are
// dropped with a warning.
func (d *Dispatcher) Report(r progression.SessionReport) {
	if err := d.Enqueue(r); err != nil {
		d.logger.Warn("session report dropped", "session", r.SessionID, "err", err)
	}
}

// Enqueue is Report with the queueing error exposed.
func (d *Dispatcher) Enqueue(r progression.SessionReport) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.queue <- r:
		return nil
	default:
		return ErrQueueFull
	}
}

// Results returns the channel of submission results. It is closed once
// the dispatcher has stopped and every queued report was processed.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Close stops accepting reports, waits for queued ones to be submitted
// and closes Results. Safe to call multiple times.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	defer close(d.results)

	for r := range d.queue {
		res := d.submit(r)
		select {
		case d.results <- res:
		default:
			d.logger.Warn("reward result dropped, consumer is behind", "session", r.SessionID, "xp", res.Award.XP)
		}
	}
}

func (d *Dispatcher) submit(r progression.SessionReport) Result {
	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	award, err := d.submitter.SubmitSession(ctx, r)
	if err != nil {
		d.logger.Warn("session submission failed, awarding nothing", "session", r.SessionID, "err", err)
		return Result{Report: r, Err: err}
	}
	d.logger.Debug("session submitted", "session", r.SessionID, "xp", award.XP)
	return Result{Report: r, Award: award}
}

var _ progression.Reporter = (*Dispatcher)(nil)
