package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/draft-league-board/internal/domain/standings"
	"github.com/riskibarqy/draft-league-board/internal/platform/logging"
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultPollMaxInFlight = 4
	pollDrainTimeout       = 5 * time.Second
)

type PollerConfig struct {
	Interval     time.Duration
	MaxInFlight  int
	FetchTimeout time.Duration
}

// Poller fetches the standings document on a fixed interval and feeds the store.
// Ticks never wait for each other; each one gets a sequence number and the
// store keeps the newest successful result.
type Poller struct {
	source     standings.Source
	normalizer *Normalizer
	store      *TableStore
	logger     *logging.Logger
	cfg        PollerConfig
	pool       *ants.Pool
	seq        atomic.Uint64
}

func NewPoller(
	source standings.Source,
	normalizer *Normalizer,
	store *TableStore,
	logger *logging.Logger,
	cfg PollerConfig,
) (*Poller, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: standings source is required", ErrInvalidInput)
	}
	if normalizer == nil {
		normalizer = NewNormalizer()
	}
	if store == nil {
		return nil, fmt.Errorf("%w: table store is required", ErrInvalidInput)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.MaxInFlight < 1 {
		cfg.MaxInFlight = defaultPollMaxInFlight
	}
	if cfg.FetchTimeout < 0 {
		cfg.FetchTimeout = 0
	}

	logger = logger.Named("poller")
	pool, err := ants.NewPool(cfg.MaxInFlight,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(v any) {
			logger.Error("poll tick panicked", "panic", fmt.Sprint(v))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create poll worker pool: %w", err)
	}

	return &Poller{
		source:     source,
		normalizer: normalizer,
		store:      store,
		logger:     logger,
		cfg:        cfg,
		pool:       pool,
	}, nil
}

// Run polls once immediately, then on every interval until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started",
		"interval", p.cfg.Interval.String(),
		"max_in_flight", p.cfg.MaxInFlight,
		"fetch_timeout", p.cfg.FetchTimeout.String(),
	)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.dispatch(ctx)
	for {
		select {
		case <-ctx.Done():
			if err := p.pool.ReleaseTimeout(pollDrainTimeout); err != nil {
				p.logger.Warn("poll workers did not drain in time", "error", err)
			}
			p.logger.Info("poller stopped")
			return nil
		case <-ticker.C:
			p.dispatch(ctx)
		}
	}
}

// dispatch hands one tick to the pool without blocking the ticker.
func (p *Poller) dispatch(ctx context.Context) {
	seq := p.seq.Add(1)
	err := p.pool.Submit(func() {
		_ = p.poll(ctx, seq)
	})
	switch {
	case err == nil:
	case errors.Is(err, ants.ErrPoolOverload):
		p.logger.Warn("poll tick skipped, too many requests in flight",
			"seq", seq,
			"in_flight", p.pool.Running(),
		)
	default:
		p.logger.Error("submit poll tick", "seq", seq, "error", err)
	}
}

// PollOnce runs a single synchronous tick.
func (p *Poller) PollOnce(ctx context.Context) error {
	return p.poll(ctx, p.seq.Add(1))
}

func (p *Poller) poll(ctx context.Context, seq uint64) error {
	ctx, span := startRootSpan(ctx, "usecase.Poller.poll", attribute.Int64("poll.seq", int64(seq)))
	defer span.End()

	started := time.Now()
	fetchCtx := ctx
	if p.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.cfg.FetchTimeout)
		defer cancel()
	}

	raw, err := p.source.FetchTable(fetchCtx)
	if err != nil {
		err = fmt.Errorf("%w: fetch standings: %w", ErrDependencyUnavailable, err)
		if ctx.Err() != nil {
			// Shutting down; the last signal stays as it was.
			p.logger.DebugContext(ctx, "poll abandoned on shutdown", "seq", seq, "error", err)
			return err
		}
		p.fail(ctx, seq, err)
		recordSpanError(span, err)
		return err
	}

	table, err := p.normalizer.Normalize(raw)
	if err != nil {
		p.fail(ctx, seq, err)
		recordSpanError(span, err)
		return err
	}

	if !p.store.Install(seq, table) {
		p.logger.DebugContext(ctx, "discarded superseded standings", "seq", seq)
		return nil
	}
	span.SetAttributes(attribute.Int("standings.entries", len(table.Entries)))
	p.logger.DebugContext(ctx, "standings installed",
		"seq", seq,
		"league", table.Name,
		"entries", len(table.Entries),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return nil
}

func (p *Poller) fail(ctx context.Context, seq uint64, err error) {
	if !p.store.Fail(seq, err) {
		return
	}
	p.logger.WarnContext(ctx, "standings poll failed", "seq", seq, "error", err)
}
