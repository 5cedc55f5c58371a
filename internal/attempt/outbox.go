package attempt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrQueued reports that a submission failed and the attempt was stored for
// replay.
var ErrQueued = errors.New("attempt: queued for retry")

const DefaultRetryInterval = 10 * time.Second

// Outbox submits attempts and keeps the ones that fail until a later flush
// succeeds. Safe for concurrent use.
type Outbox struct {
	store    Store
	sub      Submitter
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	kick chan struct{}
}

type OutboxOption func(*Outbox)

func WithRetryInterval(d time.Duration) OutboxOption {
	return func(o *Outbox) {
		if d > 0 {
			o.interval = d
		}
	}
}

func WithOutboxLogger(l *slog.Logger) OutboxOption {
	return func(o *Outbox) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewOutbox(store Store, sub Submitter, opts ...OutboxOption) *Outbox {
	o := &Outbox{
		store:    store,
		sub:      sub,
		interval: DefaultRetryInterval,
		logger:   slog.Default(),
		kick:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit sends a directly. On failure it is stored and ErrQueued is returned
// wrapping the delivery error.
func (o *Outbox) Submit(ctx context.Context, a Attempt) (Receipt, error) {
	r, err := o.sub.Submit(ctx, a)
	if err == nil {
		return r, nil
	}
	if perr := o.store.Put(ctx, a); perr != nil {
		return Receipt{}, fmt.Errorf("store attempt %s: %w", a.ClientID, perr)
	}
	o.logger.WarnContext(ctx, "attempt queued", "client_id", a.ClientID, "err", err)
	return Receipt{}, fmt.Errorf("%w: %w", ErrQueued, err)
}

// Flush replays queued attempts oldest first. An entry is deleted only after
// the server confirms it; the first failure stops the pass.
func (o *Outbox) Flush(ctx context.Context) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	pending, err := o.store.List(ctx)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, a := range pending {
		r, err := o.sub.Submit(ctx, a)
		if err != nil {
			return sent, fmt.Errorf("replay %s: %w", a.ClientID, err)
		}
		if err := o.store.Delete(ctx, a.ClientID); err != nil && !errors.Is(err, ErrNotFound) {
			return sent, err
		}
		sent++
		o.logger.DebugContext(ctx, "attempt replayed", "client_id", a.ClientID, "score", r.Score)
	}
	return sent, nil
}

// Pending counts queued attempts.
func (o *Outbox) Pending(ctx context.Context) (int, error) {
	list, err := o.store.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Reconnect asks Run to flush now.
func (o *Outbox) Reconnect() {
	select {
	case o.kick <- struct{}{}:
	default:
	}
}

// Run flushes on every interval and on Reconnect until ctx is done.
func (o *Outbox) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-o.kick:
		}
		n, err := o.Flush(ctx)
		if err != nil {
			o.logger.WarnContext(ctx, "outbox flush failed", "sent", n, "err", err)
			continue
		}
		if n > 0 {
			o.logger.InfoContext(ctx, "outbox flushed", "sent", n)
		}
	}
}
