// Package gate serializes in-world actions per flip category. Flips are rare
// and high-value, so a request that hits a held gate is requeued after a
// fixed backoff instead of being rejected.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"skyflip/internal/metrics"
	"skyflip/pkg/contextx"
	"skyflip/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const DefaultRetryDelay = time.Second

type Gate struct {
	category   string
	retryDelay time.Duration
	busy       atomic.Bool
}

func New(category string) *Gate {
	return &Gate{
		category:   category,
		retryDelay: DefaultRetryDelay,
	}
}

func (g *Gate) WithRetryDelay(delay time.Duration) *Gate {
	if delay > 0 {
		g.retryDelay = delay
	}
	return g
}

func (g *Gate) Category() string {
	return g.category
}

// Execute runs action while holding the category's exclusive slot. On
// contention the same request waits out the backoff and tries again; it is
// never dropped. The slot is released on every exit path, including panics
// inside the action, which are converted to a failure instead of crossing
// the trust boundary.
func (g *Gate) Execute(ctx context.Context, item string, action func(context.Context) bool) (bool, error) {
	for !g.busy.CompareAndSwap(false, true) {
		logger(ctx).Warn("gate busy, requeueing",
			slog.String(logx.FieldCategory, g.category),
			slog.String(logx.FieldItemName, item),
			slog.Duration("retry-in", g.retryDelay),
		)
		metrics.GateContention.WithLabelValues(g.category).Inc()

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(g.retryDelay):
		}
	}
	defer g.busy.Store(false)

	return g.run(ctx, action)
}

// Busy reports whether an action currently holds the gate.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}

func (g *Gate) run(ctx context.Context, action func(context.Context) bool) (ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			err = fmt.Errorf("action panic: %v", rec)
		}
	}()

	return action(ctx), nil
}
