// Package dispatcher routes decoded feed messages to their handlers. It is
// the containment boundary: whatever a single message does, the next one
// must still be processed.
package dispatcher

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"

	"skyflip/internal/config"
	"skyflip/internal/domain/entity"
	"skyflip/internal/feed"
	"skyflip/internal/metrics"
	"skyflip/pkg/contextx"
	"skyflip/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Message types the feed currently sends. Bazaar recommendations arrived
// under three different names over the protocol's history.
const (
	typeFlip            = "flip"
	typeBazaarFlip      = "bazaarFlip"
	typeBzRecommend     = "bzRecommend"
	typePlaceOrder      = "placeOrder"
	typeChatMessage     = "chatMessage"
	typeWriteToChat     = "writeToChat"
	typeGetInventory    = "getInventory"
	typePrivacySettings = "privacySettings"
)

type AuctionHandler interface {
	Handle(ctx context.Context, flip entity.AuctionFlipEvent)
}

type BazaarHandler interface {
	Handle(ctx context.Context, order entity.BazaarOrderRequest)
}

type Display interface {
	Print(lines ...string)
}

type Dispatcher struct {
	cfg     config.Config
	auction AuctionHandler
	bazaar  BazaarHandler
	display Display

	wg sync.WaitGroup

	received     atomic.Int64
	auctionFlips atomic.Int64
	bazaarOrders atomic.Int64
	chatLines    atomic.Int64
	dropped      atomic.Int64
}

func New(
	cfg config.Config,
	auction AuctionHandler,
	bazaar BazaarHandler,
	display Display,
) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		auction: auction,
		bazaar:  bazaar,
		display: display,
	}
}

// OnMessage routes one feed message. Flips run on their own goroutines so
// the read loop keeps going and the two categories can overlap; ordering
// within a category is the gate's job, not ours.
func (d *Dispatcher) OnMessage(ctx context.Context, msg feed.Message) {
	d.received.Add(1)
	metrics.MessagesReceived.WithLabelValues(msg.Type).Inc()

	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldTraceID, xid.New().String()),
		slog.String(logx.FieldMessageType, msg.Type),
	))

	log := logger(ctx)
	log.Debug("feed message received")

	switch msg.Type {
	case typeFlip:
		if !d.cfg.EnableAHFlips {
			log.Info("auction flips disabled, ignoring")
			return
		}

		flip, err := feed.ParseAuctionFlip(msg.Data)
		if err != nil {
			d.drop(ctx, "malformed", err)
			return
		}

		d.auctionFlips.Add(1)
		d.spawn(ctx, func(ctx context.Context) {
			d.auction.Handle(ctx, flip)
		})

	case typeBazaarFlip, typeBzRecommend, typePlaceOrder:
		if !d.cfg.EnableBazaarFlips {
			log.Info("bazaar flips disabled, ignoring")
			return
		}

		order, err := feed.ParseBazaarOrder(msg.Data)
		if err != nil {
			d.drop(ctx, "malformed", err)
			return
		}

		d.bazaarOrders.Add(1)
		d.spawn(ctx, func(ctx context.Context) {
			d.bazaar.Handle(ctx, order)
		})

	case typeChatMessage, typeWriteToChat:
		if !d.cfg.UseCoflChat {
			log.Debug("chat forwarding disabled, ignoring")
			return
		}

		lines, err := feed.ParseChatLines(msg.Data)
		if err != nil {
			d.drop(ctx, "malformed", err)
			return
		}

		d.chatLines.Add(int64(len(lines)))
		d.display.Print(lines...)

	case typeGetInventory:
		log.Info("inventory request received")

	case typePrivacySettings:
		log.Info("privacy settings updated")

	default:
		d.drop(ctx, "unknown-type", nil)
	}
}

// Wait blocks until all in-flight handlers have finished. Called on
// shutdown after the feed stops delivering.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Snapshot is a point-in-time view of the message counters for the status API.
type Snapshot struct {
	Received     int64 `json:"received"`
	AuctionFlips int64 `json:"auctionFlips"`
	BazaarOrders int64 `json:"bazaarOrders"`
	ChatLines    int64 `json:"chatLines"`
	Dropped      int64 `json:"dropped"`
}

func (d *Dispatcher) Snapshot() Snapshot {
	return Snapshot{
		Received:     d.received.Load(),
		AuctionFlips: d.auctionFlips.Load(),
		BazaarOrders: d.bazaarOrders.Load(),
		ChatLines:    d.chatLines.Load(),
		Dropped:      d.dropped.Load(),
	}
}

func (d *Dispatcher) drop(ctx context.Context, reason string, err error) {
	d.dropped.Add(1)
	metrics.MessagesDropped.WithLabelValues(reason).Inc()

	if err != nil {
		logger(ctx).Warn("message dropped", slog.String("reason", reason), logx.Error(err))
		return
	}

	logger(ctx).Warn("message dropped", slog.String("reason", reason))
}

func (d *Dispatcher) spawn(ctx context.Context, fn func(context.Context)) {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				logger(ctx).Error("panic in handler",
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)
			}
		}()

		fn(ctx)
	}()
}
