package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"skyflip/internal/domain/entity"
	"skyflip/internal/gate"
	"skyflip/internal/metrics"
	"skyflip/pkg/logx"
)

const categoryBazaar = "bazaar"

// Bazaar places recommended orders immediately: unlike auctions there is no
// confirmation step to skip.
type Bazaar struct {
	executor Executor
	notifier Notifier
	display  Display
	gate     *gate.Gate
}

func NewBazaar(
	executor Executor,
	notifier Notifier,
	display Display,
) *Bazaar {
	return &Bazaar{
		executor: executor,
		notifier: notifier,
		display:  display,
		gate:     gate.New(categoryBazaar),
	}
}

func (h *Bazaar) WithGateRetryDelay(delay time.Duration) *Bazaar {
	h.gate.WithRetryDelay(delay)
	return h
}

func (h *Bazaar) Handle(ctx context.Context, order entity.BazaarOrderRequest) {
	log := logger(ctx).With(
		slog.String(logx.FieldCategory, categoryBazaar),
		slog.String(logx.FieldItemName, order.ItemName),
	)

	log.Info("bazaar order received",
		slog.Int("amount", order.Amount),
		slog.Float64("price-per-unit", order.PricePerUnit),
		slog.Float64("total-price", order.TotalPrice),
		slog.String("side", order.Side()),
	)

	h.display.Status(
		"§7━━━━━━━━━━━━━━━━━━━━━━━━━━━━",
		fmt.Sprintf("§e%s ORDER §7- §e%s", order.Side(), order.ItemName),
		fmt.Sprintf("§7Amount: §a%dx", order.Amount),
		fmt.Sprintf("§7Price/unit: §6%d coins", int(order.PricePerUnit)),
		fmt.Sprintf("§7Total: §6%d coins", int(order.TotalPrice)),
		"§7━━━━━━━━━━━━━━━━━━━━━━━━━━━━",
	)

	ok, err := h.gate.Execute(ctx, order.ItemName, func(ctx context.Context) bool {
		return h.executor.PlaceBazaarOrder(ctx, order.ItemName, order.Amount, order.PricePerUnit, order.IsBuyOrder)
	})

	side := lo.Ternary(order.IsBuyOrder, "buy order", "sell offer")

	switch {
	case err != nil:
		log.Error("bazaar order aborted", logx.Error(err))
		h.display.Status(fmt.Sprintf("§cError: %v", err))
		h.notifier.SendError(ctx, fmt.Sprintf("bazaar %s for %s: %v", side, order.ItemName, err))
		metrics.ActionsExecuted.WithLabelValues(categoryBazaar, metrics.OutcomeError).Inc()
	case !ok:
		log.Error("failed to place bazaar order")
		h.display.Status("§cFailed to place bazaar order")
		h.notifier.SendError(ctx, fmt.Sprintf("failed to place bazaar %s for %s", side, order.ItemName))
		metrics.ActionsExecuted.WithLabelValues(categoryBazaar, metrics.OutcomeFailure).Inc()
	default:
		log.Info("bazaar order placed")
		h.display.Status("§aSuccessfully placed bazaar order!")
		h.notifier.SendBazaarOrderPlaced(ctx, order)
		metrics.ActionsExecuted.WithLabelValues(categoryBazaar, metrics.OutcomeSuccess).Inc()
	}
}
