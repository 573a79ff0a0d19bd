package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skyflip/internal/config"
	"skyflip/internal/domain/entity"
	"skyflip/internal/domain/service/policy"
	"skyflip/internal/gate"
	"skyflip/internal/metrics"
	"skyflip/pkg/logx"
)

const categoryAuction = "auction"

type Auction struct {
	executor Executor
	notifier Notifier
	display  Display
	skip     config.Skip
	gate     *gate.Gate
}

func NewAuction(
	executor Executor,
	notifier Notifier,
	display Display,
	skip config.Skip,
) *Auction {
	return &Auction{
		executor: executor,
		notifier: notifier,
		display:  display,
		skip:     skip,
		gate:     gate.New(categoryAuction),
	}
}

func (h *Auction) WithGateRetryDelay(delay time.Duration) *Auction {
	h.gate.WithRetryDelay(delay)
	return h
}

// Handle buys one auction flip. Execution is serialized through the auction
// gate; the outcome is reported via notifier and display whatever happens.
func (h *Auction) Handle(ctx context.Context, flip entity.AuctionFlipEvent) {
	log := logger(ctx).With(
		slog.String(logx.FieldCategory, categoryAuction),
		slog.String(logx.FieldItemName, flip.ItemName),
		slog.String(logx.FieldUUID, flip.UUID),
	)

	log.Info("auction flip received",
		slog.Int64("starting-bid", flip.StartingBid),
		slog.Int64(logx.FieldProfit, flip.Profit),
		slog.String(logx.FieldFinder, flip.Finder),
		slog.Bool("bin", flip.IsBin),
	)

	h.display.Status(
		"§7━━━━━━━━━━━━━━━━━━━━━━━━━━━━",
		fmt.Sprintf("§eAUCTION FLIP §7- §e%s", flip.ItemName),
		fmt.Sprintf("§7Price: §6%d coins", flip.StartingBid),
		fmt.Sprintf("§7Profit: §a%+d coins", flip.Profit),
		"§7━━━━━━━━━━━━━━━━━━━━━━━━━━━━",
	)

	skip, reason := policy.ShouldSkipConfirmation(flip, h.skip)
	if skip {
		log.Info("skipping manual confirmation", slog.String("reason", reason))
	}

	ok, err := h.gate.Execute(ctx, flip.ItemName, func(ctx context.Context) bool {
		return h.executor.BuyAuctionItem(ctx, flip.UUID, skip)
	})

	switch {
	case err != nil:
		log.Error("auction purchase aborted", logx.Error(err))
		h.display.Status(fmt.Sprintf("§cError: %v", err))
		h.notifier.SendError(ctx, fmt.Sprintf("auction %s (%s): %v", flip.ItemName, flip.UUID, err))
		metrics.ActionsExecuted.WithLabelValues(categoryAuction, metrics.OutcomeError).Inc()
	case !ok:
		log.Error("failed to purchase auction")
		h.display.Status("§cFailed to purchase auction")
		h.notifier.SendError(ctx, fmt.Sprintf("failed to purchase auction %s (%s)", flip.ItemName, flip.UUID))
		metrics.ActionsExecuted.WithLabelValues(categoryAuction, metrics.OutcomeFailure).Inc()
	default:
		log.Info("auction purchased")
		h.display.Status("§aSuccessfully purchased auction!")
		h.notifier.SendAuctionPurchased(ctx, flip)
		metrics.ActionsExecuted.WithLabelValues(categoryAuction, metrics.OutcomeSuccess).Inc()
	}
}
