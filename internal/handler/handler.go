// Package handler runs a parsed flip through policy, the category gate and
// the executor, then reports the outcome.
package handler

import (
	"context"

	"skyflip/internal/domain/entity"
	"skyflip/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Executor is the in-world collaborator. Both calls are synchronous and
// always return a definite boolean; they never error.
type Executor interface {
	BuyAuctionItem(ctx context.Context, uuid string, skipConfirmation bool) bool
	PlaceBazaarOrder(ctx context.Context, itemName string, amount int, pricePerUnit float64, isBuyOrder bool) bool
}

// Notifier delivers structured outcomes out-of-band. Best-effort: failures
// are the notifier's problem, never the handler's.
type Notifier interface {
	SendAuctionPurchased(ctx context.Context, flip entity.AuctionFlipEvent)
	SendBazaarOrderPlaced(ctx context.Context, order entity.BazaarOrderRequest)
	SendError(ctx context.Context, message string)
}

// Display prints user-visible status lines, independent of the structured log.
type Display interface {
	Status(lines ...string)
}
