// Package game stands in for the in-world executor. The real agent drives a
// Minecraft client through auction house and bazaar menus; this build logs
// every step it would take and honors the configured action delay so the
// pipeline's timing behavior stays realistic.
package game

import (
	"context"
	"log/slog"
	"time"

	"skyflip/pkg/contextx"
	"skyflip/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Client struct {
	ingameName  string
	actionDelay time.Duration
}

func NewClient(ingameName string, actionDelay time.Duration) *Client {
	return &Client{
		ingameName:  ingameName,
		actionDelay: actionDelay,
	}
}

// BuyAuctionItem opens the auction by uuid and clicks through the purchase,
// either directly (skip) or via the confirm screen. Never errors: a definite
// boolean is the contract with the handler.
func (c *Client) BuyAuctionItem(ctx context.Context, uuid string, skipConfirmation bool) bool {
	log := logger(ctx).With(slog.String(logx.FieldUUID, uuid))

	log.Info("would execute /viewauction", slog.Bool("skip-confirmation", skipConfirmation))

	if skipConfirmation {
		log.Info("would click direct purchase")
	} else {
		log.Info("would click confirm purchase")
	}

	// Menu interaction takes real time even on a good connection; forcing
	// the configured delay keeps gate contention behavior honest.
	time.Sleep(c.actionDelay)

	return true
}

// PlaceBazaarOrder walks the /bz menus to create a buy order or sell offer.
func (c *Client) PlaceBazaarOrder(ctx context.Context, itemName string, amount int, pricePerUnit float64, isBuyOrder bool) bool {
	log := logger(ctx).With(slog.String(logx.FieldItemName, itemName))

	log.Info("would execute /bz", slog.String("query", itemName))

	if isBuyOrder {
		log.Info("would click create buy order")
	} else {
		log.Info("would click create sell offer")
	}

	log.Info("would enter order parameters",
		slog.Int("amount", amount),
		slog.Float64("price-per-unit", pricePerUnit),
	)
	log.Info("would confirm order")

	time.Sleep(c.actionDelay)

	return true
}
