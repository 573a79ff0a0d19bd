// Package notifier delivers outcome reports to a Discord-compatible webhook.
// Delivery is strictly best-effort: every failure is logged and counted, none
// is ever surfaced to the caller.
package notifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"skyflip/internal/domain/entity"
	"skyflip/internal/metrics"
	"skyflip/pkg/contextx"
	"skyflip/pkg/httpx"
	"skyflip/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	colorGreen  = 0x00FF00
	colorBlue   = 0x0000FF
	colorGold   = 0xFFD700
	colorRed    = 0xFF0000
	username    = "Skyflip"
	sendTimeout = 10 * time.Second
)

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp"`
}

type payload struct {
	Username string  `json:"username"`
	Embeds   []embed `json:"embeds"`
}

// Webhook posts embeds to a single webhook URL. An empty URL disables
// delivery entirely; every Send* method becomes a no-op.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url: url,
		client: &http.Client{
			Timeout: sendTimeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			),
		},
	}
}

func (w *Webhook) SendInitialized(ctx context.Context, ingameName string) {
	w.send(ctx, embed{
		Title:       "Initialized",
		Description: fmt.Sprintf("Agent started for **%s**", ingameName),
		Color:       colorGreen,
	})
}

func (w *Webhook) SendAuctionPurchased(ctx context.Context, flip entity.AuctionFlipEvent) {
	w.send(ctx, embed{
		Title: "Auction Purchased",
		Color: colorGold,
		Fields: []embedField{
			{Name: "Item", Value: flip.ItemName, Inline: true},
			{Name: "Price", Value: fmt.Sprintf("%d coins", flip.StartingBid), Inline: true},
			{Name: "Profit", Value: fmt.Sprintf("%+d coins", flip.Profit), Inline: true},
			{Name: "Finder", Value: flip.Finder, Inline: true},
			{Name: "UUID", Value: flip.UUID},
		},
	})
}

func (w *Webhook) SendBazaarOrderPlaced(ctx context.Context, order entity.BazaarOrderRequest) {
	w.send(ctx, embed{
		Title: "Bazaar Order Placed",
		Color: lo.Ternary(order.IsBuyOrder, colorGreen, colorBlue),
		Fields: []embedField{
			{Name: "Item", Value: order.ItemName, Inline: true},
			{Name: "Side", Value: order.Side(), Inline: true},
			{Name: "Amount", Value: fmt.Sprintf("%dx", order.Amount), Inline: true},
			{Name: "Price/unit", Value: fmt.Sprintf("%.1f coins", order.PricePerUnit), Inline: true},
			{Name: "Total", Value: fmt.Sprintf("%.1f coins", order.TotalPrice), Inline: true},
		},
	})
}

func (w *Webhook) SendError(ctx context.Context, message string) {
	w.send(ctx, embed{
		Title:       "Error",
		Description: message,
		Color:       colorRed,
	})
}

func (w *Webhook) send(ctx context.Context, e embed) {
	if w.url == "" {
		return
	}

	e.Timestamp = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload{
		Username: username,
		Embeds:   []embed{e},
	})
	if err != nil {
		w.fail(ctx, fmt.Errorf("json.Marshal: %w", err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		w.fail(ctx, fmt.Errorf("http.NewRequestWithContext: %w", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.fail(ctx, fmt.Errorf("client.Do: %w", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		w.fail(ctx, fmt.Errorf("webhook returned status %d", resp.StatusCode))
	}
}

func (w *Webhook) fail(ctx context.Context, err error) {
	logger(ctx).Error("webhook delivery failed", logx.Error(err))
	metrics.NotificationFailures.Inc()
}
