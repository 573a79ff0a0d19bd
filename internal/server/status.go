package server

import (
	"net/http"
	"time"

	"skyflip/internal/dispatcher"
	"skyflip/pkg/httpx/reply"
)

type statusResponse struct {
	IngameName    string              `json:"ingameName"`
	FeedConnected bool                `json:"feedConnected"`
	UptimeSeconds int64               `json:"uptimeSeconds"`
	Messages      dispatcher.Snapshot `json:"messages"`
}

// configResponse mirrors the runtime configuration minus secrets: the
// webhook URL carries its auth token in the path and never leaves the agent.
type configResponse struct {
	IngameName        string `json:"ingameName"`
	WebsocketURL      string `json:"websocketUrl"`
	WebhookConfigured bool   `json:"webhookConfigured"`
	FlipActionDelay   string `json:"flipActionDelay"`
	GateRetryDelay    string `json:"gateRetryDelay"`
	EnableAHFlips     bool   `json:"enableAhFlips"`
	EnableBazaarFlips bool   `json:"enableBazaarFlips"`
	UseCoflChat       bool   `json:"useCoflChat"`
	SkipAlways        bool   `json:"skipAlways"`
	SkipMinProfit     int64  `json:"skipMinProfit"`
	SkipUserFinder    bool   `json:"skipUserFinder"`
	SkipSkins         bool   `json:"skipSkins"`
	SkipProfitPercent int    `json:"skipProfitPercentage"`
	SkipMinPrice      int64  `json:"skipMinPrice"`
}

func (s Server) getV1Status(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, statusResponse{
		IngameName:    s.cfg.IngameName,
		FeedConnected: s.feed.IsConnected(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Messages:      s.status.Snapshot(),
	})

	return nil
}

func (s Server) getV1Config(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	reply.JSON(ctx, w, http.StatusOK, configResponse{
		IngameName:        s.cfg.IngameName,
		WebsocketURL:      s.cfg.WebsocketURL,
		WebhookConfigured: s.cfg.WebhookURL != "",
		FlipActionDelay:   s.cfg.FlipActionDelay.String(),
		GateRetryDelay:    s.cfg.GateRetryDelay.String(),
		EnableAHFlips:     s.cfg.EnableAHFlips,
		EnableBazaarFlips: s.cfg.EnableBazaarFlips,
		UseCoflChat:       s.cfg.UseCoflChat,
		SkipAlways:        s.cfg.Skip.Always,
		SkipMinProfit:     s.cfg.Skip.MinProfit,
		SkipUserFinder:    s.cfg.Skip.UserFinder,
		SkipSkins:         s.cfg.Skip.Skins,
		SkipProfitPercent: s.cfg.Skip.ProfitPercentage,
		SkipMinPrice:      s.cfg.Skip.MinPrice,
	})

	return nil
}
