// Package cofl owns the websocket connection to the flip feed. The pipeline
// behind the handler holds no transport state, so reconnect cycles here are
// invisible to it.
package cofl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/xid"

	"skyflip/internal/domain"
	"skyflip/internal/feed"
	"skyflip/internal/session"
	"skyflip/pkg/contextx"
	"skyflip/pkg/errcodes"
	"skyflip/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	defaultReconnectDelay = 5 * time.Second
	agentVersion          = "skyflip-1.0.0"
)

type MessageHandler interface {
	OnMessage(ctx context.Context, msg feed.Message)
}

type Client struct {
	websocketURL   string
	player         string
	sessions       *session.Store
	handler        MessageHandler
	reconnectDelay time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	connected atomic.Bool
}

func NewClient(
	websocketURL string,
	player string,
	sessions *session.Store,
	handler MessageHandler,
) *Client {
	return &Client{
		websocketURL:   websocketURL,
		player:         player,
		sessions:       sessions,
		handler:        handler,
		reconnectDelay: defaultReconnectDelay,
	}
}

func (c *Client) WithReconnectDelay(delay time.Duration) *Client {
	if delay > 0 {
		c.reconnectDelay = delay
	}
	return c
}

// Run keeps the feed connection alive until ctx is done. Every read failure
// tears the connection down and redials after a fixed delay; the session
// token survives reconnects through the store.
func (c *Client) Run(ctx context.Context) error {
	for {
		err := c.connectAndRead(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		logger(ctx).Warn("feed connection lost, reconnecting",
			logx.Error(err),
			slog.Duration("retry-in", c.reconnectDelay),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnectDelay):
		}
	}
}

func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// Send writes an outbound envelope; payload is JSON-encoded into the
// string-valued data field.
func (c *Client) Send(ctx context.Context, messageType string, payload any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil || !c.connected.Load() {
		return domain.NewError(errcodes.FeedNotConnected, "cannot send: feed not connected")
	}

	raw, err := feed.EncodeEnvelope(messageType, payload)
	if err != nil {
		return fmt.Errorf("feed.EncodeEnvelope: %w", err)
	}

	if err := conn.Write(ctx, websocket.MessageText, raw); err != nil {
		return fmt.Errorf("conn.Write: %w", err)
	}

	logger(ctx).Debug("feed message sent", slog.String(logx.FieldMessageType, messageType))

	return nil
}

func (c *Client) connectAndRead(ctx context.Context) error {
	dialURL, err := c.dialURL()
	if err != nil {
		return err
	}

	logger(ctx).Info("connecting to feed", slog.String(logx.FieldURL, c.websocketURL))

	conn, _, err := websocket.Dial(ctx, dialURL, nil)
	if err != nil {
		return fmt.Errorf("websocket.Dial: %w", err)
	}

	// Flip payloads can exceed the library's modest default read limit.
	conn.SetReadLimit(1 << 20)

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	c.connected.Store(true)

	defer func() {
		c.connected.Store(false)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		conn.Close(websocket.StatusNormalClosure, "closing")
	}()

	logger(ctx).Info("connected to feed")

	for {
		messageType, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("conn.Read: %w", err)
		}

		if messageType != websocket.MessageText {
			continue
		}

		msg, err := feed.DecodeEnvelope(data)
		if err != nil {
			logger(ctx).Warn("invalid feed frame dropped", logx.Error(err))
			continue
		}

		c.handler.OnMessage(ctx, msg)
	}
}

// dialURL identifies the player, the agent version and the cached session
// token to the feed. A fresh token is minted when none is cached.
func (c *Client) dialURL() (string, error) {
	parsed, err := url.Parse(c.websocketURL)
	if err != nil {
		return "", fmt.Errorf("url.Parse: %w", err)
	}

	sessionID, ok := c.sessions.Load(c.player)
	if !ok {
		sessionID = xid.New().String()
		c.sessions.Save(c.player, sessionID)
	}

	query := parsed.Query()
	query.Set("player", c.player)
	query.Set("version", agentVersion)
	query.Set("SId", sessionID)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
