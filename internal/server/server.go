// Package server exposes the read-only status API. It reports what the agent
// is doing; it never drives it.
package server

import (
	"time"

	"github.com/go-chi/chi/v5"

	"skyflip/internal/config"
	"skyflip/internal/dispatcher"
	"skyflip/pkg/logx"
	"skyflip/pkg/middlewarex"
)

const logFieldMaxLen = 2048

// StatusProvider supplies message counters, normally the dispatcher.
type StatusProvider interface {
	Snapshot() dispatcher.Snapshot
}

// FeedProbe reports whether the feed connection is currently up.
type FeedProbe interface {
	IsConnected() bool
}

type Server struct {
	cfg     config.Config
	status  StatusProvider
	feed    FeedProbe
	started time.Time
}

func NewServer(
	cfg config.Config,
	status StatusProvider,
	feed FeedProbe,
) Server {
	return Server{
		cfg:     cfg,
		status:  status,
		feed:    feed,
		started: time.Now(),
	}
}

// Router builds the chi router with the standard middleware chain applied.
func (s Server) Router() chi.Router {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(middlewarex.TraceID)
	r.Use(middlewarex.Logger)
	r.Use(middlewarex.Recovery)
	r.Use(middlewarex.RequestLogging(masker, logFieldMaxLen))
	r.Use(middlewarex.ResponseLogging(masker, logFieldMaxLen))

	s.RegisterRoutes(r)

	return r
}
