package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	IngameName   string `env:"INGAME_NAME,required"`
	WebsocketURL string `env:"WEBSOCKET_URL" envDefault:"wss://sky.coflnet.com/modsocket" validate:"url"`
	WebhookURL   string `env:"WEBHOOK_URL" validate:"omitempty,url"`

	// Delay the executor takes for every in-world action.
	FlipActionDelay time.Duration `env:"FLIP_ACTION_DELAY" envDefault:"100ms"`
	// Backoff before a contended flip is requeued on its category gate.
	GateRetryDelay time.Duration `env:"GATE_RETRY_DELAY" envDefault:"1s"`

	EnableAHFlips     bool `env:"ENABLE_AH_FLIPS" envDefault:"true"`
	EnableBazaarFlips bool `env:"ENABLE_BAZAAR_FLIPS" envDefault:"true"`
	UseCoflChat       bool `env:"USE_COFL_CHAT" envDefault:"true"`

	Skip          Skip `envPrefix:"SKIP_"`
	Observability Observability
}

type Observability struct {
	ProbeAddress   string `env:"PROBE_ADDRESS" envDefault:":8081"`
	MetricsAddress string `env:"METRICS_ADDRESS" envDefault:":9091"`
	StatusAddress  string `env:"STATUS_ADDRESS" envDefault:":8080"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("validate.Struct: %w", err)
	}

	return config, nil
}
