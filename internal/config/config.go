package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"HabiPay"`
	}

	API struct {
		URL     string        `envconfig:"HABIPRO_API_URL" default:"http://localhost:8000/api"`
		Token   string        `envconfig:"HABIPRO_TOKEN"`
		Timeout time.Duration `envconfig:"HABIPRO_TIMEOUT" default:"30s"`
	}

	Pay struct {
		// Delay before the payment modal closes itself after a success.
		AutocloseDelay time.Duration `envconfig:"PAY_AUTOCLOSE_DELAY" default:"2s"`
	}

	Ledger struct {
		// Year shown by default in the yearly views; 0 means current year.
		Year int `envconfig:"LEDGER_YEAR" default:"0"`
	}

	Devserver struct {
		Port   int    `envconfig:"DEVSERVER_PORT" default:"8000"`
		Secret string `envconfig:"DEVSERVER_SECRET" default:"habipay-dev-secret"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
