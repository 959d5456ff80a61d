// Devserver is an in-memory stand-in for the HabiPro platform API. It
// serves the same wire shapes and error bodies so the TUI can be developed
// and demoed without a real deployment.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/habipro/habipay/internal/config"
	"github.com/habipro/habipay/internal/fixture"
	habiHttp "github.com/habipro/habipay/internal/http"
	authHandler "github.com/habipro/habipay/internal/http/auth"
	contractHandler "github.com/habipro/habipay/internal/http/contract"
	paymentHandler "github.com/habipro/habipay/internal/http/payment"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store := fixture.Seed()

	router := habiHttp.New(
		contractHandler.NewHandler(store),
		paymentHandler.NewHandler(store),
		authHandler.NewHandler(store, cfg.Devserver.Secret),
		cfg.Devserver.Secret,
	)

	port := fmt.Sprintf(":%d", cfg.Devserver.Port)
	slog.Info("starting devserver", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
