package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"hotelclient/api"
	"hotelclient/config"
	"hotelclient/internal/backend"
	"hotelclient/internal/bootstrap"
	"hotelclient/internal/flow/payment"
	"hotelclient/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var storage session.Storage
	switch cfg.Session.Storage {
	case "redis":
		storage = session.NewRedisStorage(cfg.Session.Redis)
	default:
		path := cfg.Session.FilePath
		if path == "" {
			path = "session.json"
		}
		storage = session.NewFileStorage(path)
	}

	sessions, err := session.NewStore(storage, cfg.Session.Passphrase)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	client := backend.NewClient(
		cfg.Backend.BaseURL,
		cfg.Backend.Timeout(),
		sessions,
		backend.WithSessionExpiredHook(func() {
			log.Printf("session expired, forcing login")
		}),
	)

	merchant := payment.Merchant{
		Currency:    cfg.Payment.Currency,
		Name:        cfg.Payment.MerchantName,
		Description: cfg.Payment.Description,
		ThemeColor:  cfg.Payment.ThemeColor,
	}

	dismiss := cfg.Banner.DismissAfter()
	handlers := []bootstrap.Registrar{
		api.NewAuthHandler(client, sessions),
		api.NewRoomHandler(client, sessions, dismiss),
		api.NewPaymentHandler(client, merchant, dismiss),
		api.NewAdminHandler(client, sessions),
	}

	if err := bootstrap.Run(ctx, cfg, handlers...); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
