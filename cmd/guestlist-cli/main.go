package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wedding-guestlist/internal/client"
	"wedding-guestlist/internal/config"
	"wedding-guestlist/internal/logging"
	"wedding-guestlist/internal/models"
	"wedding-guestlist/internal/navigator"
)

func main() {
	fmt.Println("💍 Wedding Guest List")
	fmt.Println("=====================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat, "guestlist-cli")
	log.Debug().Str("api_url", cfg.APIURL).Dur("timeout", cfg.RequestTimeout).Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	labels := navigator.Labels{
		models.AssociationMolly: cfg.BrideName,
		models.AssociationJames: cfg.GroomName,
	}
	sh := newShell(os.Stdin, os.Stdout, labels)
	sh.app = navigator.NewApp(client.New(cfg.APIURL, cfg.RequestTimeout), navigator.NotifierFunc(sh.notify), log)

	// A failed first load is reported and the session starts empty.
	_ = sh.app.Refresh(ctx)

	if err := sh.run(ctx); err != nil {
		log.Error().Err(err).Msg("session ended with error")
		os.Exit(1)
	}
	fmt.Println("Goodbye! 👋")
}
