package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"coworking/internal/app"
	"coworking/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := cfg.NewLogger("coworking-api")
	cfg.LogConfiguration(log)
	log.Info("Starting coworking booking service")

	conn, err := app.OpenDatabase(context.Background(), cfg)
	if err != nil {
		log.Fatal("Database unavailable", "error", err)
	}
	log.Info("Database ready")

	application, err := app.New(conn, cfg, log)
	if err != nil {
		log.Fatal("Failed to build application", "error", err)
	}
	application.Run()
}
