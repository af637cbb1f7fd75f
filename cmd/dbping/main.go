// Command dbping opens the configured database, pings it and exits.  It
// shares the service's configuration and is meant for deploy-time checks.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/greeting-service/internal/config"
	"github.com/iliyamo/greeting-service/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("connect to %s database: %v", cfg.DBDriver, err)
	}
	store := database.NewStore(db)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("ping %s database: %v", cfg.DBDriver, err)
	}
	log.Printf("connected to %s database", cfg.DBDriver)
}
