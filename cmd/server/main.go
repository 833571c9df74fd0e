package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"hypotest/adapters/memory"
	"hypotest/adapters/postgres"
	"hypotest/ports"
	"hypotest/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	ledger, err := buildLedger()
	if err != nil {
		log.Fatalf("ledger setup failed: %v", err)
	}

	addr := ":" + envOr("PORT", "8080")
	log.Printf("hypotest server listening on %s", addr)
	if err := ui.NewServer(ledger).Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// buildLedger connects to Postgres when DATABASE_URL is set and falls back
// to the in-memory ledger otherwise.
func buildLedger() (ports.RunLedger, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, runs are stored in memory")
		return memory.NewRunLedger(), nil
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return postgres.NewRunLedger(db), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
