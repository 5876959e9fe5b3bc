package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"github.com/fadhlanhapp/trust-ledger/hello"
	"github.com/fadhlanhapp/trust-ledger/logging"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"))
	cfg := hello.LoadConfig()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	name, err := hello.LoadName(ctx, db)
	cancel()
	if err != nil {
		slog.Error("Failed to load greeting name", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	slog.Info("Hello service starting", "port", cfg.Port)
	if err := hello.NewRouter(name).Run(":" + cfg.Port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
