package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/granahq/grana/internal/auth"
	authStore "github.com/granahq/grana/internal/auth/store"
	"github.com/granahq/grana/internal/category"
	catStore "github.com/granahq/grana/internal/category/store"
	"github.com/granahq/grana/internal/config"
	"github.com/granahq/grana/internal/database"
	"github.com/granahq/grana/internal/goal"
	granaHttp "github.com/granahq/grana/internal/http"
	authHandler "github.com/granahq/grana/internal/http/auth"
	catHandler "github.com/granahq/grana/internal/http/category"
	goalHandler "github.com/granahq/grana/internal/http/goal"
	importHandler "github.com/granahq/grana/internal/http/importcsv"
	profileHandler "github.com/granahq/grana/internal/http/profile"
	reportHandler "github.com/granahq/grana/internal/http/report"
	txHandler "github.com/granahq/grana/internal/http/transaction"
	"github.com/granahq/grana/internal/importer"
	"github.com/granahq/grana/internal/profile"
	profileStore "github.com/granahq/grana/internal/profile/store"
	"github.com/granahq/grana/internal/report"
	"github.com/granahq/grana/internal/transaction"
	txStore "github.com/granahq/grana/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		authService        = auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
		transactionService = transaction.NewService(txStore.New(db))
		categoryService    = category.NewService(catStore.New(db))
		profileService     = profile.NewService(profileStore.New(db))
		goalService        = goal.NewService(goal.NewStore(cfg.Goals.File))
		importService      = importer.NewService()
		reportService      = report.NewService(transactionService)
	)

	var (
		authH    = authHandler.NewHandler(authService)
		txH      = txHandler.NewHandler(transactionService)
		catH     = catHandler.NewHandler(categoryService)
		profileH = profileHandler.NewHandler(profileService)
		goalH    = goalHandler.NewHandler(goalService)
		reportH  = reportHandler.NewHandler(reportService)
		importH  = importHandler.NewHandler(importService, transactionService)
	)

	router := granaHttp.New(
		granaHttp.Config{CORSOrigins: cfg.Server.CORSOrigins},
		authService,
		authH, txH, catH, profileH, goalH, reportH, importH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
