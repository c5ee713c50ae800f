package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/zentracker/internal/advice"
	"github.com/MrJamesThe3rd/zentracker/internal/advice/gemini"
	"github.com/MrJamesThe3rd/zentracker/internal/config"
	zenHttp "github.com/MrJamesThe3rd/zentracker/internal/http"
	adviceHandler "github.com/MrJamesThe3rd/zentracker/internal/http/advice"
	categoryHandler "github.com/MrJamesThe3rd/zentracker/internal/http/category"
	dashboardHandler "github.com/MrJamesThe3rd/zentracker/internal/http/dashboard"
	settingsHandler "github.com/MrJamesThe3rd/zentracker/internal/http/settings"
	txHandler "github.com/MrJamesThe3rd/zentracker/internal/http/transaction"
	"github.com/MrJamesThe3rd/zentracker/internal/profile"
	"github.com/MrJamesThe3rd/zentracker/internal/storage"
	"github.com/MrJamesThe3rd/zentracker/internal/theme"
	"github.com/MrJamesThe3rd/zentracker/internal/transaction"
	txStore "github.com/MrJamesThe3rd/zentracker/internal/transaction/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slots, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer slots.Close()

	if cfg.Gemini.APIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, advice will use the fallback insight")
	}

	advisor, err := gemini.NewAdvisor(ctx, gemini.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
	if err != nil {
		return fmt.Errorf("creating advisor: %w", err)
	}

	var (
		transactionService = transaction.NewService(txStore.New(slots))
		profileStore       = profile.NewStore(slots)
		themeStore         = theme.NewStore(slots)
		coach              = advice.NewCoach(advice.NewService(advisor, cfg.Gemini.Timeout, cfg.Gemini.SampleSize))
	)
	defer coach.Close()

	transactionService.Subscribe(coach.Observe)

	transactionService.Load(ctx)
	profileStore.Load(ctx)
	themeStore.Load(ctx)

	router := zenHttp.New(zenHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService, time.Now),
		Dashboard:    dashboardHandler.NewHandler(transactionService, time.Now),
		Categories:   categoryHandler.NewHandler(),
		Advice:       adviceHandler.NewHandler(coach, transactionService, cfg.Gemini.Timeout),
		Settings:     settingsHandler.NewHandler(profileStore, themeStore, transactionService),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout + cfg.Gemini.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "storage", cfg.Storage.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
