package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftloop/draft-backend/internal/auth"
	"github.com/draftloop/draft-backend/internal/config"
	"github.com/draftloop/draft-backend/internal/draft"
	"github.com/draftloop/draft-backend/internal/httpapi"
	"github.com/draftloop/draft-backend/internal/room"
	"github.com/draftloop/draft-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := zap.Must(zap.NewProduction())
	if cfg.Debug {
		logger = zap.Must(zap.NewDevelopment())
	}
	defer logger.Sync()

	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rm := room.New(ctx, draft.DefaultConfig(), logger.Named("room"))
	au := auth.New(auth.Config{
		ClientID:      cfg.DiscordClientID,
		ClientSecret:  cfg.DiscordClientSecret,
		RedirectURL:   cfg.DiscordRedirectURL,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
	}, st, logger.Named("auth"))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(rm, st, au, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		rm.Inbox() <- room.Shutdown{}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
