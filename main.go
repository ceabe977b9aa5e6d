package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/neojoin1-cyber/game/internal/config"
	"github.com/neojoin1-cyber/game/internal/game"
	"github.com/neojoin1-cyber/game/internal/identity"
	"github.com/neojoin1-cyber/game/internal/jobs"
	"github.com/neojoin1-cyber/game/internal/leaderboard"
	"github.com/neojoin1-cyber/game/internal/serverapp"
	"github.com/neojoin1-cyber/game/internal/state"
	"github.com/neojoin1-cyber/game/internal/telemetry"
)

func main() {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.FromEnv()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	bal, err := config.LoadBalance(cfg.BalancePath)
	if err != nil {
		logger.WithError(err).Fatal("load balance")
	}

	store, err := state.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.WithError(err).Fatal("open state store")
	}
	board, err := leaderboard.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.WithError(err).Fatal("open leaderboard store")
	}
	events := telemetry.NewMemoryRepository()

	engine := game.NewEngine(bal, store, events, game.WallClock{}, game.NewDice())
	session := game.NewSession(engine)
	defer session.Close()

	auth := identity.NewMock()
	if cfg.PlayerName != "" {
		p := auth.Login(cfg.PlayerName)
		logger.WithField("name", p.Name).Info("player logged in")
	}

	scheduler := jobs.NewScheduler(session, logger)
	if err := scheduler.Start(); err != nil {
		logger.WithError(err).Fatal("start scheduler")
	}
	defer scheduler.Stop()

	handler, err := serverapp.NewHandler(serverapp.Options{
		Balance: bal,
		Session: session,
		Board:   board,
		Auth:    auth,
		Gateway: identity.MockGateway{},
		Events:  events,
		Logger:  logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("build handler")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server")
		}
	case sig := <-sigCh:
		logger.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("shutdown")
		}
	}
}
