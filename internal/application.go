package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/ninedt-backend/internal/config"
	"github.com/rocketscienceinc/ninedt-backend/internal/oracle"
	"github.com/rocketscienceinc/ninedt-backend/internal/usecase"
	"github.com/rocketscienceinc/ninedt-backend/transport/rest"
	"github.com/rocketscienceinc/ninedt-backend/transport/websocket"
)

// responseSlack is added to the oracle timeout for the HTTP write timeout.
const responseSlack = 5 * time.Second

// RunApp - runs the application.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	oracleClient, err := oracle.New(logger, conf.Oracle.URL, conf.Oracle.Timeout)
	if err != nil {
		return fmt.Errorf("could not create oracle client: %w", err)
	}

	sessions := usecase.NewSessionManager(logger, oracleClient, conf.Session.Limit)

	handlers := rest.NewHandlers(logger, sessions)
	wsServer := websocket.New(logger, sessions)
	router := rest.NewRouter(handlers, wsServer)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "oracle", conf.Oracle.URL)

	if err = rest.Start(ctx, logger, conf.HTTPPort, router, conf.Oracle.Timeout+responseSlack); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
