package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires every route of the game API. stream serves the websocket
// endpoint and may be nil.
func NewRouter(handlers Handlers, stream http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", handlers.PingHandler)

	mux.HandleFunc("POST /games", handlers.CreateGame)
	mux.HandleFunc("GET /games/{id}", handlers.GetGame)
	mux.HandleFunc("DELETE /games/{id}", handlers.DeleteGame)
	mux.HandleFunc("POST /games/{id}/start", handlers.StartGame)
	mux.HandleFunc("POST /games/{id}/moves", handlers.PlayMove)
	mux.HandleFunc("POST /games/{id}/retry", handlers.RetryOracle)
	mux.HandleFunc("POST /games/{id}/restart", handlers.RestartGame)

	if stream != nil {
		mux.Handle("GET /games/{id}/ws", stream)
	}

	return mux
}

// Start serves handler on port until ctx is canceled. writeTimeout must
// cover a full oracle round trip.
func Start(ctx context.Context, logger *slog.Logger, port string, handler http.Handler, writeTimeout time.Duration) error {
	log := logger.With("component", "http")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
