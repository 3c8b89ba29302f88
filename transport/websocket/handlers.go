package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/rocketscienceinc/ninedt-backend/internal/usecase"
)

var errColumnRequired = errors.New("column is required")

// The handlers only drive the game; the resulting snapshots reach the
// client through the watch stream.

func (that *Server) handleStart(ctx context.Context, manager *usecase.GameManager, payload *Payload) error {
	first, err := entity.ParseSide(payload.First)
	if err != nil {
		return err
	}

	if _, err = manager.Start(ctx, first); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, manager *usecase.GameManager, payload *Payload) error {
	if payload.Column == nil {
		return errColumnRequired
	}

	if _, err := manager.PlayColumn(ctx, *payload.Column); err != nil {
		return fmt.Errorf("failed to play column: %w", err)
	}

	return nil
}

func (that *Server) handleRetry(ctx context.Context, manager *usecase.GameManager, _ *Payload) error {
	if _, err := manager.RetryOracle(ctx); err != nil {
		return fmt.Errorf("failed to retry: %w", err)
	}

	return nil
}

func (that *Server) handleRestart(_ context.Context, manager *usecase.GameManager, _ *Payload) error {
	manager.Restart()
	return nil
}
