package oracle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
)

const (
	movesParam   = "moves"
	maxReplySize = 1 << 10
)

// Client asks the remote move service for the bot's next move. Every call
// is independent: no retries and no caching.
type Client struct {
	logger     *slog.Logger
	baseURL    *url.URL
	httpClient *http.Client
}

func New(logger *slog.Logger, baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid oracle url %q: %w", baseURL, err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid oracle url %q: scheme and host are required", baseURL)
	}

	return &Client{
		logger:  logger.With("component", "oracle"),
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// RequestMove sends history and returns the history the oracle answered
// with. The reply is parsed but not validated against history.
func (that *Client) RequestMove(ctx context.Context, history entity.MoveHistory) (entity.MoveHistory, error) {
	log := that.logger.With("method", "RequestMove", "moves", EncodeMoves(history))

	endpoint := *that.baseURL
	query := endpoint.Query()
	query.Set(movesParam, EncodeMoves(history))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build oracle request: %w", err)
	}

	started := time.Now()

	resp, err := that.httpClient.Do(req)
	if err != nil {
		log.Error("oracle request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", apperror.ErrOracleTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("oracle answered with an error status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", apperror.ErrOracleTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read reply: %w", apperror.ErrOracleTransport, err)
	}

	reply, err := DecodeMoves(string(body))
	if err != nil {
		log.Error("failed to decode oracle reply", "error", err)
		return nil, err
	}

	log.Debug("oracle replied", "reply", EncodeMoves(reply), "elapsed", time.Since(started))

	return reply, nil
}
