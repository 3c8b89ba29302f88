package oracle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
)

// EncodeMoves renders history the way the oracle expects it, e.g. [0,2].
func EncodeMoves(history entity.MoveHistory) string {
	var sb strings.Builder

	sb.WriteByte('[')
	for i, move := range history {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(move))
	}
	sb.WriteByte(']')

	return sb.String()
}

// DecodeMoves parses an oracle reply. An empty list is an error: the oracle
// always answers with at least its own move.
func DecodeMoves(body string) (entity.MoveHistory, error) {
	text := strings.TrimSpace(body)
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, fmt.Errorf("%w: expected a bracketed list, got %q", apperror.ErrOracleProtocol, body)
	}

	inner := strings.TrimSpace(text[1 : len(text)-1])
	if inner == "" {
		return nil, fmt.Errorf("%w: empty move list", apperror.ErrOracleProtocol)
	}

	tokens := strings.Split(inner, ",")
	history := make(entity.MoveHistory, 0, len(tokens))

	for i, token := range tokens {
		move, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q: %w", apperror.ErrOracleProtocol, i, token, err)
		}
		history = append(history, move)
	}

	return history, nil
}

// ValidateReply checks that reply extends submitted by exactly one move into
// an existing column.
func ValidateReply(submitted, reply entity.MoveHistory) error {
	if len(reply) != len(submitted)+1 {
		return fmt.Errorf("%w: sent %d moves, got %d back", apperror.ErrOracleProtocol, len(submitted), len(reply))
	}

	if !reply.HasPrefix(submitted) {
		return fmt.Errorf("%w: reply %s rewrites history %s",
			apperror.ErrOracleProtocol, EncodeMoves(reply), EncodeMoves(submitted))
	}

	if move := reply[len(reply)-1]; move < 0 || move >= entity.Columns {
		return fmt.Errorf("%w: column %d out of range", apperror.ErrOracleProtocol, move)
	}

	return nil
}
