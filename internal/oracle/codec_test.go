package oracle

import (
	"testing"

	"github.com/rocketscienceinc/ninedt-backend/internal/apperror"
	"github.com/rocketscienceinc/ninedt-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMoves(t *testing.T) {
	assert.Equal(t, "[]", EncodeMoves(entity.MoveHistory{}))
	assert.Equal(t, "[]", EncodeMoves(nil))
	assert.Equal(t, "[3]", EncodeMoves(entity.MoveHistory{3}))
	assert.Equal(t, "[0,2]", EncodeMoves(entity.MoveHistory{0, 2}))
}

func TestDecodeMoves(t *testing.T) {
	t.Run("Plain list", func(t *testing.T) {
		history, err := DecodeMoves("[0,2,1]")

		require.NoError(t, err)
		assert.Equal(t, entity.MoveHistory{0, 2, 1}, history)
	})

	t.Run("Tokens are trimmed", func(t *testing.T) {
		// Given: a reply with spaces after the commas and a trailing newline
		history, err := DecodeMoves("[0, 2, 1]\n")

		// Then: the moves are parsed
		require.NoError(t, err)
		assert.Equal(t, entity.MoveHistory{0, 2, 1}, history)
	})

	t.Run("Malformed replies", func(t *testing.T) {
		for _, body := range []string{
			"",
			"[]",
			"[ ]",
			"0,2,1",
			"[0,2,1",
			"[0,,1]",
			"[0,two]",
			"Internal server error",
		} {
			// When: decoding a malformed reply
			history, err := DecodeMoves(body)

			// Then: it is a protocol error, never an empty history
			require.ErrorIs(t, err, apperror.ErrOracleProtocol, "body %q", body)
			assert.Nil(t, history)
		}
	})
}

func TestValidateReply(t *testing.T) {
	t.Run("One more move on the same prefix", func(t *testing.T) {
		assert.NoError(t, ValidateReply(entity.MoveHistory{0, 2}, entity.MoveHistory{0, 2, 1}))
		assert.NoError(t, ValidateReply(entity.MoveHistory{}, entity.MoveHistory{3}))
	})

	t.Run("Wrong length", func(t *testing.T) {
		err := ValidateReply(entity.MoveHistory{0, 2}, entity.MoveHistory{0, 2, 1, 1})

		assert.ErrorIs(t, err, apperror.ErrOracleProtocol)
	})

	t.Run("Same length", func(t *testing.T) {
		err := ValidateReply(entity.MoveHistory{0, 2}, entity.MoveHistory{0, 2})

		assert.ErrorIs(t, err, apperror.ErrOracleProtocol)
	})

	t.Run("Rewritten prefix", func(t *testing.T) {
		err := ValidateReply(entity.MoveHistory{0, 2}, entity.MoveHistory{1, 2, 1})

		assert.ErrorIs(t, err, apperror.ErrOracleProtocol)
	})

	t.Run("Column out of range", func(t *testing.T) {
		err := ValidateReply(entity.MoveHistory{0}, entity.MoveHistory{0, entity.Columns})

		assert.ErrorIs(t, err, apperror.ErrOracleProtocol)
	})
}
