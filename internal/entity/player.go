package entity

import (
	"errors"
	"fmt"
)

// Side is one of the two participants of a game.
type Side string

const (
	SideHuman  Side = "human"
	SideOracle Side = "oracle"
)

var ErrUnknownSide = errors.New("unknown side")

func ParseSide(value string) (Side, error) {
	switch side := Side(value); side {
	case SideHuman, SideOracle:
		return side, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSide, value)
	}
}

// Mark returns the mark a side plays with when first moves first.
func (that Side) Mark(first Side) Mark {
	if that == first {
		return Player1
	}
	return Player2
}
