package rules

import "errors"

var (
	// ErrPoolExhausted is returned when a refill needs more cells than the
	// pool can hand out.
	ErrPoolExhausted = errors.New("rules: cell pool exhausted")

	// ErrShuffleExhausted is returned when the configured number of shuffle
	// passes did not produce a valid move.
	ErrShuffleExhausted = errors.New("rules: shuffle did not produce a valid move")

	// ErrInvalidConfig wraps every engine configuration problem.
	ErrInvalidConfig = errors.New("rules: invalid config")
)
