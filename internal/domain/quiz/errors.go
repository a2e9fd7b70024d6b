package quiz

import "errors"

// Sentinel errors for the quiz package. Check with errors.Is.
//
// The first group reports session state the caller forgot to configure;
// the second reports pools that cannot produce another question. Both
// are recoverable: fix the state or pick a different mode.
var (
	ErrNoActiveUser = errors.New("quiz: active user is not set")
	ErrNoTermGroup  = errors.New("quiz: term group is not set")
	ErrNoGameMode   = errors.New("quiz: game mode is not set")
	ErrTermsNotSet  = errors.New("quiz: terms are not set")

	ErrEmptyGroup       = errors.New("quiz: term group has no terms")
	ErrInsufficientPool = errors.New("quiz: not enough terms to build a question")
	ErrPoolExhausted    = errors.New("quiz: no questions left in the pool")

	ErrUnknownMode = errors.New("quiz: unknown game mode")
)
