package domain

import "errors"

var (
	// ErrInvariantViolation - нарушена целостность мира (висячая ссылка,
	// сущность в стене, два игрока). Продолжать симуляцию нельзя.
	ErrInvariantViolation = errors.New("world invariant violated")

	ErrEntityNotFound = errors.New("entity not found")
)
