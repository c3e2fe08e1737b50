package actions

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/systems"
)

// HandleAttack - рукопашная атака по соседней клетке.
func HandleAttack(ctx handlers.Context, target *domain.Entity) (handlers.Result, error) {
	if _, err := systems.ResolveAttack(ctx.World, ctx.Actor, target); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Turn(), nil
}
