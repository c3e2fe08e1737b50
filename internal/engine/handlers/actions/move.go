package actions

import (
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/systems"
)

// HandleMove - шаг в одном из 8 направлений. Шаг в бойца - атака.
func HandleMove(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Intent.Dir.Valid() {
		return handlers.EmptyResult(), handlers.ErrInvalidDirection
	}
	dx, dy := ctx.Intent.Dir.Delta()

	res := systems.CalculateMove(ctx.World, ctx.Actor, dx, dy)

	if res.BlockedBy != nil {
		if !res.BlockedBy.IsCombatant() {
			return handlers.EmptyResult(), handlers.ErrBlocked
		}
		return HandleAttack(ctx, res.BlockedBy)
	}

	if res.HasMoved {
		systems.ApplyMove(ctx.World, ctx.Actor, res.To)
		return handlers.Turn(), nil
	}

	return handlers.EmptyResult(), handlers.ErrBlocked
}
