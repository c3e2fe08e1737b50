package actions

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/systems"
)

// HandleDrop выбрасывает выбранный в меню предмет.
func HandleDrop(ctx handlers.Context, item *domain.Entity) (handlers.Result, error) {
	if err := systems.Drop(ctx.World, ctx.Actor, item); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Turn(), nil
}
