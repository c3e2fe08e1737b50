package events

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers"
)

// HandleDescend проверяет, что игрок стоит на лестнице, и просит движок
// сменить уровень. Сам уровень строит движок в фазе LevelTransition.
func HandleDescend(ctx handlers.Context) (handlers.Result, error) {
	at, ok := ctx.Actor.Point()
	if !ok {
		return handlers.EmptyResult(), handlers.ErrNoStairs
	}
	tile := ctx.World.Map.TileAt(at)
	if tile == nil || tile.Kind != domain.TileDownStairs {
		return handlers.EmptyResult(), handlers.ErrNoStairs
	}

	return handlers.Result{Consumed: true, Event: handlers.EventDescend}, nil
}
