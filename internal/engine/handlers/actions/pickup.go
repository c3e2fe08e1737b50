package actions

import (
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/systems"
)

// HandlePickup подбирает первый предмет под ногами.
func HandlePickup(ctx handlers.Context) (handlers.Result, error) {
	at, ok := ctx.Actor.Point()
	if !ok {
		return handlers.EmptyResult(), handlers.ErrNothingHere
	}
	item := systems.ItemAt(ctx.World, at)
	if item == nil {
		return handlers.EmptyResult(), handlers.ErrNothingHere
	}

	if err := systems.Pickup(ctx.World, ctx.Actor, item); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Turn(), nil
}
