package actions

import (
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/systems"
)

// HandleUnequip снимает предмет из слота в инвентарь.
func HandleUnequip(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Intent.Slot.Valid() {
		return handlers.EmptyResult(), systems.ErrSlotEmpty
	}
	if err := systems.Unequip(ctx.World, ctx.Actor, ctx.Intent.Slot); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Turn(), nil
}
