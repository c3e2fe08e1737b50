package handlers

import (
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/systems"
)

// ItemHandlerFunc - хендлер, которому нужен предмет из инвентаря актора.
type ItemHandlerFunc func(ctx Context, item *domain.Entity) (Result, error)

// WithItem берет хендлер предмета и превращает его в стандартный HandlerFunc.
// Она берет на себя поиск предмета по индексу меню и проверку ссылки.
func WithItem(handler ItemHandlerFunc) HandlerFunc {
	return func(ctx Context) (Result, error) {
		// 1. Инвентарь есть
		if ctx.Actor.Inventory == nil {
			return Result{}, systems.ErrNoInventory
		}

		// 2. Индекс в пределах меню
		id, ok := ctx.Actor.Inventory.At(ctx.Intent.Index)
		if !ok {
			return Result{}, systems.ErrNotInInventory
		}

		// 3. Ссылка резолвится: иначе мир поврежден
		item, err := ctx.World.MustGet(id)
		if err != nil {
			return Result{}, fmt.Errorf("inventory slot %d: %w", ctx.Intent.Index, err)
		}

		// 4. Вызов чистой логики
		return handler(ctx, item)
	}
}
