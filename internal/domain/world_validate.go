package domain

import (
	"fmt"

	"cognitive-crawler/internal/core/types"
)

// Validate проверяет инварианты мира. Любое нарушение оборачивает
// ErrInvariantViolation: после него симуляцию продолжать нельзя.
func (w *World) Validate() error {
	if w.Map == nil {
		return fmt.Errorf("%w: world has no map", ErrInvariantViolation)
	}

	// 1. Ровно один игрок
	players := 0
	for _, e := range w.entities {
		if e.Player != nil {
			players++
		}
	}
	if players != 1 {
		return fmt.Errorf("%w: expected exactly one player, found %d", ErrInvariantViolation, players)
	}

	owners := make(map[types.EntityID]types.EntityID)

	for _, e := range w.Query(nil) {
		// 2. Позиции внутри карты и не в стене
		if e.Position != nil {
			p := e.Position.Point()
			if e.Position.Level != w.Depth {
				return fmt.Errorf("%w: %s is on level %d, current depth %d",
					ErrInvariantViolation, e.ID, e.Position.Level, w.Depth)
			}
			if !w.Map.InBounds(p) {
				return fmt.Errorf("%w: %s is out of bounds at %v", ErrInvariantViolation, e.ID, p)
			}
			if w.Map.IsWall(p) {
				return fmt.Errorf("%w: %s is inside a wall at %v", ErrInvariantViolation, e.ID, p)
			}
		}

		// 3. Здоровье
		if h := e.Health; h != nil && (h.Max <= 0 || h.Current < 0 || h.Current > h.Max) {
			return fmt.Errorf("%w: %s has health %d/%d", ErrInvariantViolation, e.ID, h.Current, h.Max)
		}

		// 4. Ссылки инвентаря и экипировки
		if e.Inventory != nil {
			for _, ref := range e.Inventory.Items {
				if err := w.checkCarried(e, ref, owners); err != nil {
					return err
				}
			}
		}
		if e.Equipped != nil {
			for slot, ref := range e.Equipped.Slots {
				if ref.IsNil() {
					continue
				}
				if err := w.checkCarried(e, ref, owners); err != nil {
					return err
				}
				item := w.entities[ref].Item
				if item.Equippable == nil || item.Equippable.Slot != slot {
					return fmt.Errorf("%w: %s equipped in wrong slot %s", ErrInvariantViolation, ref, slot)
				}
			}
		}
	}

	// 5. Связность уровня
	if !w.Map.IsConnected(w.Map.Start) {
		return fmt.Errorf("%w: level %d is not connected", ErrInvariantViolation, w.Depth)
	}

	return nil
}

func (w *World) checkCarried(owner *Entity, ref types.EntityID, owners map[types.EntityID]types.EntityID) error {
	item, ok := w.entities[ref]
	if !ok {
		return fmt.Errorf("%w: %s references missing item %s", ErrInvariantViolation, owner.ID, ref)
	}
	if item.Item == nil {
		return fmt.Errorf("%w: %s carries non-item %s", ErrInvariantViolation, owner.ID, ref)
	}
	if item.Position != nil {
		return fmt.Errorf("%w: carried item %s is also on the map", ErrInvariantViolation, ref)
	}
	if prev, dup := owners[ref]; dup {
		return fmt.Errorf("%w: item %s held by both %s and %s", ErrInvariantViolation, ref, prev, owner.ID)
	}
	owners[ref] = owner.ID
	return nil
}
