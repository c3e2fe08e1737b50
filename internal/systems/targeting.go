package systems

import (
	"errors"
	"slices"

	"cognitive-crawler/internal/domain"
)

var (
	ErrTargetRequired   = errors.New("target required")
	ErrTargetOutOfRange = errors.New("target out of range")
	ErrTargetNotVisible = errors.New("target not visible")
)

// ValidateTarget проверяет клетку для предмета с прицеливанием.
// Клетка должна быть на карте, в пределах дальности (по Евклиду)
// и в поле зрения стрелка.
func ValidateTarget(w *domain.World, actor *domain.Entity, rangeLimit int, target *domain.Point) error {
	// 1. Цель вообще указана
	if target == nil {
		return ErrTargetRequired
	}

	// 2. Проверка границ
	if !w.Map.InBounds(*target) {
		return ErrTargetOutOfRange
	}

	// 3. Проверка дистанции
	from, ok := actor.Point()
	if !ok || from.DistanceSquaredTo(*target) > rangeLimit*rangeLimit {
		return ErrTargetOutOfRange
	}

	// 4. Проверка видимости
	if actor.Viewshed == nil || !actor.Viewshed.CanSee(*target) {
		return ErrTargetNotVisible
	}

	return nil
}

// TargetCells перечисляет допустимые клетки прицеливания (Y, затем X).
func TargetCells(w *domain.World, actor *domain.Entity, rangeLimit int) []domain.Point {
	from, ok := actor.Point()
	if !ok || actor.Viewshed == nil {
		return nil
	}
	cells := make([]domain.Point, 0)
	actor.Viewshed.Visible.Each(func(p domain.Point) {
		if w.Map.InBounds(p) && from.DistanceSquaredTo(p) <= rangeLimit*rangeLimit {
			cells = append(cells, p)
		}
	})
	slices.SortFunc(cells, domain.ComparePoints)
	return cells
}

// AffectedEntities собирает цели эффекта: при радиусе 0 - только клетку,
// иначе всех со здоровьем в круге radius (граница включительно).
func AffectedEntities(w *domain.World, center domain.Point, radius int) []*domain.Entity {
	return w.Query(func(e *domain.Entity) bool {
		if e.Health == nil || e.Position == nil {
			return false
		}
		p := e.Position.Point()
		if radius <= 0 {
			return p == center
		}
		return p.DistanceSquaredTo(center) <= radius*radius
	})
}
