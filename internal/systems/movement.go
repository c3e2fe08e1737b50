package systems

import (
	"cognitive-crawler/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	To        domain.Point
	HasMoved  bool
	BlockedBy *domain.Entity // Если врезались в кого-то (для атаки)
	IsWall    bool           // Если врезались в стену или край карты
}

// CalculateMove вычисляет новую позицию. Не меняет состояние мира!
func CalculateMove(w *domain.World, e *domain.Entity, dx, dy int) MovementResult {
	from, ok := e.Point()
	if !ok {
		return MovementResult{}
	}
	target := from.Add(dx, dy)
	res := MovementResult{To: target}

	// 1. Проверка границ и стен
	if w.Map.IsWall(target) {
		res.IsWall = true
		return res
	}

	// 2. Проверка сущностей, занимающих клетку
	if blocker := w.BlockerAt(target); blocker != nil && blocker.ID != e.ID {
		res.BlockedBy = blocker
		return res
	}

	res.HasMoved = true
	return res
}

// ApplyMove переставляет сущность и срабатывает ловушки в новой клетке.
func ApplyMove(w *domain.World, e *domain.Entity, to domain.Point) {
	w.Move(e, to)
	TriggerTraps(w, e)
}
