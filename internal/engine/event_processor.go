package engine

import (
	"fmt"

	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/dungeon"

	"github.com/sirupsen/logrus"
)

// handleLevelTransition - фаза LevelTransition: игрок и его вещи
// переезжают на новый уровень, всё остальное уничтожается.
func (s *Session) handleLevelTransition() error {
	w := s.World
	player := w.Player()
	if player == nil || player.Position == nil {
		return fmt.Errorf("%w: player is not on the map", domain.ErrInvariantViolation)
	}

	// 1. Что переносим: игрок, инвентарь, экипировка
	w.Flush()
	keep := map[types.EntityID]bool{player.ID: true}
	for _, id := range w.Carried(player) {
		keep[id] = true
	}
	discarded := 0
	for _, e := range w.Query(func(e *domain.Entity) bool { return !keep[e.ID] }) {
		w.Destroy(e.ID)
		discarded++
	}

	// 2. Генерируем уровень того же размера из сида забега
	depth := w.Depth + 1
	level := dungeon.GenerateSized(w.Map.Width, w.Map.Height, depth, w.Seed)

	// 3. Игрок встаёт на старт нового уровня
	player.Position.X, player.Position.Y = level.Start.X, level.Start.Y
	w.ReplaceMap(level.Map)
	if _, err := dungeon.Populate(w, level); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvariantViolation, err)
	}

	// 4. Передышка: не меньше половины здоровья
	if h := player.Health; h != nil && h.Current < h.Max/2 {
		h.Heal(h.Max/2 - h.Current)
	}

	w.Logf(domain.LogInfo, "Вы спускаетесь на уровень %d.", depth)
	s.transitioned = true

	s.log.WithFields(logrus.Fields{
		"depth":     depth,
		"discarded": discarded,
		"spawned":   len(level.Spawns),
	}).Info("Level transition")
	return nil
}
