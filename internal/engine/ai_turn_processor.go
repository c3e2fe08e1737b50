package engine

import (
	"errors"
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/systems"

	"github.com/sirupsen/logrus"
)

// processMonsterTurns - фаза MonsterTurn: каждый живой монстр ходит
// один раз, по возрастанию ID. Смерть игрока останавливает фазу.
func (s *Session) processMonsterTurns() error {
	s.turns.Schedule(s.World)
	defer s.turns.Reset()

	for {
		if s.World.PlayerDead {
			return nil
		}
		id, ok := s.turns.Next()
		if !ok {
			return nil
		}

		// Монстр мог погибнуть раньше в этом же тике (ловушка)
		npc := s.World.Get(id)
		if npc == nil || !npc.IsAlive() || s.World.IsPendingRemoval(id) {
			continue
		}

		if err := s.processAITurn(npc); err != nil {
			return err
		}
	}
}

// processAITurn исполняет решение ИИ одного монстра.
func (s *Session) processAITurn(npc *domain.Entity) error {
	action := systems.DecideAction(s.World, npc)

	// 1. Конвертируем решение AI в изменение мира
	switch action.Kind {
	case systems.ActionAttack:
		target, err := s.World.MustGet(action.Target)
		if err != nil {
			return fmt.Errorf("monster %s attack: %w", npc.ID, err)
		}
		if _, err := systems.ResolveAttack(s.World, npc, target); err != nil {
			if errors.Is(err, systems.ErrNotCombatant) {
				s.log.WithError(err).WithField("monster_id", npc.ID).Warn("Monster attack skipped")
				return nil
			}
			return err
		}

	case systems.ActionMove:
		res := systems.CalculateMove(s.World, npc, action.Dx, action.Dy)
		if res.HasMoved {
			systems.ApplyMove(s.World, npc, res.To)
		}

	default:
		// Idle
	}

	s.log.WithFields(logrus.Fields{
		"monster_id": npc.ID,
		"action":     action.Kind.String(),
		"tick":       s.World.Tick,
	}).Debug("Monster acted")
	return nil
}
