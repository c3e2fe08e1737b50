package systems

import (
	"errors"
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

var ErrNotCombatant = errors.New("not a combatant")

// CombatOutcome - итог одной атаки.
type CombatOutcome struct {
	Damage       int
	DefenderDied bool
}

// EffectivePower - базовая сила плюс бонусы надетых предметов.
func EffectivePower(w *domain.World, e *domain.Entity) int {
	power := 0
	if e.CombatStats != nil {
		power = e.CombatStats.Power
	}
	for _, eq := range equippedBonuses(w, e) {
		power += eq.PowerBonus
	}
	return power
}

// EffectiveDefense - базовая защита плюс бонусы надетых предметов.
func EffectiveDefense(w *domain.World, e *domain.Entity) int {
	defense := 0
	if e.CombatStats != nil {
		defense = e.CombatStats.Defense
	}
	for _, eq := range equippedBonuses(w, e) {
		defense += eq.DefenseBonus
	}
	return defense
}

func equippedBonuses(w *domain.World, e *domain.Entity) []*domain.Equippable {
	if e.Equipped == nil {
		return nil
	}
	out := make([]*domain.Equippable, 0, len(e.Equipped.Slots))
	for _, id := range e.Equipped.Items() {
		item := w.Get(id)
		if item == nil || item.Item == nil || item.Item.Equippable == nil {
			continue
		}
		out = append(out, item.Item.Equippable)
	}
	return out
}

// ResolveAttack проводит рукопашную атаку.
// Урон = max(1, сила - защита), здоровье не опускается ниже нуля.
func ResolveAttack(w *domain.World, attacker, defender *domain.Entity) (CombatOutcome, error) {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": attacker.ID,
		"target_id":   defender.ID,
		"tick":        w.Tick,
	})

	// --- Проверка граничных условий ---

	if attacker.CombatStats == nil {
		return CombatOutcome{}, fmt.Errorf("attacker %s: %w", attacker.ID, ErrNotCombatant)
	}
	if !defender.IsCombatant() {
		return CombatOutcome{}, fmt.Errorf("defender %s: %w", defender.ID, ErrNotCombatant)
	}
	if defender.Health.IsDead() {
		combatLogger.Debug("Attack ineffective: target is already dead.")
		return CombatOutcome{}, nil
	}

	// --- Расчёт урона ---

	power := EffectivePower(w, attacker)
	defense := EffectiveDefense(w, defender)
	damage := max(1, power-defense)

	hpBefore := defender.Health.Current
	died := defender.Health.TakeDamage(damage)

	combatLogger.WithFields(logrus.Fields{
		"power":       power,
		"defense":     defense,
		"damage":      damage,
		"hp_before":   hpBefore,
		"hp_after":    defender.Health.Current,
		"target_died": died,
	}).Debug("Attack resolved.")

	w.Logf(domain.LogCombat, "%s бьёт %s: %d урона.", capitalize(attacker.DisplayName()), defender.DisplayName(), damage)

	if died {
		Kill(w, defender)
	}
	return CombatOutcome{Damage: damage, DefenderDied: died}, nil
}

// Kill оформляет смерть: запись в журнал и отложенное удаление.
// Игрок не удаляется, вместо этого мир помечается PlayerDead.
func Kill(w *domain.World, e *domain.Entity) {
	if e.IsPlayer() {
		w.PlayerDead = true
		w.Logf(domain.LogCombat, "Вы погибли!")
		logger.Log.WithFields(logrus.Fields{
			"component": "combat_system",
			"depth":     w.Depth,
			"tick":      w.Tick,
		}).Info("Player died.")
		return
	}
	w.Logf(domain.LogCombat, "%s погибает.", capitalize(e.DisplayName()))
	w.MarkDead(e.ID)
}

// ApplyDamage наносит урон вне рукопашной (заклинания, ловушки, голод).
func ApplyDamage(w *domain.World, e *domain.Entity, amount int) bool {
	if e.Health == nil || e.Health.IsDead() {
		return false
	}
	died := e.Health.TakeDamage(amount)
	if died {
		Kill(w, e)
	}
	return died
}
