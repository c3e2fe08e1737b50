package systems

import (
	"cognitive-crawler/internal/domain"
)

// TickHunger продвигает часы голода на один ход игрока.
// Каждые HungerDuration ходов стадия ухудшается; голодание бьёт по 1 HP за ход.
func TickHunger(w *domain.World, e *domain.Entity) {
	clock := e.HungerClock
	if clock == nil || e.Health == nil || e.Health.IsDead() {
		return
	}

	clock.Duration--
	if clock.Duration > 0 {
		return
	}

	switch clock.State {
	case domain.HungerWellFed:
		clock.State = domain.HungerNormal
		clock.Duration = domain.HungerDuration
		if e.IsPlayer() {
			w.Logf(domain.LogInfo, "Вы больше не сыты.")
		}
	case domain.HungerNormal:
		clock.State = domain.HungerHungry
		clock.Duration = domain.HungerDuration
		if e.IsPlayer() {
			w.Logf(domain.LogInfo, "Вы проголодались.")
		}
	case domain.HungerHungry:
		clock.State = domain.HungerStarving
		clock.Duration = domain.HungerDuration
		if e.IsPlayer() {
			w.Logf(domain.LogError, "Вы умираете от голода!")
		}
	case domain.HungerStarving:
		// Стадия не меняется, голод отнимает здоровье каждый ход
		clock.Duration = 0
		if e.IsPlayer() {
			w.Logf(domain.LogCombat, "Муки голода! Вы теряете 1 HP.")
		}
		ApplyDamage(w, e, 1)
	}
}
