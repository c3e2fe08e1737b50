package systems

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TriggerTraps срабатывает ловушки в клетке, куда только что вошёл mover.
// Ловушка становится видимой, одноразовая уничтожается.
func TriggerTraps(w *domain.World, mover *domain.Entity) {
	at, ok := mover.Point()
	if !ok {
		return
	}

	for _, trap := range w.EntitiesAt(at) {
		if trap.ID == mover.ID || trap.Trigger == nil {
			continue
		}

		w.Logf(domain.LogCombat, "%s срабатывает!", capitalize(trap.DisplayName()))
		trap.Hidden = nil

		if trap.Trigger.Damage > 0 {
			w.Logf(domain.LogCombat, "%s получает %d урона.", capitalize(mover.DisplayName()), trap.Trigger.Damage)
			ApplyDamage(w, mover, trap.Trigger.Damage)
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "trigger_system",
			"trap_id":   trap.ID,
			"mover_id":  mover.ID,
			"damage":    trap.Trigger.Damage,
		}).Debug("Trap triggered.")

		if trap.Trigger.SingleUse {
			w.MarkDead(trap.ID)
		}
	}
}
