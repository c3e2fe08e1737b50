package systems

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ApplyEffect применяет эффект расходника к одной цели.
func ApplyEffect(w *domain.World, user, target *domain.Entity, effect domain.Effect) {
	effectLogger := logger.Log.WithFields(logrus.Fields{
		"component": "effects_system",
		"effect":    effect.Kind,
		"user_id":   user.ID,
		"target_id": target.ID,
	})

	switch effect.Kind {
	case domain.EffectHeal:
		if target.Health == nil {
			return
		}
		healed := target.Health.Heal(effect.Amount)
		w.Logf(domain.LogInfo, "%s восстанавливает %d HP.", capitalize(target.DisplayName()), healed)

	case domain.EffectDamage:
		if target.Health == nil {
			return
		}
		w.Logf(domain.LogCombat, "%s получает %d урона.", capitalize(target.DisplayName()), effect.Amount)
		ApplyDamage(w, target, effect.Amount)

	case domain.EffectConfuse:
		if target.Health == nil || target.IsPlayer() {
			return
		}
		target.Confusion = &domain.Confusion{Turns: effect.Amount}
		w.Logf(domain.LogCombat, "%s в замешательстве.", capitalize(target.DisplayName()))

	case domain.EffectBuffPower:
		if target.CombatStats == nil {
			return
		}
		target.CombatStats.Power += effect.Amount
		w.Logf(domain.LogInfo, "%s чувствует прилив сил.", capitalize(target.DisplayName()))

	case domain.EffectFeed:
		if target.HungerClock == nil {
			return
		}
		target.HungerClock.State = domain.HungerWellFed
		target.HungerClock.Duration = domain.HungerDuration
		w.Logf(domain.LogInfo, "%s ест.", capitalize(target.DisplayName()))

	case domain.EffectMagicMap:
		w.Map.RevealAll()
		w.Logf(domain.LogInfo, "Карта уровня открывается перед вами!")

	default:
		effectLogger.Warn("Unknown effect kind.")
		return
	}

	effectLogger.Debug("Effect applied.")
}
