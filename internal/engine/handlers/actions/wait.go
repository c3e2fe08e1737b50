package actions

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers"
)

// WaitHeal - сколько HP восстанавливает пропуск хода.
const WaitHeal = 1

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	healed := 0
	if ctx.Actor.Health != nil {
		healed = ctx.Actor.Health.Heal(WaitHeal)
	}

	if healed > 0 {
		ctx.World.Logf(domain.LogInfo, "Вы отдыхаете (+%d HP).", healed)
	} else {
		ctx.World.Logf(domain.LogInfo, "Вы пропускаете ход.")
	}
	return handlers.Turn(), nil
}
