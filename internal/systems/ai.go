package systems

import (
	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ActionKind - что монстр решил сделать в свой ход.
type ActionKind int

const (
	ActionIdle ActionKind = iota
	ActionMove
	ActionAttack
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "MOVE"
	case ActionAttack:
		return "ATTACK"
	default:
		return "IDLE"
	}
}

// Action - решение ИИ. Dx/Dy заполнены для Move, Target - для Attack.
type Action struct {
	Kind   ActionKind
	Dx, Dy int
	Target types.EntityID
}

// DecideAction решает, что делать монстру. Меняет только его MonsterAI
// и Confusion, мир не трогает: исполнение остаётся за планировщиком.
func DecideAction(w *domain.World, monster *domain.Entity) Action {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component":  "ai_system",
		"monster_id": monster.ID,
		"tick":       w.Tick,
	})

	ai := monster.MonsterAI
	from, onMap := monster.Point()
	if ai == nil || !onMap || !monster.IsAlive() {
		return Action{Kind: ActionIdle}
	}

	// 1. Замешательство съедает ход
	if c := monster.Confusion; c != nil {
		c.Turns--
		if c.Turns <= 0 {
			monster.Confusion = nil
			w.Logf(domain.LogInfo, "%s приходит в себя.", capitalize(monster.DisplayName()))
		}
		aiLogger.Debug("Monster is confused. Action: IDLE")
		return Action{Kind: ActionIdle}
	}

	player := w.Player()
	if player == nil || w.PlayerDead {
		return Action{Kind: ActionIdle}
	}
	target, ok := player.Point()
	if !ok {
		return Action{Kind: ActionIdle}
	}

	// 2. Игрок в поле зрения: преследуем или бьём
	if monster.Viewshed != nil && monster.Viewshed.CanSee(target) {
		ai.Spot(target)
		if from.Chebyshev(target) == 1 {
			aiLogger.Debug("Target adjacent. Action: ATTACK")
			return Action{Kind: ActionAttack, Target: player.ID}
		}
		return stepToward(w, from, target, aiLogger)
	}

	// 3. Не видим, но помним, где видели
	if ai.State == domain.AIStateChasing {
		if !ai.LoseSight() || from == ai.LastKnown {
			ai.GiveUp()
			aiLogger.Debug("Lost track of target. State: IDLE")
			return Action{Kind: ActionIdle}
		}
		return stepToward(w, from, ai.LastKnown, aiLogger)
	}

	return Action{Kind: ActionIdle}
}

func stepToward(w *domain.World, from, to domain.Point, aiLogger *logrus.Entry) Action {
	path := FindPath(w.Map, from, to)
	if len(path) == 0 {
		aiLogger.Debug("No path to target. Action: IDLE")
		return Action{Kind: ActionIdle}
	}
	next := path[0]
	aiLogger.WithFields(logrus.Fields{"dx": next.X - from.X, "dy": next.Y - from.Y}).Debug("Path found. Action: MOVE")
	return Action{Kind: ActionMove, Dx: next.X - from.X, Dy: next.Y - from.Y}
}
