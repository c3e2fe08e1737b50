package domain

// AIBehavior - тег поведения монстра.
type AIBehavior string

const BehaviorBasic AIBehavior = "basic"

// AIState - состояние автомата преследования.
type AIState string

const (
	AIStateIdle    AIState = "idle"
	AIStateChasing AIState = "chasing"
)

// PursuitTimeout - сколько ходов монстр идёт к последней известной
// позиции игрока после потери его из виду.
const PursuitTimeout = 5

// MonsterAI - мозги монстра.
//
// Переходы:
//
//	Idle    --игрок виден-->              Chasing (PursuitLeft = PursuitTimeout)
//	Chasing --игрок виден-->              Chasing (счётчик сбрасывается)
//	Chasing --не виден, счётчик > 0-->    Chasing (PursuitLeft--)
//	Chasing --счётчик 0 или дошёл-->      Idle
type MonsterAI struct {
	Behavior    AIBehavior `json:"behavior"`
	State       AIState    `json:"state"`
	PursuitLeft int        `json:"pursuitLeft"`
	LastKnown   Point      `json:"lastKnown"`
}

func NewMonsterAI() *MonsterAI {
	return &MonsterAI{Behavior: BehaviorBasic, State: AIStateIdle}
}

// Spot фиксирует, что игрок замечен в точке p.
func (ai *MonsterAI) Spot(p Point) {
	ai.State = AIStateChasing
	ai.PursuitLeft = PursuitTimeout
	ai.LastKnown = p
}

// LoseSight тратит один ход памяти. Возвращает true, если преследование продолжается.
func (ai *MonsterAI) LoseSight() bool {
	if ai.State != AIStateChasing {
		return false
	}
	ai.PursuitLeft--
	if ai.PursuitLeft <= 0 {
		ai.GiveUp()
		return false
	}
	return true
}

// GiveUp возвращает монстра в Idle.
func (ai *MonsterAI) GiveUp() {
	ai.State = AIStateIdle
	ai.PursuitLeft = 0
}
