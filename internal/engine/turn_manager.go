package engine

import (
	"container/heap"

	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TurnManager раздаёт ходы монстрам в фазе MonsterTurn.
// Очередь заполняется заново в начале каждой фазы.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[types.EntityID]*TurnItem
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[types.EntityID]*TurnItem),
	}
}

// Schedule ставит в очередь всех живых монстров мира.
func (tm *TurnManager) Schedule(w *domain.World) {
	tm.Reset()
	for _, m := range w.Monsters() {
		tm.AddEntity(m.ID)
	}
	logger.Log.WithFields(logrus.Fields{
		"component": "turn_manager",
		"tick":      w.Tick,
		"queued":    tm.Len(),
	}).Debug("Monster turns scheduled")
}

// AddEntity registers an entity in the turn system.
func (tm *TurnManager) AddEntity(id types.EntityID) {
	if _, exists := tm.itemMap[id]; exists {
		return
	}
	item := &TurnItem{ID: id, Priority: id}
	heap.Push(&tm.queue, item)
	tm.itemMap[id] = item
}

// Next снимает с очереди следующего монстра.
func (tm *TurnManager) Next() (types.EntityID, bool) {
	if tm.queue.Len() == 0 {
		return types.NilEntityID, false
	}
	item := heap.Pop(&tm.queue).(*TurnItem)
	delete(tm.itemMap, item.ID)
	return item.ID, true
}

// Reset очищает очередь.
func (tm *TurnManager) Reset() {
	tm.queue = tm.queue[:0]
	clear(tm.itemMap)
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}
