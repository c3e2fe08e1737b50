package engine

import (
	"container/heap"

	"cognitive-crawler/internal/core/types"
)

// TurnItem обертка для элемента очереди приоритетов
type TurnItem struct {
	ID       types.EntityID // Монстр, которому положен ход
	Priority types.EntityID // Чем меньше, тем раньше ход. Сейчас это сам ID.
	Index    int            // Индекс в куче (нужен для heap.Remove)
}

// TurnQueue реализует heap.Interface и хранит TurnItems
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	// MinHeap: порядок ходов монстров - по возрастанию ID
	return pq[i].Priority < pq[j].Priority
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x any) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

var _ heap.Interface = (*TurnQueue)(nil)
