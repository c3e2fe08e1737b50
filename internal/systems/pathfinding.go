package systems

import (
	"cognitive-crawler/internal/domain"

	"github.com/zyedidia/generic/heap"
)

// Порядок раскрытия соседей фиксирован: N, E, S, W.
var pathNeighbours = [4]domain.Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

type pathNode struct {
	p   domain.Point
	g   int
	h   int
	seq int
}

func (n pathNode) f() int { return n.g + n.h }

// Меньший f, затем меньший h, затем порядок вставки.
func lessPathNode(a, b pathNode) bool {
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

// FindPath ищет кратчайший путь A* по 4-связной сетке.
// Стены и занятые клетки непроходимы, кроме самой цели.
// Результат не включает стартовую клетку; nil, если пути нет.
func FindPath(m *domain.Map, from, to domain.Point) []domain.Point {
	if from == to || !m.InBounds(from) || m.IsWall(to) {
		return nil
	}

	open := heap.New[pathNode](lessPathNode)
	cameFrom := make(map[domain.Point]domain.Point)
	gScore := map[domain.Point]int{from: 0}
	closed := make(map[domain.Point]bool)

	seq := 0
	open.Push(pathNode{p: from, h: from.Manhattan(to), seq: seq})

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed[cur.p] {
			continue
		}
		if cur.p == to {
			return reconstructPath(cameFrom, from, to)
		}
		closed[cur.p] = true

		for _, d := range pathNeighbours {
			next := cur.p.Add(d.X, d.Y)
			if closed[next] || !m.InBounds(next) {
				continue
			}
			if next != to && m.IsBlocked(next) {
				continue
			}

			g := cur.g + 1
			if old, seen := gScore[next]; seen && g >= old {
				continue
			}
			gScore[next] = g
			cameFrom[next] = cur.p

			seq++
			open.Push(pathNode{p: next, g: g, h: next.Manhattan(to), seq: seq})
		}
	}

	return nil
}

func reconstructPath(cameFrom map[domain.Point]domain.Point, from, to domain.Point) []domain.Point {
	path := []domain.Point{to}
	for cur := to; cur != from; {
		cur = cameFrom[cur]
		if cur != from {
			path = append(path, cur)
		}
	}
	// Разворачиваем: от первого шага к цели
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
