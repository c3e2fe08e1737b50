package domain

import "math"

// Point - координата клетки на карте текущего уровня.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add возвращает новую точку со смещением.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan - расстояние L1, эвристика A*.
func (p Point) Manhattan(other Point) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Chebyshev - число шагов при 8-связном движении.
func (p Point) Chebyshev(other Point) int {
	return max(abs(p.X-other.X), abs(p.Y-other.Y))
}

// DistanceSquaredTo возвращает квадрат расстояния для сравнения без корней.
func (p Point) DistanceSquaredTo(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// DistanceTo возвращает евклидово расстояние.
func (p Point) DistanceTo(other Point) float64 {
	return math.Sqrt(float64(p.DistanceSquaredTo(other)))
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ).
func (p Point) IsAdjacent(other Point) bool {
	return p != other && p.Chebyshev(other) == 1
}

// Position - компонент положения. Level совпадает с World.Depth
// у всех живых сущностей: в памяти держится только один уровень.
type Position struct {
	Level int `json:"level"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

func (p Position) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
