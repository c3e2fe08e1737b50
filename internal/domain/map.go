package domain

import (
	"cognitive-crawler/internal/core/types"

	"github.com/zyedidia/generic/mapset"
)

// Размеры карты по умолчанию.
const (
	MapWidth  = 80
	MapHeight = 43
)

// TileKind - тип клетки.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDownStairs
)

func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileDownStairs:
		return "stairs"
	default:
		return "wall"
	}
}

// Glyph - символ клетки для слоя представления.
func (k TileKind) Glyph() rune {
	switch k {
	case TileFloor:
		return '.'
	case TileDownStairs:
		return '>'
	default:
		return '#'
	}
}

// Color - цвет клетки в поле зрения. Вне поля зрения слой представления
// затемняет его.
func (k TileKind) Color() types.Color {
	switch k {
	case TileFloor:
		return types.ColorGray
	case TileDownStairs:
		return types.ColorCyan
	default:
		return types.ColorGreen
	}
}

// Tile - клетка карты.
type Tile struct {
	Kind     TileKind `json:"k"`
	Revealed bool     `json:"r,omitempty"` // игрок видел клетку хотя бы раз
	Visible  bool     `json:"v,omitempty"` // объединённая видимость в этом ходу
}

func (t Tile) IsWalkable() bool {
	return t.Kind != TileWall
}

// Rect - комната. Стены по периметру, пол внутри.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects учитывает и касание, чтобы между комнатами оставалась стена.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Interior - клетка пола внутри комнаты.
func (r Rect) Interior(p Point) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Map - сетка уровня плюс индексы занятости.
// Blocked и content не сериализуются: их пересобирает World.Reindex.
type Map struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Depth  int    `json:"depth"`
	Tiles  []Tile `json:"tiles"`
	Rooms  []Rect `json:"rooms"`
	Start  Point  `json:"start"`

	Blocked []bool `json:"-"`
	content [][]types.EntityID
}

// NewMap создает карту, целиком заполненную стенами.
func NewMap(width, height, depth int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		Depth:  depth,
		Tiles:  make([]Tile, width*height),
		Rooms:  make([]Rect, 0),
	}
	m.resetIndex()
	return m
}

func (m *Map) resetIndex() {
	m.Blocked = make([]bool, m.Width*m.Height)
	m.content = make([][]types.EntityID, m.Width*m.Height)
}

// Index - плоский индекс клетки (y*Width + x).
func (m *Map) Index(x, y int) int {
	return y*m.Width + x
}

func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// TileAt возвращает указатель на клетку или nil за границей.
func (m *Map) TileAt(p Point) *Tile {
	if !m.InBounds(p) {
		return nil
	}
	return &m.Tiles[m.Index(p.X, p.Y)]
}

// IsWall - стена или выход за границы.
func (m *Map) IsWall(p Point) bool {
	t := m.TileAt(p)
	return t == nil || t.Kind == TileWall
}

// IsOpaque - клетка блокирует взгляд.
func (m *Map) IsOpaque(p Point) bool {
	return m.IsWall(p)
}

// IsBlocked - стена или занято блокирующей сущностью.
func (m *Map) IsBlocked(p Point) bool {
	if !m.InBounds(p) {
		return true
	}
	idx := m.Index(p.X, p.Y)
	return m.Tiles[idx].Kind == TileWall || m.Blocked[idx]
}

// SetKind меняет тип клетки (используется генератором).
func (m *Map) SetKind(p Point, kind TileKind) {
	if t := m.TileAt(p); t != nil {
		t.Kind = kind
	}
}

// Content возвращает id сущностей в клетке (только для чтения).
func (m *Map) Content(p Point) []types.EntityID {
	if !m.InBounds(p) {
		return nil
	}
	return m.content[m.Index(p.X, p.Y)]
}

// FloorCount - число проходимых клеток.
func (m *Map) FloorCount() int {
	n := 0
	for _, t := range m.Tiles {
		if t.IsWalkable() {
			n++
		}
	}
	return n
}

// RevealAll открывает всю карту (свиток магической карты).
func (m *Map) RevealAll() {
	for i := range m.Tiles {
		m.Tiles[i].Revealed = true
	}
}

// ReachableFrom возвращает все проходимые клетки, достижимые из start
// по 8 направлениям (как ходит игрок). Сущности не учитываются.
func (m *Map) ReachableFrom(start Point) mapset.Set[Point] {
	visited := mapset.New[Point]()
	if m.IsWall(start) {
		return visited
	}

	queue := []Point{start}
	visited.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := current.Add(dx, dy)
				if (dx == 0 && dy == 0) || m.IsWall(n) || visited.Has(n) {
					continue
				}
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// IsConnected проверяет, что каждая проходимая клетка достижима из start.
func (m *Map) IsConnected(start Point) bool {
	return m.ReachableFrom(start).Size() == m.FloorCount()
}
