package dungeon

import (
	"cmp"
	"slices"

	"cognitive-crawler/internal/domain"
)

// Параметры BSP-разбиения
const (
	bspIterations = 240
	bspMinRoom    = 4
	bspMargin     = 2
)

// SimpleRooms - случайные непересекающиеся комнаты, каждая соединена
// с предыдущей L-образным коридором.
type SimpleRooms struct {
	MaxRooms int
}

func (SimpleRooms) Name() string { return "simple_rooms" }

func (s SimpleRooms) Build(b *LevelBuilder) {
	for i := 0; i < s.MaxRooms; i++ {
		w := b.rng.Range(MinSize, MaxSize)
		h := b.rng.Range(MinSize, MaxSize)
		x := b.rng.Range(1, b.width-w-1)
		y := b.rng.Range(1, b.height-h-1)

		newRoom := domain.Rect{X: x, Y: y, W: w, H: h}
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.m, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			b.connect(b.rooms[len(b.rooms)-1].Center(), newRoom.Center())
		}
		b.rooms = append(b.rooms, newRoom)
	}
}

// BSPRooms делит карту на прямоугольники и вписывает комнату в
// случайно выбранный. Комнаты сортируются слева направо и соединяются
// по цепочке коридорами между случайными клетками соседних комнат.
type BSPRooms struct {
	MaxRooms int
}

func (BSPRooms) Name() string { return "bsp_rooms" }

func (s BSPRooms) Build(b *LevelBuilder) {
	// 1. Исходная область с отступом от края
	whole := domain.Rect{X: bspMargin, Y: bspMargin, W: b.width - 5, H: b.height - 5}
	rects := splitRect(nil, whole)

	// 2. Комнаты в случайных ячейках разбиения
	for n := 0; n < bspIterations && len(b.rooms) < s.MaxRooms; n++ {
		cell := rects[b.rng.IntN(len(rects))]
		room, ok := s.roomIn(b, cell)
		if !ok || !s.canPlace(b, room) {
			continue
		}
		createRoom(b.m, room)
		b.rooms = append(b.rooms, room)
		rects = splitRect(rects, cell)
	}

	// 3. Цепочка коридоров слева направо
	slices.SortStableFunc(b.rooms, func(a, c domain.Rect) int {
		return cmp.Compare(a.X, c.X)
	})
	for i := 1; i < len(b.rooms); i++ {
		b.connect(randomInterior(b, b.rooms[i-1]), randomInterior(b, b.rooms[i]))
	}
}

func (BSPRooms) roomIn(b *LevelBuilder, cell domain.Rect) (domain.Rect, bool) {
	maxW := min(cell.W, MaxSize)
	maxH := min(cell.H, MaxSize)
	if maxW < bspMinRoom || maxH < bspMinRoom {
		return domain.Rect{}, false
	}
	return domain.Rect{
		X: cell.X + b.rng.IntN(6),
		Y: cell.Y + b.rng.IntN(6),
		W: b.rng.Range(bspMinRoom, maxW),
		H: b.rng.Range(bspMinRoom, maxH),
	}, true
}

// canPlace: комната вместе с рамкой в bspMargin клеток лежит в карте
// и целиком приходится на стены.
func (BSPRooms) canPlace(b *LevelBuilder, room domain.Rect) bool {
	for y := room.Y - bspMargin; y <= room.Y+room.H+bspMargin; y++ {
		for x := room.X - bspMargin; x <= room.X+room.W+bspMargin; x++ {
			if x < 1 || y < 1 || x >= b.width-1 || y >= b.height-1 {
				return false
			}
			if !b.m.IsWall(domain.Point{X: x, Y: y}) {
				return false
			}
		}
	}
	return true
}

// splitRect добавляет четыре четверти r.
func splitRect(rects []domain.Rect, r domain.Rect) []domain.Rect {
	hw := max(r.W/2, 1)
	hh := max(r.H/2, 1)
	return append(rects,
		domain.Rect{X: r.X, Y: r.Y, W: hw, H: hh},
		domain.Rect{X: r.X, Y: r.Y + hh, W: hw, H: hh},
		domain.Rect{X: r.X + hw, Y: r.Y, W: hw, H: hh},
		domain.Rect{X: r.X + hw, Y: r.Y + hh, W: hw, H: hh},
	)
}

func randomInterior(b *LevelBuilder, room domain.Rect) domain.Point {
	return domain.Point{
		X: b.rng.Range(room.X+1, room.X+room.W-1),
		Y: b.rng.Range(room.Y+1, room.Y+room.H-1),
	}
}
