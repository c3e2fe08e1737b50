package dungeon

import (
	"cognitive-crawler/internal/domain"
)

// RoomBasedStart ставит игрока в центр первой комнаты.
type RoomBasedStart struct{}

func (RoomBasedStart) Apply(b *LevelBuilder) {
	if len(b.rooms) == 0 {
		return
	}
	b.m.Start = b.rooms[0].Center()
	b.used[b.m.Start] = true
}

// CullUnreachable заливает стеной всё, до чего нельзя дойти от старта.
type CullUnreachable struct{}

func (CullUnreachable) Apply(b *LevelBuilder) {
	if len(b.rooms) == 0 {
		return
	}
	reach := b.m.ReachableFrom(b.m.Start)
	for y := 0; y < b.m.Height; y++ {
		for x := 0; x < b.m.Width; x++ {
			p := domain.Point{X: x, Y: y}
			if !b.m.IsWall(p) && !reach.Has(p) {
				b.m.SetKind(p, domain.TileWall)
			}
		}
	}
}

// RoomBasedStairs ставит спуск в центр последней комнаты.
type RoomBasedStairs struct{}

func (RoomBasedStairs) Apply(b *LevelBuilder) {
	if len(b.rooms) < 2 {
		return
	}
	stairs := b.rooms[len(b.rooms)-1].Center()
	b.m.SetKind(stairs, domain.TileDownStairs)
	b.used[stairs] = true
}

// RoomBasedSpawner наполняет все комнаты, кроме первой, по таблице.
// Число записей на комнату: 1d7 + (depth-1) - 3.
type RoomBasedSpawner struct {
	Table *SpawnTable
}

func (s RoomBasedSpawner) Apply(b *LevelBuilder) {
	for i := 1; i < len(b.rooms); i++ {
		room := b.rooms[i]
		count := b.rng.Roll(1, 7) + (b.depth - 1) - 3

		for j := 0; j < count; j++ {
			name := s.Table.Roll(b.rng)
			if name == "" {
				continue
			}

			// Пробуем найти свободную клетку (макс SpawnAttempts попыток)
			at, found := b.freeTileIn(room)
			if !found {
				continue // Пропускаем запись, если не нашли место
			}
			b.used[at] = true
			b.spawns = append(b.spawns, Spawn{Template: name, At: at})
		}
	}
}
