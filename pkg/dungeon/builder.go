package dungeon

import (
	"cognitive-crawler/internal/domain"
)

// Starter размечает пустую (сплошь стены) карту: вырезает комнаты
// и соединяет их коридорами. Комнаты складываются в b.rooms в том
// порядке, в котором они связаны.
type Starter interface {
	Name() string
	Build(b *LevelBuilder)
}

// MetaPass дорабатывает уже размеченную карту.
type MetaPass interface {
	Apply(b *LevelBuilder)
}

// Starters - все стартовые построители. Выбор делается по RNG уровня.
var Starters = []Starter{
	SimpleRooms{MaxRooms: MaxRooms},
	BSPRooms{MaxRooms: MaxRooms},
}

// LevelBuilder предоставляет fluent API для создания уровней:
// один Starter и цепочка MetaPass поверх него.
type LevelBuilder struct {
	depth   int
	seed    uint64
	width   int
	height  int
	rooms   []domain.Rect
	m       *domain.Map
	spawns  []Spawn
	used    map[domain.Point]bool
	rng     *domain.RNG
	starter Starter
	metas   []MetaPass
}

// NewLevel создает новый builder для уровня
func NewLevel(depth int, seed uint64) *LevelBuilder {
	return &LevelBuilder{
		depth:  depth,
		seed:   seed,
		width:  domain.MapWidth,
		height: domain.MapHeight,
		spawns: make([]Spawn, 0),
		used:   make(map[domain.Point]bool),
		rng:    domain.NewRNG(seed),
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// StartWith задаёт стартовый построитель.
func (b *LevelBuilder) StartWith(s Starter) *LevelBuilder {
	b.starter = s
	return b
}

// RandomStarter выбирает стартовый построитель по RNG уровня.
func (b *LevelBuilder) RandomStarter() *LevelBuilder {
	return b.StartWith(Starters[b.rng.IntN(len(Starters))])
}

// With добавляет мета-проходы в конец цепочки.
func (b *LevelBuilder) With(passes ...MetaPass) *LevelBuilder {
	b.metas = append(b.metas, passes...)
	return b
}

// Build прогоняет цепочку и собирает готовый уровень
func (b *LevelBuilder) Build() Level {
	// 1. Чистая карта из стен
	b.m = domain.NewMap(b.width, b.height, b.depth)
	b.rooms = b.rooms[:0]
	b.spawns = b.spawns[:0]
	clear(b.used)

	// 2. Стартовый построитель
	if b.starter == nil {
		b.starter = Starters[0]
	}
	b.starter.Build(b)
	b.m.Rooms = b.rooms

	// 3. Мета-проходы по порядку
	for _, pass := range b.metas {
		pass.Apply(b)
	}

	return Level{
		Map:     b.m,
		Spawns:  b.spawns,
		Start:   b.m.Start,
		Seed:    b.seed,
		Builder: b.starter.Name(),
	}
}

// DefaultPasses - стандартная цепочка мета-проходов после стартера.
func DefaultPasses(depth int) []MetaPass {
	return []MetaPass{
		RoomBasedStart{},
		CullUnreachable{},
		RoomBasedStairs{},
		RoomBasedSpawner{Table: RoomTable(depth)},
	}
}

// --- Helper functions ---

func (b *LevelBuilder) freeTileIn(room domain.Rect) (domain.Point, bool) {
	for attempt := 0; attempt < SpawnAttempts; attempt++ {
		p := domain.Point{
			X: b.rng.Range(room.X+1, room.X+room.W-1),
			Y: b.rng.Range(room.Y+1, room.Y+room.H-1),
		}
		if !b.used[p] && !b.m.IsWall(p) {
			return p, true
		}
	}
	return domain.Point{}, false
}

// connect прокладывает L-образный коридор; порядок колен - по монетке.
func (b *LevelBuilder) connect(from, to domain.Point) {
	if b.rng.IntN(2) == 0 {
		createHCorridor(b.m, from.X, to.X, from.Y)
		createVCorridor(b.m, from.Y, to.Y, to.X)
	} else {
		createVCorridor(b.m, from.Y, to.Y, from.X)
		createHCorridor(b.m, from.X, to.X, to.Y)
	}
}

func createRoom(m *domain.Map, room domain.Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			m.SetKind(domain.Point{X: x, Y: y}, domain.TileFloor)
		}
	}
}

func createHCorridor(m *domain.Map, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		m.SetKind(domain.Point{X: x, Y: y}, domain.TileFloor)
	}
}

func createVCorridor(m *domain.Map, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		m.SetKind(domain.Point{X: x, Y: y}, domain.TileFloor)
	}
}
