package dungeon

import (
	"os"
	"reflect"
	"testing"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", "text")
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	level := Generate(1, 12345)
	m := level.Map

	// 1. Проверка размеров мира
	if m.Width != domain.MapWidth || m.Height != domain.MapHeight {
		t.Errorf("Expected map size %dx%d, got %dx%d", domain.MapWidth, domain.MapHeight, m.Width, m.Height)
	}

	// 2. Минимум комнат
	if len(m.Rooms) < MinRooms {
		t.Fatalf("Expected at least %d rooms, got %d", MinRooms, len(m.Rooms))
	}

	// 3. Проверка стартовой позиции
	if level.Start != m.Rooms[0].Center() {
		t.Errorf("Start %v is not the first room center %v", level.Start, m.Rooms[0].Center())
	}
	if m.IsWall(level.Start) {
		t.Errorf("Start position %v is inside a wall!", level.Start)
	}

	// 4. Лестница в центре последней комнаты
	stairs := m.Rooms[len(m.Rooms)-1].Center()
	if m.TileAt(stairs).Kind != domain.TileDownStairs {
		t.Errorf("Stairs not found at last room center %v", stairs)
	}
}

func TestGenerate_ConnectedAcrossSeeds(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		for _, depth := range []int{1, 4, 9} {
			level := Generate(depth, seed)
			m := level.Map

			reach := m.ReachableFrom(level.Start)
			if reach.Size() != m.FloorCount() {
				t.Fatalf("seed %d depth %d: %d of %d floor tiles reachable", seed, depth, reach.Size(), m.FloorCount())
			}

			for _, s := range level.Spawns {
				if m.IsWall(s.At) {
					t.Fatalf("seed %d depth %d: spawn %q in a wall at %v", seed, depth, s.Template, s.At)
				}
				if m.Rooms[0].Interior(s.At) {
					t.Fatalf("seed %d depth %d: spawn %q in the first room", seed, depth, s.Template)
				}
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(3, 777)
	b := Generate(3, 777)

	if !reflect.DeepEqual(a.Map.Tiles, b.Map.Tiles) {
		t.Error("same seed produced different tiles")
	}
	if !reflect.DeepEqual(a.Spawns, b.Spawns) {
		t.Error("same seed produced different spawns")
	}

	c := Generate(4, 777)
	if reflect.DeepEqual(a.Map.Tiles, c.Map.Tiles) {
		t.Error("different depths should produce different levels")
	}
}

func TestGenerateSized_ClampsToMinimum(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"tiny", 12, 12},
		{"narrow", 20, 60},
		{"flat", 80, 10},
		{"minimum", MinWidth, MinHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := GenerateSized(tt.width, tt.height, 1, 99)
			m := level.Map

			if m.Width < MinWidth || m.Height < MinHeight {
				t.Fatalf("size %dx%d below minimum %dx%d", m.Width, m.Height, MinWidth, MinHeight)
			}
			if m.Width < tt.width || m.Height < tt.height {
				t.Errorf("size %dx%d smaller than requested %dx%d", m.Width, m.Height, tt.width, tt.height)
			}
			if len(m.Rooms) < MinRooms {
				t.Fatalf("rooms = %d, want >= %d", len(m.Rooms), MinRooms)
			}
			if m.TileAt(level.Start).Kind == domain.TileDownStairs {
				t.Errorf("stairs placed on the start tile %v", level.Start)
			}
		})
	}
}

func TestStarters_Connected(t *testing.T) {
	for _, starter := range Starters {
		t.Run(starter.Name(), func(t *testing.T) {
			for seed := uint64(0); seed < 100; seed++ {
				level := NewLevel(3, seed).
					StartWith(starter).
					With(DefaultPasses(3)...).
					Build()
				m := level.Map

				if level.Builder != starter.Name() {
					t.Fatalf("builder = %q, want %q", level.Builder, starter.Name())
				}
				if len(m.Rooms) < 2 {
					t.Fatalf("seed %d: only %d rooms", seed, len(m.Rooms))
				}
				if level.Start != m.Rooms[0].Center() {
					t.Fatalf("seed %d: start %v is not the first room center", seed, level.Start)
				}
				stairs := m.Rooms[len(m.Rooms)-1].Center()
				if m.TileAt(stairs).Kind != domain.TileDownStairs {
					t.Fatalf("seed %d: no stairs at last room center %v", seed, stairs)
				}
				if !m.IsConnected(level.Start) {
					t.Fatalf("seed %d: map is not connected", seed)
				}
				for _, room := range m.Rooms {
					if !m.ReachableFrom(level.Start).Has(room.Center()) {
						t.Fatalf("seed %d: room %+v unreachable", seed, room)
					}
				}
			}
		})
	}
}

func TestGenerate_UsesEveryStarter(t *testing.T) {
	seen := make(map[string]bool)
	for seed := uint64(0); seed < 64; seed++ {
		seen[Generate(1, seed).Builder] = true
	}
	for _, s := range Starters {
		if !seen[s.Name()] {
			t.Errorf("starter %q never picked", s.Name())
		}
	}
}

// isolated - стартер с комнатой, до которой нет коридора.
type isolated struct{}

func (isolated) Name() string { return "isolated" }

func (isolated) Build(b *LevelBuilder) {
	rooms := []domain.Rect{
		{X: 1, Y: 1, W: 6, H: 6},
		{X: 20, Y: 1, W: 6, H: 6},
		{X: 30, Y: 12, W: 6, H: 6},
	}
	for _, r := range rooms {
		createRoom(b.m, r)
	}
	b.connect(rooms[0].Center(), rooms[1].Center())
	b.rooms = append(b.rooms, rooms[0], rooms[1])
}

func TestCullUnreachable(t *testing.T) {
	level := NewLevel(1, 5).
		WithSize(40, 25).
		StartWith(isolated{}).
		With(RoomBasedStart{}, CullUnreachable{}).
		Build()
	m := level.Map

	if !m.IsWall(domain.Point{X: 33, Y: 15}) {
		t.Error("unreachable room was not culled")
	}
	if m.IsWall(domain.Point{X: 23, Y: 4}) {
		t.Error("connected room was culled")
	}
	if !m.IsConnected(level.Start) {
		t.Error("map is not connected after culling")
	}
}

func TestRoomTable_ExcludesNonPositiveWeights(t *testing.T) {
	has := func(table *SpawnTable, name string) bool {
		for _, e := range table.Entries() {
			if e.Name == name {
				return true
			}
		}
		return false
	}

	shallow := RoomTable(1)
	if has(shallow, "longsword") || has(shallow, "tower_shield") {
		t.Error("depth-gated gear must not appear at depth 1")
	}
	if !has(RoomTable(6), "longsword") {
		t.Error("longsword must appear at depth 6")
	}

	rng := domain.NewRNG(1)
	for i := 0; i < 1000; i++ {
		if name := shallow.Roll(rng); name == "longsword" || name == "tower_shield" {
			t.Fatalf("rolled excluded entry %q", name)
		}
	}

	if got := NewSpawnTable().Add("x", 0).Roll(rng); got != "" {
		t.Errorf("empty table rolled %q", got)
	}
}

func TestTemplates_AllKeysSpawn(t *testing.T) {
	for _, e := range RoomTable(9).Entries() {
		tpl, ok := Templates[e.Name]
		if !ok {
			t.Fatalf("table entry %q has no template", e.Name)
		}
		ent := tpl.Spawn(domain.Point{X: 3, Y: 4})
		if ent.Position == nil || !ent.At(domain.Point{X: 3, Y: 4}) {
			t.Errorf("%s: wrong position", e.Name)
		}
	}

	// Экземпляры не делят компоненты с шаблоном
	a := HealthPotion.Spawn(domain.Point{})
	a.Item.Consumable.Effect.Amount = 99
	if HealthPotion.Item.Consumable.Effect.Amount == 99 {
		t.Error("spawned item aliases template component")
	}
}

func TestPopulate(t *testing.T) {
	level := Generate(2, 42)
	w := domain.NewWorld(42)
	w.ReplaceMap(level.Map)
	w.Spawn(CreatePlayer(level.Start))

	ids, err := Populate(w, level)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if len(ids) != len(level.Spawns) {
		t.Errorf("spawned %d, want %d", len(ids), len(level.Spawns))
	}
	if err := w.Validate(); err != nil {
		t.Errorf("populated world is invalid: %v", err)
	}

	_, err = Populate(w, Level{Spawns: []Spawn{{Template: "dragon"}}})
	if err == nil {
		t.Error("unknown template must fail")
	}
}

func TestRect_Intersects(t *testing.T) {
	r1 := domain.Rect{X: 0, Y: 0, W: 10, H: 10}
	r2 := domain.Rect{X: 5, Y: 5, W: 10, H: 10} // Пересекается
	r3 := domain.Rect{X: 20, Y: 20, W: 5, H: 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}
	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
}
