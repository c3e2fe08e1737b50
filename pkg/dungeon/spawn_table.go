package dungeon

import (
	"cognitive-crawler/internal/domain"
)

// SpawnEntry - ключ шаблона и его вес.
type SpawnEntry struct {
	Name   string
	Weight int
}

// SpawnTable - взвешенная таблица. Записи с весом <= 0 исключаются.
type SpawnTable struct {
	entries []SpawnEntry
	total   int
}

func NewSpawnTable() *SpawnTable {
	return &SpawnTable{entries: make([]SpawnEntry, 0)}
}

// Add добавляет запись; неположительный вес игнорируется.
func (t *SpawnTable) Add(name string, weight int) *SpawnTable {
	if weight > 0 {
		t.entries = append(t.entries, SpawnEntry{Name: name, Weight: weight})
		t.total += weight
	}
	return t
}

func (t *SpawnTable) Entries() []SpawnEntry {
	return t.entries
}

// Roll выбирает ключ пропорционально весам. Пустая таблица даёт "".
func (t *SpawnTable) Roll(rng *domain.RNG) string {
	if t.total == 0 {
		return ""
	}
	r := rng.IntN(t.total)
	for _, e := range t.entries {
		if r < e.Weight {
			return e.Name
		}
		r -= e.Weight
	}
	return ""
}

// RoomTable - таблица спавна для глубины depth.
func RoomTable(depth int) *SpawnTable {
	return NewSpawnTable().
		Add("goblin", 10).
		Add("orc", 1+depth).
		Add("health_potion", 7).
		Add("fireball_scroll", 2+depth).
		Add("confusion_scroll", 2+depth).
		Add("magic_missile_scroll", 4).
		Add("dagger", 3).
		Add("shield", 3).
		Add("longsword", depth-5).
		Add("tower_shield", depth-5).
		Add("rations", 10).
		Add("magic_mapping_scroll", 2).
		Add("bear_trap", 2)
}
