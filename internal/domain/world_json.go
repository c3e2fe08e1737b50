package domain

import (
	"cmp"
	"encoding/json"
	"slices"

	"cognitive-crawler/internal/core/types"

	"github.com/google/uuid"
)

// worldJSON - полное состояние мира для сохранения.
type worldJSON struct {
	RunID       uuid.UUID        `json:"runId"`
	Seed        uint64           `json:"seed"`
	Depth       int              `json:"depth"`
	Tick        int              `json:"tick"`
	PlayerDead  bool             `json:"playerDead"`
	Map         *Map             `json:"map"`
	Log         *GameLog         `json:"log"`
	Entities    []*Entity        `json:"entities"`
	Generations []uint16         `json:"generations"`
	Free        []uint32         `json:"free"`
	Pending     []types.EntityID `json:"pending"`
}

// MarshalJSON пишет сущности по возрастанию ID, поэтому одинаковые миры
// дают одинаковые байты.
func (w *World) MarshalJSON() ([]byte, error) {
	all := make([]*Entity, 0, len(w.entities))
	for _, e := range w.entities {
		all = append(all, e)
	}
	slices.SortFunc(all, func(a, b *Entity) int { return cmp.Compare(a.ID, b.ID) })

	pending := make([]types.EntityID, 0, len(w.pending))
	for id := range w.pending {
		pending = append(pending, id)
	}
	slices.Sort(pending)

	return json.Marshal(worldJSON{
		RunID:       w.RunID,
		Seed:        w.Seed,
		Depth:       w.Depth,
		Tick:        w.Tick,
		PlayerDead:  w.PlayerDead,
		Map:         w.Map,
		Log:         w.Log,
		Entities:    all,
		Generations: w.generations,
		Free:        w.free,
		Pending:     pending,
	})
}

// UnmarshalJSON восстанавливает мир и пересобирает индексы карты.
// Инварианты не проверяются: это делает вызывающий через Validate.
func (w *World) UnmarshalJSON(data []byte) error {
	var raw worldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	w.RunID = raw.RunID
	w.Seed = raw.Seed
	w.Depth = raw.Depth
	w.Tick = raw.Tick
	w.PlayerDead = raw.PlayerDead
	w.Map = raw.Map
	w.Log = raw.Log
	w.generations = raw.Generations
	w.free = raw.Free
	w.entities = make(map[types.EntityID]*Entity, len(raw.Entities))
	w.pending = make(map[types.EntityID]struct{}, len(raw.Pending))
	w.playerID = types.NilEntityID

	if w.Log == nil {
		w.Log = NewGameLog()
	}
	if w.free == nil {
		w.free = make([]uint32, 0)
	}
	if len(w.generations) == 0 {
		w.generations = []uint16{0}
	}

	for _, e := range raw.Entities {
		if e == nil {
			continue
		}
		w.entities[e.ID] = e
		if e.Player != nil {
			w.playerID = e.ID
		}
		// Слот должен существовать в аллокаторе, иначе следующий Spawn выдаст дубликат.
		for int(e.ID.Index()) >= len(w.generations) {
			w.generations = append(w.generations, 0)
		}
	}
	for _, id := range raw.Pending {
		w.pending[id] = struct{}{}
	}

	w.Reindex()
	return nil
}
