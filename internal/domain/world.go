package domain

import (
	"cmp"
	"fmt"
	"slices"

	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// World - хранилище состояния забега. Владеет всеми сущностями, картой
// текущего уровня и журналом. Случайных величин в правилах нет:
// генерация уровня берёт свой RNG из (сид, глубина).
// Мутирует его только активная фаза планировщика.
type World struct {
	RunID      uuid.UUID
	Seed       uint64
	Depth      int
	Tick       int
	PlayerDead bool

	Map *Map
	Log *GameLog

	entities    map[types.EntityID]*Entity
	generations []uint16 // индекс слота -> текущее поколение; слот 0 зарезервирован
	free        []uint32
	pending     map[types.EntityID]struct{}
	playerID    types.EntityID
}

// NewWorld создает пустой мир для нового забега.
func NewWorld(seed uint64) *World {
	return &World{
		RunID:       uuid.New(),
		Seed:        seed,
		Depth:       1,
		Log:         NewGameLog(),
		entities:    make(map[types.EntityID]*Entity),
		generations: []uint16{0},
		free:        make([]uint32, 0),
		pending:     make(map[types.EntityID]struct{}),
	}
}

// --- ЖИЗНЕННЫЙ ЦИКЛ СУЩНОСТЕЙ ---

// Spawn выдает сущности новый ID и регистрирует её в мире.
func (w *World) Spawn(e *Entity) types.EntityID {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.generations))
		w.generations = append(w.generations, 0)
	}

	e.ID = types.PackEntityID(w.generations[idx], idx)
	w.entities[e.ID] = e

	if e.Player != nil {
		w.playerID = e.ID
	}
	if e.Position != nil {
		e.Position.Level = w.Depth
	}
	if e.Viewshed != nil {
		e.Viewshed.Dirty = true
	}
	w.indexEntity(e)

	return e.ID
}

// Destroy немедленно удаляет сущность и освобождает слот.
// Поколение слота растёт, поэтому старые ссылки перестают резолвиться.
func (w *World) Destroy(id types.EntityID) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	w.unindexEntity(e)
	delete(w.entities, id)
	delete(w.pending, id)

	idx := id.Index()
	w.generations[idx]++
	w.free = append(w.free, idx)

	if id == w.playerID {
		w.playerID = types.NilEntityID
	}
}

// MarkDead откладывает удаление до MapRefresh, чтобы не ломать
// текущий обход сущностей. Клетка освобождается сразу.
func (w *World) MarkDead(id types.EntityID) {
	e, ok := w.entities[id]
	if !ok || e.Player != nil {
		return
	}
	w.pending[id] = struct{}{}
	if p, ok := e.Point(); ok && w.Map != nil {
		w.refreshBlocked(p)
	}
}

func (w *World) IsPendingRemoval(id types.EntityID) bool {
	_, ok := w.pending[id]
	return ok
}

// Flush удаляет всех помеченных и возвращает их ID по возрастанию.
func (w *World) Flush() []types.EntityID {
	ids := make([]types.EntityID, 0, len(w.pending))
	for id := range w.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		w.Destroy(id)
	}
	if len(ids) > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component": "world",
			"removed":   len(ids),
			"tick":      w.Tick,
		}).Debug("Dead entities flushed.")
	}
	return ids
}

// --- ЗАПРОСЫ ---

// Get возвращает сущность или nil. Устаревший ID (чужое поколение) не найдётся.
func (w *World) Get(id types.EntityID) *Entity {
	return w.entities[id]
}

// MustGet - Get для ссылок, которые обязаны резолвиться (инвентарь,
// экипировка, цель атаки). Висячая ссылка - нарушение инварианта.
func (w *World) MustGet(id types.EntityID) (*Entity, error) {
	if e, ok := w.entities[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %w: %s", ErrInvariantViolation, ErrEntityNotFound, id)
}

// Alive - сущность существует и не помечена на удаление.
func (w *World) Alive(id types.EntityID) bool {
	_, ok := w.entities[id]
	return ok && !w.IsPendingRemoval(id)
}

// Len - число сущностей, включая помеченных.
func (w *World) Len() int {
	return len(w.entities)
}

// Query возвращает живые сущности, удовлетворяющие фильтру, по возрастанию ID.
func (w *World) Query(filter func(*Entity) bool) []*Entity {
	out := make([]*Entity, 0)
	for id, e := range w.entities {
		if w.IsPendingRemoval(id) {
			continue
		}
		if filter == nil || filter(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *Entity) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Monsters - все живые монстры по возрастанию ID.
func (w *World) Monsters() []*Entity {
	return w.Query(func(e *Entity) bool { return e.MonsterAI != nil && e.IsAlive() })
}

func (w *World) PlayerID() types.EntityID {
	return w.playerID
}

// Player возвращает сущность игрока или nil.
func (w *World) Player() *Entity {
	return w.entities[w.playerID]
}

// EntitiesAt возвращает живые сущности в клетке по возрастанию ID.
func (w *World) EntitiesAt(p Point) []*Entity {
	if w.Map == nil {
		return nil
	}
	ids := w.Map.Content(p)
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if e := w.entities[id]; e != nil && !w.IsPendingRemoval(id) {
			out = append(out, e)
		}
	}
	return out
}

// BlockerAt возвращает сущность, занимающую клетку.
func (w *World) BlockerAt(p Point) *Entity {
	for _, e := range w.EntitiesAt(p) {
		if e.BlocksTile != nil {
			return e
		}
	}
	return nil
}

// Carried - предметы владельца: инвентарь, затем экипировка.
func (w *World) Carried(owner *Entity) []types.EntityID {
	out := make([]types.EntityID, 0)
	if owner.Inventory != nil {
		out = append(out, owner.Inventory.Items...)
	}
	if owner.Equipped != nil {
		out = append(out, owner.Equipped.Items()...)
	}
	return out
}

// Logf пишет сообщение в игровой журнал с текущим тиком.
func (w *World) Logf(typ, format string, args ...any) {
	w.Log.Add(w.Tick, typ, fmt.Sprintf(format, args...))
}

// --- ПОЗИЦИИ И ИНДЕКСЫ ---

// Move переставляет сущность и помечает её зрение устаревшим.
func (w *World) Move(e *Entity, to Point) {
	w.unindexEntity(e)
	e.Position.X, e.Position.Y = to.X, to.Y
	w.indexEntity(e)
	if e.Viewshed != nil {
		e.Viewshed.Dirty = true
	}
}

// Place ставит сущность на карту (выброшенный предмет).
func (w *World) Place(e *Entity, at Point) {
	w.unindexEntity(e)
	e.Position = &Position{Level: w.Depth, X: at.X, Y: at.Y}
	w.indexEntity(e)
}

// Lift убирает сущность с карты (подобранный предмет).
func (w *World) Lift(e *Entity) {
	w.unindexEntity(e)
	e.Position = nil
}

// ReplaceMap подменяет уровень. Все позиции переходят на новую глубину,
// индексы пересобираются, всё зрение помечается устаревшим.
func (w *World) ReplaceMap(m *Map) {
	w.Map = m
	w.Depth = m.Depth
	for _, e := range w.entities {
		if e.Position != nil {
			e.Position.Level = m.Depth
		}
		if e.Viewshed != nil {
			e.Viewshed.Dirty = true
		}
	}
	w.Reindex()
}

// Reindex пересобирает индексы занятости и содержимого клеток.
func (w *World) Reindex() {
	if w.Map == nil {
		return
	}
	w.Map.resetIndex()
	for _, e := range w.Query(nil) {
		w.indexEntity(e)
	}
}

func (w *World) indexEntity(e *Entity) {
	if w.Map == nil || e.Position == nil {
		return
	}
	p := e.Position.Point()
	if !w.Map.InBounds(p) {
		return
	}
	idx := w.Map.Index(p.X, p.Y)
	cell := append(w.Map.content[idx], e.ID)
	slices.Sort(cell)
	w.Map.content[idx] = cell
	if e.BlocksTile != nil && !w.IsPendingRemoval(e.ID) {
		w.Map.Blocked[idx] = true
	}
}

func (w *World) unindexEntity(e *Entity) {
	if w.Map == nil || e.Position == nil {
		return
	}
	p := e.Position.Point()
	if !w.Map.InBounds(p) {
		return
	}
	idx := w.Map.Index(p.X, p.Y)
	w.Map.content[idx] = slices.DeleteFunc(w.Map.content[idx], func(id types.EntityID) bool {
		return id == e.ID
	})
	w.refreshBlocked(p)
}

func (w *World) refreshBlocked(p Point) {
	idx := w.Map.Index(p.X, p.Y)
	w.Map.Blocked[idx] = false
	for _, id := range w.Map.content[idx] {
		if e := w.entities[id]; e != nil && e.BlocksTile != nil && !w.IsPendingRemoval(id) {
			w.Map.Blocked[idx] = true
			return
		}
	}
}
