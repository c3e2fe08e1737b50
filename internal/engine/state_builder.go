package engine

import (
	"cmp"
	"slices"

	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/systems"
)

// Snapshot собирает неизменяемый "снимок" мира глазами игрока.
func (s *Session) Snapshot() domain.GameSnapshot {
	w := s.World
	player := w.Player()

	snap := domain.GameSnapshot{
		RunID:        w.RunID.String(),
		RunState:     s.State(),
		Mode:         s.mode,
		Depth:        w.Depth,
		Tick:         w.Tick,
		LogTail:      w.Log.Tail(domain.LogTailSize),
		Inventory:    make([]domain.ItemView, 0),
		Equipped:     make(map[domain.EquipmentSlot]domain.ItemView),
		Renderables:  make([]domain.RenderableView, 0),
		Terminal:     s.State() == domain.RunGameOver,
		Transitioned: s.transitioned,
	}

	// 1. Карта: туман войны по Revealed, поле зрения игрока по его Viewshed
	var sight *domain.Viewshed
	if player != nil {
		sight = player.Viewshed
	}
	if m := w.Map; m != nil {
		snap.Width, snap.Height = m.Width, m.Height
		snap.Tiles = make([]domain.TileView, len(m.Tiles))
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				idx := m.Index(x, y)
				tile := m.Tiles[idx]
				snap.Tiles[idx] = domain.TileView{
					Kind:     tile.Kind,
					Revealed: tile.Revealed,
					Visible:  sight != nil && sight.CanSee(domain.Point{X: x, Y: y}),
					Lit:      tile.Visible,
				}
			}
		}
	}

	// 2. Сущности: себя видим всегда, остальных - если клетка в поле зрения
	for _, e := range w.Query(func(e *domain.Entity) bool {
		return e.Renderable != nil && e.Position != nil && e.Hidden == nil
	}) {
		p := e.Position.Point()
		if !e.IsPlayer() && (sight == nil || !sight.CanSee(p)) {
			continue
		}
		snap.Renderables = append(snap.Renderables, domain.RenderableView{
			ID:          e.ID,
			X:           p.X,
			Y:           p.Y,
			Glyph:       e.Renderable.Glyph,
			FG:          e.Renderable.FG,
			BG:          e.Renderable.BG,
			RenderOrder: e.Renderable.RenderOrder,
			Name:        e.DisplayName(),
		})
	}
	slices.SortStableFunc(snap.Renderables, func(a, b domain.RenderableView) int {
		if c := cmp.Compare(a.RenderOrder, b.RenderOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if player == nil {
		return snap
	}

	// 3. Характеристики с учетом экипировки
	if player.Health != nil {
		snap.PlayerHP = player.Health.Current
		snap.PlayerMaxHP = player.Health.Max
	}
	snap.PlayerPower = systems.EffectivePower(w, player)
	snap.PlayerDefense = systems.EffectiveDefense(w, player)
	if player.HungerClock != nil {
		snap.Hunger = player.HungerClock.State
	}

	// 4. Инвентарь и экипировка
	if player.Inventory != nil {
		for _, id := range player.Inventory.Items {
			snap.Inventory = append(snap.Inventory, itemView(w, id, false))
		}
	}
	if player.Equipped != nil {
		for _, slot := range domain.EquipmentSlots {
			if id, ok := player.Equipped.Get(slot); ok {
				snap.Equipped[slot] = itemView(w, id, true)
			}
		}
	}

	// 5. Прицеливание
	if s.mode == domain.ModeTargeting && s.targeting != nil {
		snap.Targeting = &domain.TargetingView{
			ItemIndex: s.targeting.ItemIndex,
			Range:     s.targeting.Range,
			Radius:    s.targeting.Radius,
			Cells:     systems.TargetCells(w, player, s.targeting.Range),
		}
	}

	return snap
}

func itemView(w *domain.World, id types.EntityID, equipped bool) domain.ItemView {
	view := domain.ItemView{ID: id, Name: "???", Equipped: equipped}
	if e := w.Get(id); e != nil {
		view.Name = e.DisplayName()
	}
	return view
}
