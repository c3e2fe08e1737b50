package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/api"
)

// ParseIntent переводит команду клиента в намерение игрока.
func ParseIntent(cmd api.ClientCommand) (domain.PlayerIntent, error) {
	kind := domain.ParseIntentKind(cmd.Action)

	switch kind {
	case domain.IntentUnknown:
		return domain.PlayerIntent{}, fmt.Errorf("unknown action %q", cmd.Action)

	case domain.IntentMove:
		var p api.DirectionPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return domain.PlayerIntent{}, err
		}
		return domain.Move(domain.DirectionFromDelta(p.Dx, p.Dy)), nil

	case domain.IntentUseItem, domain.IntentDropItem:
		var p api.ItemPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return domain.PlayerIntent{}, err
		}
		if kind == domain.IntentUseItem {
			return domain.UseItem(p.Index), nil
		}
		return domain.DropItem(p.Index), nil

	case domain.IntentUnequipItem:
		var p api.SlotPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return domain.PlayerIntent{}, err
		}
		slot := domain.EquipmentSlot(strings.ToLower(p.Slot))
		if !slot.Valid() {
			return domain.PlayerIntent{}, fmt.Errorf("unknown slot %q", p.Slot)
		}
		return domain.UnequipItem(slot), nil

	case domain.IntentSelectTarget:
		var p api.PositionPayload
		if err := decodePayload(cmd.Payload, &p); err != nil {
			return domain.PlayerIntent{}, err
		}
		return domain.SelectTarget(domain.Point{X: p.X, Y: p.Y}), nil
	}

	// Остальные намерения без данных
	return domain.PlayerIntent{Kind: kind}, nil
}

// decodePayload разбирает и проверяет payload.
func decodePayload(raw json.RawMessage, dst api.Validator) error {
	if len(raw) == 0 {
		return fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return dst.Validate()
}

// BuildResponse конвертирует снапшот движка в DTO.
func BuildResponse(snap domain.GameSnapshot) api.ServerResponse {
	resp := api.ServerResponse{
		Type:         api.TypeUpdate,
		RunID:        snap.RunID,
		RunState:     string(snap.RunState),
		Mode:         string(snap.Mode),
		Depth:        snap.Depth,
		Tick:         snap.Tick,
		Grid:         &api.GridMeta{Width: snap.Width, Height: snap.Height},
		Map:          make([]api.TileView, 0),
		Entities:     make([]api.EntityView, 0, len(snap.Renderables)),
		Logs:         make([]api.LogEntry, 0, len(snap.LogTail)),
		Inventory:    make([]api.ItemView, 0, len(snap.Inventory)),
		Equipment:    &api.EquipmentView{},
		Terminal:     snap.Terminal,
		Transitioned: snap.Transitioned,
	}

	// 1. Карта: только исследованные тайлы
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			tile := snap.TileAt(x, y)
			if !tile.Revealed {
				continue
			}
			color := tile.Kind.Color()
			if !tile.Visible {
				color = color.Scale(0.4)
			}
			resp.Map = append(resp.Map, api.TileView{
				X: x, Y: y,
				Symbol:     string(tile.Kind.Glyph()),
				Color:      color.Hex(),
				IsWall:     tile.Kind == domain.TileWall,
				IsVisible:  tile.Visible,
				IsExplored: true,
			})
		}
	}

	// 2. Сущности
	for _, r := range snap.Renderables {
		view := api.EntityView{ID: r.ID.String(), Name: r.Name}
		view.Pos.X = r.X
		view.Pos.Y = r.Y
		view.Render.Symbol = string(r.Glyph)
		view.Render.Color = r.FG.Hex()
		view.Render.Order = r.RenderOrder
		resp.Entities = append(resp.Entities, view)
	}

	for _, l := range snap.LogTail {
		resp.Logs = append(resp.Logs, api.LogEntry{Tick: l.Tick, Text: l.Text, Type: l.Type})
	}

	// 3. Игрок
	resp.Player = &api.StatsView{
		HP:      snap.PlayerHP,
		MaxHP:   snap.PlayerMaxHP,
		Power:   snap.PlayerPower,
		Defense: snap.PlayerDefense,
		Hunger:  string(snap.Hunger),
		IsDead:  snap.Terminal,
	}
	for i, it := range snap.Inventory {
		resp.Inventory = append(resp.Inventory, api.ItemView{Index: i, ID: it.ID.String(), Name: it.Name})
	}
	if it, ok := snap.Equipped[domain.SlotWeapon]; ok {
		resp.Equipment.Weapon = &api.ItemView{Index: -1, ID: it.ID.String(), Name: it.Name}
	}
	if it, ok := snap.Equipped[domain.SlotShield]; ok {
		resp.Equipment.Shield = &api.ItemView{Index: -1, ID: it.ID.String(), Name: it.Name}
	}

	if t := snap.Targeting; t != nil {
		view := &api.TargetingView{
			ItemIndex: t.ItemIndex,
			Range:     t.Range,
			Radius:    t.Radius,
			Cells:     make([]api.PositionPayload, 0, len(t.Cells)),
		}
		for _, c := range t.Cells {
			view.Cells = append(view.Cells, api.PositionPayload{X: c.X, Y: c.Y})
		}
		resp.Targeting = view
	}

	return resp
}

// ErrorResponse - ответ с ошибкой протокола или сессии.
func ErrorResponse(err error) api.ServerResponse {
	return api.ServerResponse{Type: api.TypeError, Error: err.Error()}
}
