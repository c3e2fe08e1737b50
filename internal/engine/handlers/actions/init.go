package actions

import (
	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/engine/handlers/events"
)

// Registry - команды, которые тратят ход (или пытаются).
// Команды меню и прицеливания обрабатывает сам движок.
func Registry() map[domain.IntentKind]handlers.HandlerFunc {
	return map[domain.IntentKind]handlers.HandlerFunc{
		domain.IntentMove:          HandleMove,
		domain.IntentWait:          HandleWait,
		domain.IntentPickUp:        HandlePickup,
		domain.IntentUseItem:       handlers.WithItem(HandleUse),
		domain.IntentDropItem:      handlers.WithItem(HandleDrop),
		domain.IntentUnequipItem:   HandleUnequip,
		domain.IntentDescendStairs: events.HandleDescend,
	}
}
