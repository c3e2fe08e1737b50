package systems

import (
	"errors"
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoInventory    = errors.New("actor has no inventory")
	ErrNotColocated   = errors.New("item is not under the actor")
	ErrInventoryFull  = errors.New("inventory is full")
	ErrNotInInventory = errors.New("item is not in the inventory")
	ErrNotEquippable  = errors.New("item is not equippable")
	ErrNotUsable      = errors.New("item cannot be used")
	ErrSlotEmpty      = errors.New("equipment slot is empty")
)

// ItemAt возвращает первый подбираемый предмет в клетке (ловушки не в счёт).
func ItemAt(w *domain.World, p domain.Point) *domain.Entity {
	for _, e := range w.EntitiesAt(p) {
		if e.IsItem() && e.Trigger == nil {
			return e
		}
	}
	return nil
}

// --- PICKUP ---

// Pickup переносит предмет с пола в конец инвентаря.
func Pickup(w *domain.World, actor, item *domain.Entity) error {
	if actor.Inventory == nil {
		return ErrNoInventory
	}
	if !item.IsItem() {
		return fmt.Errorf("pickup %s: %w", item.ID, ErrNotUsable)
	}
	at, ok := actor.Point()
	if !ok || !item.At(at) {
		return ErrNotColocated
	}
	if !actor.Inventory.Add(item.ID) {
		return ErrInventoryFull
	}

	w.Lift(item)
	w.Logf(domain.LogInfo, "%s подбирает %s.", capitalize(actor.DisplayName()), item.DisplayName())
	return nil
}

// --- DROP ---

// Drop кладёт предмет из инвентаря на клетку владельца.
func Drop(w *domain.World, actor, item *domain.Entity) error {
	if actor.Inventory == nil {
		return ErrNoInventory
	}
	at, ok := actor.Point()
	if !ok {
		return ErrNotColocated
	}
	if !actor.Inventory.Remove(item.ID) {
		return ErrNotInInventory
	}

	w.Place(item, at)
	w.Logf(domain.LogInfo, "%s выбрасывает %s.", capitalize(actor.DisplayName()), item.DisplayName())
	return nil
}

// --- EQUIP ---

// Equip надевает предмет из инвентаря. Если слот занят, старый предмет
// встаёт на место нового в инвентаре, так что ничего не теряется.
func Equip(w *domain.World, actor, item *domain.Entity) error {
	if actor.Inventory == nil {
		return ErrNoInventory
	}
	if item.Item == nil || item.Item.Equippable == nil {
		return ErrNotEquippable
	}
	idx := actor.Inventory.IndexOf(item.ID)
	if idx < 0 {
		return ErrNotInInventory
	}
	if actor.Equipped == nil {
		actor.Equipped = domain.NewEquipped()
	}

	slot := item.Item.Equippable.Slot
	old, occupied := actor.Equipped.Get(slot)
	actor.Equipped.Slots[slot] = item.ID

	if occupied {
		actor.Inventory.Items[idx] = old
		w.Logf(domain.LogInfo, "%s снимает %s и берёт %s.",
			capitalize(actor.DisplayName()), w.Get(old).DisplayName(), item.DisplayName())
	} else {
		actor.Inventory.Remove(item.ID)
		w.Logf(domain.LogInfo, "%s экипирует %s.", capitalize(actor.DisplayName()), item.DisplayName())
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor_id":  actor.ID,
		"item_id":   item.ID,
		"slot":      slot,
		"swapped":   occupied,
	}).Debug("Item equipped.")
	return nil
}

// --- UNEQUIP ---

// Unequip снимает предмет из слота в конец инвентаря.
func Unequip(w *domain.World, actor *domain.Entity, slot domain.EquipmentSlot) error {
	if actor.Inventory == nil {
		return ErrNoInventory
	}
	if actor.Equipped == nil {
		return ErrSlotEmpty
	}
	id, ok := actor.Equipped.Get(slot)
	if !ok {
		return ErrSlotEmpty
	}
	if !actor.Inventory.Add(id) {
		return ErrInventoryFull
	}
	delete(actor.Equipped.Slots, slot)

	w.Logf(domain.LogInfo, "%s снимает %s.", capitalize(actor.DisplayName()), w.Get(id).DisplayName())
	return nil
}

// --- USE ---

// UseItem применяет предмет из инвентаря. Экипировка надевается,
// расходник срабатывает и уничтожается. Предмет с прицеливанием
// без допустимой цели остаётся в инвентаре.
func UseItem(w *domain.World, actor, item *domain.Entity, target *domain.Point) error {
	if actor.Inventory == nil {
		return ErrNoInventory
	}
	if actor.Inventory.IndexOf(item.ID) < 0 {
		return ErrNotInInventory
	}
	if item.Item == nil {
		return ErrNotUsable
	}
	if item.Item.Equippable != nil {
		return Equip(w, actor, item)
	}
	if item.Item.Consumable == nil {
		return ErrNotUsable
	}

	effect := item.Item.Consumable.Effect

	// 1. Определяем цели
	var targets []*domain.Entity
	if t := item.Item.Targeted; t != nil {
		if err := ValidateTarget(w, actor, t.Range, target); err != nil {
			return err
		}
		radius := 0
		if item.Item.AreaOfEffect != nil {
			radius = item.Item.AreaOfEffect.Radius
		}
		targets = AffectedEntities(w, *target, radius)
	} else {
		targets = []*domain.Entity{actor}
	}

	// 2. Применяем эффект
	w.Logf(domain.LogInfo, "%s использует %s.", capitalize(actor.DisplayName()), item.DisplayName())
	if len(targets) == 0 {
		w.Logf(domain.LogInfo, "Эффект уходит в пустоту.")
	}
	for _, t := range targets {
		ApplyEffect(w, actor, t, effect)
	}

	// 3. Расходник уничтожается
	actor.Inventory.Remove(item.ID)
	w.Destroy(item.ID)
	return nil
}
