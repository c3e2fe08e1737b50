package domain

import (
	"encoding/json"
	"slices"

	"cognitive-crawler/internal/core/types"
)

// InventoryCapacity - по букве на предмет (a-z).
const InventoryCapacity = 26

// Inventory - упорядоченный список предметов (порядок подбора).
type Inventory struct {
	Items    []types.EntityID `json:"items"`
	Capacity int              `json:"capacity"`
}

func NewInventory() *Inventory {
	return &Inventory{Items: make([]types.EntityID, 0), Capacity: InventoryCapacity}
}

func (inv *Inventory) IsFull() bool {
	return inv.Capacity > 0 && len(inv.Items) >= inv.Capacity
}

// Add добавляет предмет в конец. Возвращает false, если места нет.
func (inv *Inventory) Add(id types.EntityID) bool {
	if inv.IsFull() {
		return false
	}
	inv.Items = append(inv.Items, id)
	return true
}

// IndexOf возвращает позицию предмета или -1.
func (inv *Inventory) IndexOf(id types.EntityID) int {
	return slices.Index(inv.Items, id)
}

// At возвращает предмет по индексу меню.
func (inv *Inventory) At(index int) (types.EntityID, bool) {
	if index < 0 || index >= len(inv.Items) {
		return types.NilEntityID, false
	}
	return inv.Items[index], true
}

// Remove удаляет предмет, сохраняя порядок остальных.
func (inv *Inventory) Remove(id types.EntityID) bool {
	idx := inv.IndexOf(id)
	if idx < 0 {
		return false
	}
	inv.Items = slices.Delete(inv.Items, idx, idx+1)
	return true
}

// Equipped - слот -> предмет. Не больше одного предмета на слот.
type Equipped struct {
	Slots map[EquipmentSlot]types.EntityID `json:"slots"`
}

func NewEquipped() *Equipped {
	return &Equipped{Slots: make(map[EquipmentSlot]types.EntityID)}
}

// UnmarshalJSON читает "slots": null как пустой набор слотов.
func (eq *Equipped) UnmarshalJSON(data []byte) error {
	type plain Equipped
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Slots == nil {
		raw.Slots = make(map[EquipmentSlot]types.EntityID)
	}
	*eq = Equipped(raw)
	return nil
}

// Get возвращает предмет в слоте.
func (eq *Equipped) Get(slot EquipmentSlot) (types.EntityID, bool) {
	id, ok := eq.Slots[slot]
	return id, ok && !id.IsNil()
}

// Items перечисляет надетые предметы в порядке EquipmentSlots.
func (eq *Equipped) Items() []types.EntityID {
	out := make([]types.EntityID, 0, len(eq.Slots))
	for _, slot := range EquipmentSlots {
		if id, ok := eq.Get(slot); ok {
			out = append(out, id)
		}
	}
	return out
}
