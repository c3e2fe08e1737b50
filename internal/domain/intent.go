package domain

import "strings"

// IntentKind - дискретное намерение игрока.
type IntentKind uint8

const (
	IntentUnknown IntentKind = iota
	IntentMove
	IntentWait
	IntentPickUp
	IntentOpenInventory
	IntentOpenDropMenu
	IntentOpenRemoveEquipmentMenu
	IntentUseItem
	IntentDropItem
	IntentUnequipItem
	IntentDescendStairs
	IntentOpenMenu
	IntentSelectTarget
	IntentCancel
)

var intentNames = map[IntentKind]string{
	IntentMove:                    "MOVE",
	IntentWait:                    "WAIT",
	IntentPickUp:                  "PICKUP",
	IntentOpenInventory:           "OPEN_INVENTORY",
	IntentOpenDropMenu:            "OPEN_DROP_MENU",
	IntentOpenRemoveEquipmentMenu: "OPEN_REMOVE_EQUIPMENT_MENU",
	IntentUseItem:                 "USE_ITEM",
	IntentDropItem:                "DROP_ITEM",
	IntentUnequipItem:             "UNEQUIP_ITEM",
	IntentDescendStairs:           "DESCEND",
	IntentOpenMenu:                "OPEN_MENU",
	IntentSelectTarget:            "SELECT_TARGET",
	IntentCancel:                  "CANCEL",
}

// ParseIntentKind конвертирует строку из JSON в IntentKind.
func ParseIntentKind(s string) IntentKind {
	upper := strings.ToUpper(s)
	for k, name := range intentNames {
		if name == upper {
			return k
		}
	}
	return IntentUnknown
}

func (k IntentKind) String() string {
	if s, ok := intentNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// PlayerIntent - событие ввода. Используются только поля, относящиеся к Kind.
type PlayerIntent struct {
	Kind   IntentKind
	Dir    Direction     // Move
	Index  int           // UseItem, DropItem: позиция в меню
	Slot   EquipmentSlot // UnequipItem
	Target Point         // SelectTarget
}

// Конструкторы для слоя представления.

func Move(d Direction) PlayerIntent { return PlayerIntent{Kind: IntentMove, Dir: d} }
func Wait() PlayerIntent            { return PlayerIntent{Kind: IntentWait} }
func PickUp() PlayerIntent          { return PlayerIntent{Kind: IntentPickUp} }
func OpenInventory() PlayerIntent   { return PlayerIntent{Kind: IntentOpenInventory} }
func OpenDropMenu() PlayerIntent    { return PlayerIntent{Kind: IntentOpenDropMenu} }
func OpenRemoveEquipmentMenu() PlayerIntent {
	return PlayerIntent{Kind: IntentOpenRemoveEquipmentMenu}
}
func UseItem(index int) PlayerIntent  { return PlayerIntent{Kind: IntentUseItem, Index: index} }
func DropItem(index int) PlayerIntent { return PlayerIntent{Kind: IntentDropItem, Index: index} }
func UnequipItem(slot EquipmentSlot) PlayerIntent {
	return PlayerIntent{Kind: IntentUnequipItem, Slot: slot}
}
func DescendStairs() PlayerIntent       { return PlayerIntent{Kind: IntentDescendStairs} }
func OpenMenu() PlayerIntent            { return PlayerIntent{Kind: IntentOpenMenu} }
func SelectTarget(p Point) PlayerIntent { return PlayerIntent{Kind: IntentSelectTarget, Target: p} }
func Cancel() PlayerIntent              { return PlayerIntent{Kind: IntentCancel} }
