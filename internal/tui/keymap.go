package tui

import (
	"cognitive-crawler/internal/domain"

	"github.com/gdamore/tcell/v2"
)

// Раскладка: стрелки, vi-клавиши (hjklyubn) и цифровой блок.
var runeDirections = map[rune]domain.Direction{
	'k': domain.DirNorth, '8': domain.DirNorth,
	'j': domain.DirSouth, '2': domain.DirSouth,
	'h': domain.DirWest, '4': domain.DirWest,
	'l': domain.DirEast, '6': domain.DirEast,
	'y': domain.DirNorthWest, '7': domain.DirNorthWest,
	'u': domain.DirNorthEast, '9': domain.DirNorthEast,
	'b': domain.DirSouthWest, '1': domain.DirSouthWest,
	'n': domain.DirSouthEast, '3': domain.DirSouthEast,
}

var keyDirections = map[tcell.Key]domain.Direction{
	tcell.KeyUp:    domain.DirNorth,
	tcell.KeyDown:  domain.DirSouth,
	tcell.KeyLeft:  domain.DirWest,
	tcell.KeyRight: domain.DirEast,
}

// Слоты в меню снятия экипировки.
var slotKeys = map[rune]domain.EquipmentSlot{
	'a': domain.SlotWeapon,
	'b': domain.SlotShield,
}

// Direction возвращает направление клавиши.
func Direction(ev *tcell.EventKey) (domain.Direction, bool) {
	if ev.Key() == tcell.KeyRune {
		d, ok := runeDirections[ev.Rune()]
		return d, ok
	}
	d, ok := keyDirections[ev.Key()]
	return d, ok
}

// MapKey переводит нажатие в намерение для текущего режима.
// Режим прицеливания обрабатывает App: там клавиши двигают курсор.
func MapKey(ev *tcell.EventKey, mode domain.InputMode) (domain.PlayerIntent, bool) {
	if ev.Key() == tcell.KeyEscape {
		if mode == domain.ModeNormal {
			return domain.OpenMenu(), true
		}
		return domain.Cancel(), true
	}

	switch mode {
	case domain.ModeNormal:
		if d, ok := Direction(ev); ok {
			return domain.Move(d), true
		}
		if ev.Key() != tcell.KeyRune {
			return domain.PlayerIntent{}, false
		}
		switch ev.Rune() {
		case '.', '5', ' ':
			return domain.Wait(), true
		case 'g', ',':
			return domain.PickUp(), true
		case 'i':
			return domain.OpenInventory(), true
		case 'd':
			return domain.OpenDropMenu(), true
		case 'r':
			return domain.OpenRemoveEquipmentMenu(), true
		case '>':
			return domain.DescendStairs(), true
		}

	case domain.ModeInventory, domain.ModeDropMenu:
		idx, ok := letterIndex(ev)
		if !ok {
			return domain.PlayerIntent{}, false
		}
		if mode == domain.ModeInventory {
			return domain.UseItem(idx), true
		}
		return domain.DropItem(idx), true

	case domain.ModeRemoveEquipment:
		if ev.Key() == tcell.KeyRune {
			if slot, ok := slotKeys[ev.Rune()]; ok {
				return domain.UnequipItem(slot), true
			}
		}
	}

	return domain.PlayerIntent{}, false
}

// letterIndex: 'a' -> 0 ... 'z' -> 25.
func letterIndex(ev *tcell.EventKey) (int, bool) {
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	r := ev.Rune()
	if r < 'a' || r >= 'a'+domain.InventoryCapacity {
		return 0, false
	}
	return int(r - 'a'), true
}
