package handlers

import (
	"errors"

	"cognitive-crawler/internal/systems"
)

var (
	ErrBlocked          = errors.New("path blocked")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrNothingHere      = errors.New("nothing to pick up")
	ErrNoStairs         = errors.New("no stairs here")
)

// Тексты для журнала игрока по причинам отказа.
var rejectMessages = []struct {
	err error
	msg string
}{
	{ErrBlocked, "Путь прегражден."},
	{ErrInvalidDirection, "Непонятное направление."},
	{ErrNothingHere, "Здесь нечего подобрать."},
	{ErrNoStairs, "Здесь нет лестницы вниз."},
	{systems.ErrNoInventory, "Вам некуда это положить."},
	{systems.ErrNotColocated, "Предмет слишком далеко."},
	{systems.ErrInventoryFull, "Инвентарь полон."},
	{systems.ErrNotInInventory, "Нет такого предмета."},
	{systems.ErrNotEquippable, "Это нельзя надеть."},
	{systems.ErrNotUsable, "Этот предмет нельзя использовать."},
	{systems.ErrSlotEmpty, "В этом слоте ничего нет."},
	{systems.ErrTargetRequired, "Нужно выбрать цель."},
	{systems.ErrTargetOutOfRange, "Цель слишком далеко."},
	{systems.ErrTargetNotVisible, "Вы не видите цель."},
	{systems.ErrNotCombatant, "Это нельзя атаковать."},
}

// RejectMessage переводит причину отказа в сообщение для журнала.
func RejectMessage(err error) string {
	for _, m := range rejectMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Так нельзя."
}
