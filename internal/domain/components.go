package domain

import (
	"cognitive-crawler/internal/core/types"
)

// --- КОМПОНЕНТЫ ---

// Renderable - Визуализация (для слоя представления)
type Renderable struct {
	Glyph       rune        `json:"glyph"`
	FG          types.Color `json:"fg"`
	BG          types.Color `json:"bg"`
	RenderOrder int         `json:"renderOrder"` // Меньше - рисуется поверх
}

// Порядок отрисовки: игрок поверх монстров, монстры поверх предметов.
const (
	RenderOrderPlayer  = 0
	RenderOrderMonster = 1
	RenderOrderItem    = 2
	RenderOrderTrap    = 3
)

// Name - Отображаемое имя
type Name struct {
	Text string `json:"text"`
}

// CombatStats - Базовые боевые характеристики (без учёта экипировки)
type CombatStats struct {
	Power   int `json:"power"`
	Defense int `json:"defense"`
}

// Player - маркер сущности, которой управляет человек. Ровно один в мире.
type Player struct{}

// BlocksTile - сущность занимает клетку (монстры, игрок).
type BlocksTile struct{}

// Confusion - эффект замешательства, монстр пропускает Turns ходов.
type Confusion struct {
	Turns int `json:"turns"`
}

// EntryTrigger - ловушка, срабатывающая при входе в клетку.
type EntryTrigger struct {
	Damage    int  `json:"damage"`
	SingleUse bool `json:"singleUse"`
}

// Hidden - сущность не видна, пока её не обнаружат.
type Hidden struct{}

// HungerState - стадии голода.
type HungerState string

const (
	HungerWellFed  HungerState = "well_fed"
	HungerNormal   HungerState = "normal"
	HungerHungry   HungerState = "hungry"
	HungerStarving HungerState = "starving"
)

// HungerDuration - сколько ходов длится каждая стадия.
const HungerDuration = 200

// HungerClock - часы голода игрока.
type HungerClock struct {
	State    HungerState `json:"state"`
	Duration int         `json:"duration"`
}
