package domain

import (
	"cognitive-crawler/internal/core/types"
)

// Entity - идентификатор плюс набор необязательных компонентов.
// Компонент == nil означает, что свойство отсутствует. Способности
// проверяются наличием компонентов, а не типом сущности.
type Entity struct {
	ID types.EntityID `json:"id"`

	Position    *Position     `json:"position,omitempty"`
	Renderable  *Renderable   `json:"renderable,omitempty"`
	Name        *Name         `json:"name,omitempty"`
	Health      *Health       `json:"health,omitempty"`
	CombatStats *CombatStats  `json:"combatStats,omitempty"`
	Inventory   *Inventory    `json:"inventory,omitempty"`
	Equipped    *Equipped     `json:"equipped,omitempty"`
	Item        *Item         `json:"item,omitempty"`
	MonsterAI   *MonsterAI    `json:"monsterAi,omitempty"`
	Viewshed    *Viewshed     `json:"viewshed,omitempty"`
	Player      *Player       `json:"player,omitempty"`
	BlocksTile  *BlocksTile   `json:"blocksTile,omitempty"`
	Confusion   *Confusion    `json:"confusion,omitempty"`
	HungerClock *HungerClock  `json:"hungerClock,omitempty"`
	Trigger     *EntryTrigger `json:"trigger,omitempty"`
	Hidden      *Hidden       `json:"hidden,omitempty"`
}

// DisplayName возвращает имя или заглушку.
func (e *Entity) DisplayName() string {
	if e.Name != nil && e.Name.Text != "" {
		return e.Name.Text
	}
	return "нечто"
}

func (e *Entity) IsPlayer() bool  { return e.Player != nil }
func (e *Entity) IsMonster() bool { return e.MonsterAI != nil }
func (e *Entity) IsItem() bool    { return e.Item != nil }

// IsAlive - есть здоровье и оно не на нуле.
func (e *Entity) IsAlive() bool {
	return e.Health != nil && !e.Health.IsDead()
}

// IsCombatant - может участвовать в ближнем бою.
func (e *Entity) IsCombatant() bool {
	return e.Health != nil && e.CombatStats != nil
}

// At проверяет, стоит ли сущность в точке p.
func (e *Entity) At(p Point) bool {
	return e.Position != nil && e.Position.X == p.X && e.Position.Y == p.Y
}

// Point возвращает координату; ok=false, если сущность не на карте.
func (e *Entity) Point() (Point, bool) {
	if e.Position == nil {
		return Point{}, false
	}
	return e.Position.Point(), true
}
