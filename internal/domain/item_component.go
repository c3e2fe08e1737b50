package domain

// EffectKind - тип эффекта расходника.
type EffectKind string

const (
	EffectHeal      EffectKind = "heal"       // восстановить Amount HP
	EffectDamage    EffectKind = "damage"     // нанести Amount урона цели
	EffectConfuse   EffectKind = "confuse"    // оглушить цель на Amount ходов
	EffectBuffPower EffectKind = "buff_power" // навсегда +Amount к силе
	EffectFeed      EffectKind = "feed"       // сбросить голод
	EffectMagicMap  EffectKind = "magic_map"  // открыть всю карту
)

// Effect - полезная нагрузка расходника.
type Effect struct {
	Kind   EffectKind `json:"kind"`
	Amount int        `json:"amount,omitempty"`
}

// RequiresTarget - эффекты, которые бьют по цели, а не по пользователю.
func (e Effect) RequiresTarget() bool {
	return e.Kind == EffectDamage || e.Kind == EffectConfuse
}

// Consumable - предмет уничтожается после применения.
type Consumable struct {
	Effect Effect `json:"effect"`
}

// EquipmentSlot - слот экипировки.
type EquipmentSlot string

const (
	SlotWeapon EquipmentSlot = "weapon"
	SlotShield EquipmentSlot = "shield"
)

// EquipmentSlots - фиксированный порядок обхода слотов.
var EquipmentSlots = []EquipmentSlot{SlotWeapon, SlotShield}

func (s EquipmentSlot) Valid() bool {
	return s == SlotWeapon || s == SlotShield
}

// Equippable - предмет можно надеть в Slot.
type Equippable struct {
	Slot         EquipmentSlot `json:"slot"`
	PowerBonus   int           `json:"powerBonus,omitempty"`
	DefenseBonus int           `json:"defenseBonus,omitempty"`
}

// AreaOfEffect - эффект применяется ко всем в радиусе от точки цели.
type AreaOfEffect struct {
	Radius int `json:"radius"`
}

// Targeted - предмет требует выбора клетки в пределах Range.
type Targeted struct {
	Range int `json:"range"`
}

// Item - набор независимых признаков предмета. Любое сочетание допустимо:
// огненный свиток - это Consumable{Damage} + Targeted + AreaOfEffect.
type Item struct {
	Consumable   *Consumable   `json:"consumable,omitempty"`
	Equippable   *Equippable   `json:"equippable,omitempty"`
	AreaOfEffect *AreaOfEffect `json:"areaOfEffect,omitempty"`
	Targeted     *Targeted     `json:"targeted,omitempty"`
}
