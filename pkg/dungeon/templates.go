package dungeon

import (
	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"
)

// EntityTemplate определяет шаблон для создания сущности.
// Заполненные поля превращаются в компоненты: Health > 0 даёт бойца,
// Monster - мозги и зрение, Item - предмет, Trap - ловушку.
type EntityTemplate struct {
	Name        string
	Glyph       rune
	Color       types.Color
	RenderOrder int

	Health  int
	Power   int
	Defense int
	Monster bool

	Item *domain.Item
	Trap *domain.EntryTrigger
}

// Spawn создает сущность из шаблона на заданной позиции.
// Компоненты копируются, экземпляры не делят указатели с шаблоном.
func (t EntityTemplate) Spawn(at domain.Point) *domain.Entity {
	e := &domain.Entity{
		Position: &domain.Position{X: at.X, Y: at.Y},
		Name:     &domain.Name{Text: t.Name},
		Renderable: &domain.Renderable{
			Glyph:       t.Glyph,
			FG:          t.Color,
			BG:          types.ColorBlack,
			RenderOrder: t.RenderOrder,
		},
	}

	// Добавляем статы если это существо
	if t.Health > 0 {
		e.Health = domain.NewHealth(t.Health)
		e.CombatStats = &domain.CombatStats{Power: t.Power, Defense: t.Defense}
	}

	// Добавляем AI и зрение
	if t.Monster {
		e.MonsterAI = domain.NewMonsterAI()
		e.Viewshed = domain.NewViewshed(domain.VisionRadius)
		e.BlocksTile = &domain.BlocksTile{}
	}

	if t.Item != nil {
		e.Item = copyItem(t.Item)
	}

	if t.Trap != nil {
		trigger := *t.Trap
		e.Trigger = &trigger
		e.Hidden = &domain.Hidden{}
	}

	return e
}

func copyItem(src *domain.Item) *domain.Item {
	out := &domain.Item{}
	if src.Consumable != nil {
		c := *src.Consumable
		out.Consumable = &c
	}
	if src.Equippable != nil {
		eq := *src.Equippable
		out.Equippable = &eq
	}
	if src.AreaOfEffect != nil {
		aoe := *src.AreaOfEffect
		out.AreaOfEffect = &aoe
	}
	if src.Targeted != nil {
		tg := *src.Targeted
		out.Targeted = &tg
	}
	return out
}

func consumable(kind domain.EffectKind, amount int) *domain.Consumable {
	return &domain.Consumable{Effect: domain.Effect{Kind: kind, Amount: amount}}
}

// --- ВРАГИ ---

var Goblin = EntityTemplate{
	Name:        "гоблин",
	Glyph:       'g',
	Color:       types.ColorRed,
	RenderOrder: domain.RenderOrderMonster,
	Health:      8,
	Power:       3,
	Defense:     1,
	Monster:     true,
}

var Orc = EntityTemplate{
	Name:        "орк",
	Glyph:       'o',
	Color:       types.ColorRed,
	RenderOrder: domain.RenderOrderMonster,
	Health:      16,
	Power:       4,
	Defense:     1,
	Monster:     true,
}

// --- РАСХОДНИКИ ---

var HealthPotion = EntityTemplate{
	Name:        "зелье лечения",
	Glyph:       '!',
	Color:       types.ColorMagenta,
	RenderOrder: domain.RenderOrderItem,
	Item:        &domain.Item{Consumable: consumable(domain.EffectHeal, 8)},
}

var MagicMissileScroll = EntityTemplate{
	Name:        "свиток магической стрелы",
	Glyph:       ')',
	Color:       types.ColorCyan,
	RenderOrder: domain.RenderOrderItem,
	Item: &domain.Item{
		Consumable: consumable(domain.EffectDamage, 8),
		Targeted:   &domain.Targeted{Range: 6},
	},
}

var FireballScroll = EntityTemplate{
	Name:        "свиток огненного шара",
	Glyph:       ')',
	Color:       types.ColorOrange,
	RenderOrder: domain.RenderOrderItem,
	Item: &domain.Item{
		Consumable:   consumable(domain.EffectDamage, 20),
		Targeted:     &domain.Targeted{Range: 6},
		AreaOfEffect: &domain.AreaOfEffect{Radius: 3},
	},
}

var ConfusionScroll = EntityTemplate{
	Name:        "свиток замешательства",
	Glyph:       ')',
	Color:       types.ColorPink,
	RenderOrder: domain.RenderOrderItem,
	Item: &domain.Item{
		Consumable: consumable(domain.EffectConfuse, 4),
		Targeted:   &domain.Targeted{Range: 6},
	},
}

var MagicMappingScroll = EntityTemplate{
	Name:        "свиток магической карты",
	Glyph:       ')',
	Color:       types.RGB(0x00, 0xBF, 0xFF),
	RenderOrder: domain.RenderOrderItem,
	Item:        &domain.Item{Consumable: consumable(domain.EffectMagicMap, 0)},
}

var Rations = EntityTemplate{
	Name:        "паёк",
	Glyph:       '%',
	Color:       types.ColorGreen,
	RenderOrder: domain.RenderOrderItem,
	Item:        &domain.Item{Consumable: consumable(domain.EffectFeed, 0)},
}

// --- ЭКИПИРОВКА ---

var Dagger = EntityTemplate{
	Name:        "кинжал",
	Glyph:       '/',
	Color:       types.ColorCyan,
	RenderOrder: domain.RenderOrderItem,
	Item:        &domain.Item{Equippable: &domain.Equippable{Slot: domain.SlotWeapon, PowerBonus: 2}},
}

var Shield = EntityTemplate{
	Name:        "щит",
	Glyph:       '(',
	Color:       types.ColorCyan,
	RenderOrder: domain.RenderOrderItem,
	Item:        &domain.Item{Equippable: &domain.Equippable{Slot: domain.SlotShield, DefenseBonus: 1}},
}

var Longsword = EntityTemplate{
	Name:        "длинный меч",
	Glyph:       '/',
	Color:       types.ColorYellow,
	RenderOrder: domain.RenderOrderItem,
	Item:        &domain.Item{Equippable: &domain.Equippable{Slot: domain.SlotWeapon, PowerBonus: 4}},
}

var TowerShield = EntityTemplate{
	Name:        "башенный щит",
	Glyph:       '(',
	Color:       types.ColorYellow,
	RenderOrder: domain.RenderOrderItem,
	Item:        &domain.Item{Equippable: &domain.Equippable{Slot: domain.SlotShield, DefenseBonus: 3}},
}

// --- ЛОВУШКИ ---

var BearTrap = EntityTemplate{
	Name:        "капкан",
	Glyph:       '^',
	Color:       types.ColorRed,
	RenderOrder: domain.RenderOrderTrap,
	Trap:        &domain.EntryTrigger{Damage: 6, SingleUse: true},
}

// Templates - реестр шаблонов по ключу таблицы спавна.
var Templates = map[string]EntityTemplate{
	"goblin":               Goblin,
	"orc":                  Orc,
	"health_potion":        HealthPotion,
	"fireball_scroll":      FireballScroll,
	"confusion_scroll":     ConfusionScroll,
	"magic_missile_scroll": MagicMissileScroll,
	"dagger":               Dagger,
	"shield":               Shield,
	"longsword":            Longsword,
	"tower_shield":         TowerShield,
	"rations":              Rations,
	"magic_mapping_scroll": MagicMappingScroll,
	"bear_trap":            BearTrap,
}
