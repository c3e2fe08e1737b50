package systems

import (
	"os"
	"testing"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init("error", "text")

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// newArena - открытая комната width x height (стены по краю) с игроком в (1,1).
func newArena(t *testing.T, width, height int) (*domain.World, *domain.Entity) {
	t.Helper()

	w := domain.NewWorld(7)
	m := domain.NewMap(width, height, 1)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			m.SetKind(domain.Point{X: x, Y: y}, domain.TileFloor)
		}
	}
	m.Start = domain.Point{X: 1, Y: 1}
	w.ReplaceMap(m)

	player := &domain.Entity{
		Position:    &domain.Position{X: 1, Y: 1},
		Name:        &domain.Name{Text: "Игрок"},
		Health:      domain.NewHealth(30),
		CombatStats: &domain.CombatStats{Power: 5, Defense: 2},
		Inventory:   domain.NewInventory(),
		Equipped:    domain.NewEquipped(),
		Viewshed:    domain.NewViewshed(domain.VisionRadius),
		Player:      &domain.Player{},
		BlocksTile:  &domain.BlocksTile{},
		HungerClock: &domain.HungerClock{State: domain.HungerWellFed, Duration: domain.HungerDuration},
	}
	w.Spawn(player)
	return w, player
}

func spawnMonster(w *domain.World, name string, at domain.Point) *domain.Entity {
	m := &domain.Entity{
		Position:    &domain.Position{X: at.X, Y: at.Y},
		Name:        &domain.Name{Text: name},
		Health:      domain.NewHealth(16),
		CombatStats: &domain.CombatStats{Power: 4, Defense: 1},
		MonsterAI:   domain.NewMonsterAI(),
		Viewshed:    domain.NewViewshed(domain.VisionRadius),
		BlocksTile:  &domain.BlocksTile{},
	}
	w.Spawn(m)
	return m
}

// giveItem кладёт предмет сразу в инвентарь владельца.
func giveItem(w *domain.World, owner *domain.Entity, name string, item *domain.Item) *domain.Entity {
	e := &domain.Entity{Name: &domain.Name{Text: name}, Item: item}
	w.Spawn(e)
	owner.Inventory.Add(e.ID)
	return e
}

func dropItem(w *domain.World, name string, at domain.Point, item *domain.Item) *domain.Entity {
	e := &domain.Entity{
		Position: &domain.Position{X: at.X, Y: at.Y},
		Name:     &domain.Name{Text: name},
		Item:     item,
	}
	w.Spawn(e)
	return e
}

func weapon(power int) *domain.Item {
	return &domain.Item{Equippable: &domain.Equippable{Slot: domain.SlotWeapon, PowerBonus: power}}
}

func shield(defense int) *domain.Item {
	return &domain.Item{Equippable: &domain.Equippable{Slot: domain.SlotShield, DefenseBonus: defense}}
}
