package dungeon

import (
	"cognitive-crawler/internal/core/types"
	"cognitive-crawler/internal/domain"
)

// PlayerName - имя сущности игрока в журнале.
const PlayerName = "Игрок"

// CreatePlayer создает игрока в точке старта.
func CreatePlayer(at domain.Point) *domain.Entity {
	return &domain.Entity{
		Position: &domain.Position{X: at.X, Y: at.Y},
		Name:     &domain.Name{Text: PlayerName},
		Renderable: &domain.Renderable{
			Glyph:       '@',
			FG:          types.ColorYellow,
			BG:          types.ColorBlack,
			RenderOrder: domain.RenderOrderPlayer,
		},
		Health:      domain.NewHealth(30),
		CombatStats: &domain.CombatStats{Power: 5, Defense: 2},
		Inventory:   domain.NewInventory(),
		Equipped:    domain.NewEquipped(),
		Viewshed:    domain.NewViewshed(domain.VisionRadius),
		Player:      &domain.Player{},
		BlocksTile:  &domain.BlocksTile{},
		HungerClock: &domain.HungerClock{State: domain.HungerWellFed, Duration: domain.HungerDuration},
	}
}
