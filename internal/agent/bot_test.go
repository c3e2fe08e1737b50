package agent

import (
	"context"
	"os"
	"testing"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine"
	"cognitive-crawler/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", "text")
	os.Exit(m.Run())
}

// snapshot 5x3: стены по краю, пол внутри, всё раскрыто.
func openSnapshot() domain.GameSnapshot {
	snap := domain.GameSnapshot{
		Mode:        domain.ModeNormal,
		Width:       5,
		Height:      3,
		Tiles:       make([]domain.TileView, 15),
		PlayerHP:    30,
		PlayerMaxHP: 30,
	}
	for i := range snap.Tiles {
		x, y := i%5, i/5
		snap.Tiles[i].Revealed = true
		snap.Tiles[i].Kind = domain.TileWall
		if x > 0 && x < 4 && y == 1 {
			snap.Tiles[i].Kind = domain.TileFloor
		}
	}
	snap.Renderables = []domain.RenderableView{
		{X: 1, Y: 1, Glyph: '@', RenderOrder: domain.RenderOrderPlayer},
	}
	return snap
}

func TestDecide(t *testing.T) {
	bot := NewBot()

	tests := []struct {
		name  string
		setup func(s *domain.GameSnapshot)
		want  domain.PlayerIntent
	}{
		{
			name:  "closes menus",
			setup: func(s *domain.GameSnapshot) { s.Mode = domain.ModeInventory },
			want:  domain.Cancel(),
		},
		{
			name: "drinks potion when wounded",
			setup: func(s *domain.GameSnapshot) {
				s.PlayerHP = 10
				s.Inventory = []domain.ItemView{{Name: "кинжал"}, {Name: "зелье лечения"}}
			},
			want: domain.UseItem(1),
		},
		{
			name: "attacks adjacent monster",
			setup: func(s *domain.GameSnapshot) {
				s.Renderables = append(s.Renderables, domain.RenderableView{X: 2, Y: 1, RenderOrder: domain.RenderOrderMonster})
			},
			want: domain.Move(domain.DirEast),
		},
		{
			name: "picks up item underfoot",
			setup: func(s *domain.GameSnapshot) {
				s.Renderables = append(s.Renderables, domain.RenderableView{X: 1, Y: 1, RenderOrder: domain.RenderOrderItem})
			},
			want: domain.PickUp(),
		},
		{
			name:  "walks to stairs",
			setup: func(s *domain.GameSnapshot) { s.Tiles[1*5+3].Kind = domain.TileDownStairs },
			want:  domain.Move(domain.DirEast),
		},
		{
			name:  "descends on stairs",
			setup: func(s *domain.GameSnapshot) { s.Tiles[1*5+1].Kind = domain.TileDownStairs },
			want:  domain.DescendStairs(),
		},
		{
			name:  "waits when explored",
			setup: func(s *domain.GameSnapshot) {},
			want:  domain.Wait(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := openSnapshot()
			tt.setup(&snap)
			if got := bot.Decide(snap); got != tt.want {
				t.Errorf("Decide() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecide_ExploresFog(t *testing.T) {
	snap := openSnapshot()
	// Правая часть коридора ещё не видна
	snap.Tiles[1*5+3].Revealed = false

	if got := NewBot().Decide(snap); got != domain.Move(domain.DirEast) {
		t.Errorf("Decide() = %+v, want move east", got)
	}
}

func TestPlay_KeepsWorldConsistent(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		service := engine.NewService(nil, engine.Options{Seed: seed, MapWidth: 60, MapHeight: 30})
		session, err := service.NewGame()
		if err != nil {
			t.Fatalf("seed %d: NewGame: %v", seed, err)
		}

		report, err := NewBot().Play(context.Background(), service, session, 400)
		if err != nil {
			t.Fatalf("seed %d: Play: %v", seed, err)
		}
		if report.Steps == 0 {
			t.Fatalf("seed %d: bot made no steps", seed)
		}
		if err := session.World.Validate(); err != nil {
			t.Errorf("seed %d: world invalid after %s: %v", seed, report, err)
		}
	}
}
