package systems

import (
	"errors"
	"strings"
	"testing"

	"cognitive-crawler/internal/domain"
)

func lastLog(w *domain.World) string {
	tail := w.Log.Tail(1)
	if len(tail) == 0 {
		return ""
	}
	return tail[0].Text
}

func TestResolveAttack_Damage(t *testing.T) {
	tests := []struct {
		name       string
		power      int
		defense    int
		weapon     int
		wantDamage int
	}{
		{"Power minus defense", 5, 3, 0, 2},
		{"Minimum one damage", 1, 5, 0, 1},
		{"Weapon bonus counts", 5, 3, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, player := newArena(t, 10, 10)
			player.CombatStats.Power = tt.power
			if tt.weapon > 0 {
				sword := giveItem(w, player, "меч", weapon(tt.weapon))
				if err := Equip(w, player, sword); err != nil {
					t.Fatalf("equip: %v", err)
				}
			}
			monster := spawnMonster(w, "орк", domain.Point{X: 2, Y: 1})
			monster.CombatStats.Defense = tt.defense
			monster.Health = domain.NewHealth(10)

			out, err := ResolveAttack(w, player, monster)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Damage != tt.wantDamage {
				t.Errorf("damage = %d, want %d", out.Damage, tt.wantDamage)
			}
			if monster.Health.Current != 10-tt.wantDamage {
				t.Errorf("hp = %d, want %d", monster.Health.Current, 10-tt.wantDamage)
			}
		})
	}
}

func TestResolveAttack_ShieldBonus(t *testing.T) {
	w, player := newArena(t, 10, 10)
	buckler := giveItem(w, player, "щит", shield(3))
	if err := Equip(w, player, buckler); err != nil {
		t.Fatalf("equip: %v", err)
	}
	monster := spawnMonster(w, "орк", domain.Point{X: 2, Y: 1})

	// 4 силы против 2+3 защиты
	out, err := ResolveAttack(w, monster, player)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Damage != 1 {
		t.Errorf("damage = %d, want 1", out.Damage)
	}
}

func TestResolveAttack_Kill(t *testing.T) {
	w, player := newArena(t, 10, 10)
	monster := spawnMonster(w, "гоблин", domain.Point{X: 2, Y: 1})
	monster.Health = domain.NewHealth(2)

	out, err := ResolveAttack(w, player, monster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.DefenderDied {
		t.Fatal("defender should have died")
	}
	if monster.Health.Current != 0 {
		t.Errorf("hp = %d, want floor at 0", monster.Health.Current)
	}
	if !w.IsPendingRemoval(monster.ID) {
		t.Error("dead monster must be pending removal")
	}
	if w.Map.IsBlocked(domain.Point{X: 2, Y: 1}) {
		t.Error("dead monster's tile must be free immediately")
	}
	if got := lastLog(w); !strings.Contains(got, "Гоблин погибает") {
		t.Errorf("last log = %q", got)
	}
}

func TestResolveAttack_PlayerDeath(t *testing.T) {
	w, player := newArena(t, 10, 10)
	player.Health = domain.NewHealth(1)
	monster := spawnMonster(w, "орк", domain.Point{X: 2, Y: 1})

	out, err := ResolveAttack(w, monster, player)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.DefenderDied || !w.PlayerDead {
		t.Fatal("player death must set PlayerDead")
	}
	if w.IsPendingRemoval(player.ID) {
		t.Error("player must not be scheduled for removal")
	}
}

func TestResolveAttack_NotCombatant(t *testing.T) {
	w, player := newArena(t, 10, 10)
	potion := dropItem(w, "зелье", domain.Point{X: 2, Y: 1}, &domain.Item{})

	_, err := ResolveAttack(w, player, potion)
	if !errors.Is(err, ErrNotCombatant) {
		t.Errorf("err = %v, want ErrNotCombatant", err)
	}
}
