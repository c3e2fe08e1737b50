package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers/actions"
)

func TestSession_WaitHealsAndAdvancesTick(t *testing.T) {
	w, player := newArena(t, 8, 8)
	player.Health.Current = 20
	s := start(w)

	snap := advance(t, s, domain.Wait())

	if player.Health.Current != 20+actions.WaitHeal {
		t.Errorf("Expected HP %d, got %d", 20+actions.WaitHeal, player.Health.Current)
	}
	if snap.Tick != 1 {
		t.Errorf("Expected tick 1, got %d", snap.Tick)
	}
	if snap.RunState != domain.RunAwaitingInput {
		t.Errorf("Expected %s, got %s", domain.RunAwaitingInput, snap.RunState)
	}
	if snap.PlayerHP != player.Health.Current {
		t.Errorf("Snapshot HP %d does not match player %d", snap.PlayerHP, player.Health.Current)
	}
}

func TestSession_InvalidIntentConsumesNoTurn(t *testing.T) {
	tests := []struct {
		name    string
		intents []domain.PlayerIntent
		wantLog string
	}{
		{"Wall bump", []domain.PlayerIntent{domain.Move(domain.DirWest)}, "Путь прегражден."},
		{"No stairs", []domain.PlayerIntent{domain.DescendStairs()}, "Здесь нет лестницы вниз."},
		{"Nothing to pick up", []domain.PlayerIntent{domain.PickUp()}, "Здесь нечего подобрать."},
		{"Empty inventory slot", []domain.PlayerIntent{domain.OpenInventory(), domain.UseItem(3)}, "Нет такого предмета."},
		{"Empty equipment slot", []domain.PlayerIntent{
			domain.OpenRemoveEquipmentMenu(), domain.UnequipItem(domain.SlotWeapon),
		}, "В этом слоте ничего нет."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newArena(t, 8, 8)
			orc := spawn(t, w, "orc", domain.Point{X: 5, Y: 5})
			before := orc.Position.Point()
			s := start(w)

			snap := advance(t, s, tt.intents...)

			if snap.Tick != 0 {
				t.Errorf("Expected tick 0, got %d", snap.Tick)
			}
			if orc.Position.Point() != before {
				t.Errorf("Monster moved on a rejected turn: %v -> %v", before, orc.Position.Point())
			}
			last := lastLog(w)
			if last.Type != domain.LogError || last.Text != tt.wantLog {
				t.Errorf("Expected ERROR %q, got %s %q", tt.wantLog, last.Type, last.Text)
			}
			if snap.Mode != domain.ModeNormal || snap.RunState != domain.RunAwaitingInput {
				t.Errorf("Expected normal/awaiting_input, got %s/%s", snap.Mode, snap.RunState)
			}
		})
	}
}

func TestSession_IntentsOutsideModeAreNoOps(t *testing.T) {
	w, player := newArena(t, 8, 8)
	potion := give(t, w, player, "health_potion")
	s := start(w)
	logLen := w.Log.Len()

	// UseItem вне инвентаря
	snap := advance(t, s, domain.UseItem(0))
	if snap.Tick != 0 || player.Inventory.IndexOf(potion.ID) != 0 {
		t.Fatal("UseItem in normal mode must be ignored")
	}

	snap = advance(t, s, domain.OpenInventory())
	if snap.Mode != domain.ModeInventory {
		t.Fatalf("Expected inventory mode, got %s", snap.Mode)
	}

	// Движение и выбор цели в инвентаре игнорируются
	snap = advance(t, s, domain.Move(domain.DirEast), domain.SelectTarget(domain.Point{X: 2, Y: 2}))
	if snap.Tick != 0 || player.Position.Point() != (domain.Point{X: 1, Y: 1}) {
		t.Fatal("Move in inventory mode must be ignored")
	}

	snap = advance(t, s, domain.Cancel())
	if snap.Mode != domain.ModeNormal {
		t.Errorf("Expected normal mode after cancel, got %s", snap.Mode)
	}
	if w.Log.Len() != logLen {
		t.Errorf("No-op intents must not write to the log, got %d new entries", w.Log.Len()-logLen)
	}
}

func TestSession_UseItemFromInventory(t *testing.T) {
	w, player := newArena(t, 8, 8)
	player.Health.Current = 10
	potion := give(t, w, player, "health_potion")
	s := start(w)

	snap := advance(t, s, domain.OpenInventory(), domain.UseItem(0))

	if w.Get(potion.ID) != nil {
		t.Error("Consumed potion must be destroyed")
	}
	if len(snap.Inventory) != 0 {
		t.Errorf("Expected empty inventory, got %d items", len(snap.Inventory))
	}
	// 10 + 8 (зелье); отдых не срабатывает, это не Wait
	if player.Health.Current != 18 {
		t.Errorf("Expected HP 18, got %d", player.Health.Current)
	}
	if snap.Tick != 1 || snap.Mode != domain.ModeNormal {
		t.Errorf("Expected tick 1 in normal mode, got %d/%s", snap.Tick, snap.Mode)
	}
}

func TestSession_PlayerDeathStopsMonsters(t *testing.T) {
	w, player := newArena(t, 8, 8)
	orc := spawn(t, w, "orc", domain.Point{X: 2, Y: 1})
	goblin := spawn(t, w, "goblin", domain.Point{X: 1, Y: 2})
	if orc.ID >= goblin.ID {
		t.Fatalf("test expects orc to act first: %s >= %s", orc.ID, goblin.ID)
	}
	player.Health.Current = 1
	s := start(w)

	// Отдых: +1 HP, затем орк бьёт на 2
	snap := advance(t, s, domain.Wait())

	if !snap.Terminal || snap.RunState != domain.RunGameOver {
		t.Fatalf("Expected terminal game_over, got terminal=%v state=%s", snap.Terminal, snap.RunState)
	}
	if n := countLogs(w, "Орк бьёт"); n != 1 {
		t.Errorf("Expected exactly one orc attack, got %d", n)
	}
	if n := countLogs(w, "Гоблин бьёт"); n != 0 {
		t.Errorf("Goblin must not act after the player died, got %d attacks", n)
	}

	// После смерти ввод ничего не меняет
	tick := snap.Tick
	snap = advance(t, s, domain.Wait(), domain.Move(domain.DirEast))
	if snap.Tick != tick || !snap.Terminal {
		t.Errorf("Game over must be final: tick %d -> %d", tick, snap.Tick)
	}
}

func TestSession_MonstersActInIDOrder(t *testing.T) {
	w, _ := newArena(t, 8, 8)
	spawn(t, w, "goblin", domain.Point{X: 2, Y: 1})
	spawn(t, w, "orc", domain.Point{X: 1, Y: 2})
	s := start(w)

	advance(t, s, domain.Wait())

	var attackers []string
	for _, e := range w.Log.Entries {
		switch {
		case strings.HasPrefix(e.Text, "Гоблин бьёт"):
			attackers = append(attackers, "goblin")
		case strings.HasPrefix(e.Text, "Орк бьёт"):
			attackers = append(attackers, "orc")
		}
	}
	if !reflect.DeepEqual(attackers, []string{"goblin", "orc"}) {
		t.Errorf("Expected goblin then orc, got %v", attackers)
	}
}

func TestSession_Descend(t *testing.T) {
	w, player := newArena(t, 40, 25)
	w.Map.SetKind(domain.Point{X: 1, Y: 1}, domain.TileDownStairs)
	dagger := give(t, w, player, "dagger")
	potion := give(t, w, player, "health_potion")
	orc := spawn(t, w, "orc", domain.Point{X: 10, Y: 10})
	player.Health.Current = 5
	s := start(w)

	// Надеваем кинжал, чтобы проверить перенос экипировки
	advance(t, s, domain.OpenInventory(), domain.UseItem(0))
	if id, ok := player.Equipped.Get(domain.SlotWeapon); !ok || id != dagger.ID {
		t.Fatal("dagger must be equipped before descent")
	}

	snap := advance(t, s, domain.DescendStairs())

	if snap.Depth != 2 || w.Depth != 2 {
		t.Fatalf("Expected depth 2, got %d", snap.Depth)
	}
	if !snap.Transitioned {
		t.Error("Expected Transitioned on the descent tick")
	}
	if w.Get(orc.ID) != nil {
		t.Error("Monsters of the previous level must be destroyed")
	}
	if w.Get(dagger.ID) == nil || w.Get(potion.ID) == nil {
		t.Fatal("Carried items must survive the descent")
	}
	if player.Inventory.IndexOf(potion.ID) != 0 {
		t.Error("Inventory must be preserved")
	}
	if player.Position.Point() != w.Map.Start {
		t.Errorf("Expected player at %v, got %v", w.Map.Start, player.Position.Point())
	}
	if player.Health.Current < player.Health.Max/2 {
		t.Errorf("Expected at least half HP after descent, got %d/%d", player.Health.Current, player.Health.Max)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("world invalid after descent: %v", err)
	}

	snap = advance(t, s, domain.Wait())
	if snap.Transitioned {
		t.Error("Transitioned must only be set on the descent tick")
	}
}

func TestSession_TargetingFlow(t *testing.T) {
	w, player := newArena(t, 10, 6)
	scroll := give(t, w, player, "fireball_scroll")
	orc := spawn(t, w, "orc", domain.Point{X: 6, Y: 1})
	s := start(w)

	// 1. Выбор предмета включает прицеливание, ход не тратится
	snap := advance(t, s, domain.OpenInventory(), domain.UseItem(0))
	if snap.Mode != domain.ModeTargeting || snap.Targeting == nil {
		t.Fatalf("Expected targeting mode, got %s", snap.Mode)
	}
	if snap.Tick != 0 {
		t.Errorf("Entering targeting must not consume a turn, tick %d", snap.Tick)
	}
	if len(snap.Targeting.Cells) == 0 {
		t.Error("Expected selectable cells")
	}

	// 2. Отмена возвращает в обычный режим, свиток на месте
	snap = advance(t, s, domain.Cancel())
	if snap.Mode != domain.ModeNormal || snap.Targeting != nil {
		t.Fatalf("Expected normal mode after cancel, got %s", snap.Mode)
	}
	if player.Inventory.IndexOf(scroll.ID) != 0 {
		t.Fatal("Cancelled scroll must stay in inventory")
	}

	// 3. Цель вне дальности: отказ, свиток сохраняется
	advance(t, s, domain.OpenInventory(), domain.UseItem(0))
	snap = advance(t, s, domain.SelectTarget(domain.Point{X: 8, Y: 4}))
	if snap.Tick != 0 || lastLog(w).Type != domain.LogError {
		t.Fatalf("Out of range target must be rejected, tick %d, log %q", snap.Tick, lastLog(w).Text)
	}
	if player.Inventory.IndexOf(scroll.ID) != 0 {
		t.Fatal("Rejected scroll must stay in inventory")
	}

	// 4. Выстрел по орку
	advance(t, s, domain.OpenInventory(), domain.UseItem(0))
	snap = advance(t, s, domain.SelectTarget(domain.Point{X: 6, Y: 1}))

	if snap.Tick != 1 || snap.Mode != domain.ModeNormal {
		t.Errorf("Expected tick 1 in normal mode, got %d/%s", snap.Tick, snap.Mode)
	}
	if w.Get(orc.ID) != nil {
		t.Error("Orc must be killed and flushed")
	}
	if w.Get(scroll.ID) != nil {
		t.Error("Scroll must be consumed")
	}
	if player.Health.Current != player.Health.Max {
		t.Errorf("Player outside the blast must be unharmed, HP %d", player.Health.Current)
	}
}

func TestSession_OpenMenuSavesAndPauses(t *testing.T) {
	t.Run("Saved", func(t *testing.T) {
		w, _ := newArena(t, 8, 8)
		saver := &memSaver{}
		s := startWith(w, saver)

		advance(t, s, domain.Wait(), domain.Wait())
		snap := advance(t, s, domain.OpenMenu())

		if tick, ok := saver.saved["slot-a"]; !ok || tick != 2 {
			t.Fatalf("Expected save at tick 2, got %v", saver.saved)
		}
		if snap.Mode != domain.ModeMenu || snap.RunState != domain.RunPaused {
			t.Fatalf("Expected menu/paused, got %s/%s", snap.Mode, snap.RunState)
		}

		snap = advance(t, s, domain.Wait())
		if snap.Tick != 2 {
			t.Error("Paused session must ignore game intents")
		}

		snap = advance(t, s, domain.Cancel())
		if snap.Mode != domain.ModeNormal || snap.RunState != domain.RunAwaitingInput {
			t.Errorf("Expected normal/awaiting_input after resume, got %s/%s", snap.Mode, snap.RunState)
		}
	})

	t.Run("Save failure keeps playing", func(t *testing.T) {
		w, _ := newArena(t, 8, 8)
		s := startWith(w, &memSaver{err: errors.New("disk full")})

		snap := advance(t, s, domain.OpenMenu())
		if snap.Mode != domain.ModeNormal || snap.RunState != domain.RunAwaitingInput {
			t.Errorf("Expected to stay in game, got %s/%s", snap.Mode, snap.RunState)
		}
		if lastLog(w).Type != domain.LogError {
			t.Errorf("Expected ERROR log entry, got %q", lastLog(w).Text)
		}
	})
}

func TestSession_InvariantViolationLatches(t *testing.T) {
	w, _ := newArena(t, 8, 8)
	// Предмет в стене ломает мир
	spawn(t, w, "dagger", domain.Point{X: 0, Y: 0})
	s := start(w)

	_, err := s.Advance(domain.Wait())
	if !errors.Is(err, domain.ErrInvariantViolation) {
		t.Fatalf("Expected ErrInvariantViolation, got %v", err)
	}

	_, err = s.Advance(domain.Wait())
	if !errors.Is(err, ErrSessionCrashed) {
		t.Errorf("Expected ErrSessionCrashed, got %v", err)
	}
	if s.Crashed() == nil {
		t.Error("Crashed() must report the violation")
	}
}

func TestSnapshot_Renderables(t *testing.T) {
	w, _ := newArena(t, 20, 8)
	near := spawn(t, w, "goblin", domain.Point{X: 3, Y: 1})
	potion := spawn(t, w, "health_potion", domain.Point{X: 3, Y: 1})
	far := spawn(t, w, "goblin", domain.Point{X: 18, Y: 6}) // за пределами зрения
	trap := spawn(t, w, "bear_trap", domain.Point{X: 2, Y: 2})
	s := start(w)

	snap := s.Snapshot()

	seen := make(map[string]bool)
	for i, r := range snap.Renderables {
		seen[r.ID.String()] = true
		if i > 0 {
			prev := snap.Renderables[i-1]
			if prev.RenderOrder > r.RenderOrder || (prev.RenderOrder == r.RenderOrder && prev.ID > r.ID) {
				t.Errorf("Renderables out of order at %d", i)
			}
		}
	}
	if !seen[near.ID.String()] || !seen[potion.ID.String()] {
		t.Error("Visible entities must be rendered")
	}
	if seen[far.ID.String()] {
		t.Error("Entities outside the player's sight must not be rendered")
	}
	if seen[trap.ID.String()] {
		t.Error("Hidden traps must not be rendered")
	}
	if len(snap.Tiles) != snap.Width*snap.Height {
		t.Errorf("Expected %d tiles, got %d", snap.Width*snap.Height, len(snap.Tiles))
	}
	if !snap.TileAt(1, 1).Visible || !snap.TileAt(1, 1).Revealed {
		t.Error("Player tile must be visible and revealed")
	}
}

func TestNewRun_Deterministic(t *testing.T) {
	script := []domain.PlayerIntent{
		domain.Wait(),
		domain.Move(domain.DirEast),
		domain.Move(domain.DirSouth),
		domain.PickUp(),
		domain.Move(domain.DirNorthWest),
		domain.Wait(),
		domain.Wait(),
	}

	play := func() domain.GameSnapshot {
		w, err := NewRun(1234, domain.MapWidth, domain.MapHeight)
		if err != nil {
			t.Fatalf("NewRun: %v", err)
		}
		s := NewSession(w, nil, "test")
		snap := advance(t, s, script...)
		snap.RunID = ""
		return snap
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed and intents must produce identical snapshots")
	}
}
