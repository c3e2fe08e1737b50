package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine"
	"cognitive-crawler/pkg/api"
	"cognitive-crawler/pkg/logger"

	"github.com/gorilla/websocket"
)

func TestMain(m *testing.M) {
	logger.Init("error", "text")
	os.Exit(m.Run())
}

func newBridge() *Bridge {
	svc := engine.NewService(nil, engine.Options{
		Seed:      5,
		MapWidth:  domain.MapWidth,
		MapHeight: domain.MapHeight,
		Slot:      "test",
	})
	return NewBridge(svc)
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name    string
		cmd     api.ClientCommand
		want    domain.PlayerIntent
		wantErr bool
	}{
		{"Move", api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":1,"dy":-1}`)}, domain.Move(domain.DirNorthEast), false},
		{"Move lowercase", api.ClientCommand{Action: "move", Payload: json.RawMessage(`{"dx":0,"dy":1}`)}, domain.Move(domain.DirSouth), false},
		{"Move zero", api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":0,"dy":0}`)}, domain.PlayerIntent{}, true},
		{"Move without payload", api.ClientCommand{Action: "MOVE"}, domain.PlayerIntent{}, true},
		{"Wait", api.ClientCommand{Action: "WAIT"}, domain.Wait(), false},
		{"Use item", api.ClientCommand{Action: "USE_ITEM", Payload: json.RawMessage(`{"index":2}`)}, domain.UseItem(2), false},
		{"Drop item", api.ClientCommand{Action: "DROP_ITEM", Payload: json.RawMessage(`{"index":0}`)}, domain.DropItem(0), false},
		{"Negative index", api.ClientCommand{Action: "USE_ITEM", Payload: json.RawMessage(`{"index":-1}`)}, domain.PlayerIntent{}, true},
		{"Unequip", api.ClientCommand{Action: "UNEQUIP_ITEM", Payload: json.RawMessage(`{"slot":"Shield"}`)}, domain.UnequipItem(domain.SlotShield), false},
		{"Unknown slot", api.ClientCommand{Action: "UNEQUIP_ITEM", Payload: json.RawMessage(`{"slot":"helmet"}`)}, domain.PlayerIntent{}, true},
		{"Select target", api.ClientCommand{Action: "SELECT_TARGET", Payload: json.RawMessage(`{"x":4,"y":7}`)}, domain.SelectTarget(domain.Point{X: 4, Y: 7}), false},
		{"Cancel", api.ClientCommand{Action: "CANCEL"}, domain.Cancel(), false},
		{"Unknown", api.ClientCommand{Action: "TELEPORT"}, domain.PlayerIntent{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIntent(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIntent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseIntent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBridge_Handle(t *testing.T) {
	ctx := context.Background()
	b := newBridge()

	if resp := b.Handle(ctx, api.ClientCommand{Action: "WAIT"}); resp.Type != api.TypeError {
		t.Fatalf("Expected ERROR before a game starts, got %s", resp.Type)
	}
	if resp := b.Handle(ctx, api.ClientCommand{Action: api.ActionContinue}); resp.Type != api.TypeError {
		t.Fatalf("Expected ERROR when there is no save, got %s", resp.Type)
	}

	resp := b.Handle(ctx, api.ClientCommand{Action: api.ActionNewGame})
	if resp.Type != api.TypeUpdate {
		t.Fatalf("Expected UPDATE, got %s (%s)", resp.Type, resp.Error)
	}
	if resp.Grid == nil || resp.Grid.Width != domain.MapWidth {
		t.Fatalf("Expected grid %d wide, got %+v", domain.MapWidth, resp.Grid)
	}
	if len(resp.Map) == 0 || len(resp.Entities) == 0 {
		t.Fatal("Expected revealed tiles and at least the player")
	}
	for _, tile := range resp.Map {
		if !tile.IsExplored {
			t.Fatal("Unexplored tiles must not be sent")
		}
	}

	resp = b.Handle(ctx, api.ClientCommand{Action: "WAIT"})
	if resp.Tick != 1 {
		t.Errorf("Expected tick 1 after WAIT, got %d", resp.Tick)
	}

	state := b.Handle(ctx, api.ClientCommand{Action: api.ActionState})
	if state.Tick != resp.Tick || state.RunID != resp.RunID {
		t.Error("STATE must repeat the last update")
	}

	if resp := b.Handle(ctx, api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":5}`)}); resp.Type != api.TypeError {
		t.Errorf("Expected ERROR for an invalid payload, got %s", resp.Type)
	}
}

func TestServer_WebSocket(t *testing.T) {
	srv := New(newBridge(), "0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	send := func(cmd api.ClientCommand) api.ServerResponse {
		t.Helper()
		if err := conn.WriteJSON(cmd); err != nil {
			t.Fatalf("write: %v", err)
		}
		var resp api.ServerResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read: %v", err)
		}
		return resp
	}

	resp := send(api.ClientCommand{Action: api.ActionNewGame})
	if resp.Type != api.TypeUpdate || resp.RunState != string(domain.RunAwaitingInput) {
		t.Fatalf("Expected UPDATE awaiting input, got %s/%s", resp.Type, resp.RunState)
	}

	resp = send(api.ClientCommand{Action: "OPEN_INVENTORY"})
	if resp.Mode != string(domain.ModeInventory) {
		t.Errorf("Expected inventory mode, got %s", resp.Mode)
	}
}

func TestServer_SpectatorReceivesUpdates(t *testing.T) {
	srv := New(newBridge(), "0")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	dial := func() *websocket.Conn {
		t.Helper()
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		t.Cleanup(func() { conn.Close() })
		return conn
	}
	player, spectator := dial(), dial()

	// Клиенты регистрируются в хабе после апгрейда соединения
	deadline := time.Now().Add(2 * time.Second)
	for srv.Bridge.Hub().SubscriberCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("clients did not register in hub")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := player.WriteJSON(api.ClientCommand{Action: api.ActionNewGame}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp api.ServerResponse
	if err := spectator.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	if err := spectator.ReadJSON(&resp); err != nil {
		t.Fatalf("spectator read: %v", err)
	}
	if resp.Type != api.TypeUpdate || resp.RunID == "" {
		t.Errorf("spectator got %s with run %q", resp.Type, resp.RunID)
	}

	// Ошибка уходит только отправителю
	if err := spectator.WriteJSON(api.ClientCommand{Action: "MOVE", Payload: json.RawMessage(`{"dx":5}`)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := spectator.ReadJSON(&resp); err != nil {
		t.Fatalf("spectator read: %v", err)
	}
	if resp.Type != api.TypeError {
		t.Errorf("Expected ERROR for sender, got %s", resp.Type)
	}
}
