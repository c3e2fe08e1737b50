package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/systems"
	"cognitive-crawler/pkg/dungeon"
	"cognitive-crawler/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", "text")
	os.Exit(m.Run())
}

func newRun(t *testing.T, seed uint64) *domain.World {
	t.Helper()

	level := dungeon.Generate(1, seed)
	w := domain.NewWorld(seed)
	w.ReplaceMap(level.Map)
	w.Spawn(dungeon.CreatePlayer(level.Start))
	if _, err := dungeon.Populate(w, level); err != nil {
		t.Fatalf("populate: %v", err)
	}
	w.Tick = 17
	w.Logf(domain.LogInfo, "Добро пожаловать.")
	return w
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	w := newRun(t, 2024)

	blob, err := Encode(w)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(blob[:4]) != MagicHeader {
		t.Fatalf("magic = %q", blob[:4])
	}

	got, err := Decode(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	a, _ := json.Marshal(w)
	b, _ := json.Marshal(got)
	if !bytes.Equal(a, b) {
		t.Error("decoded world differs from the original")
	}
	if got.Player() == nil {
		t.Error("player lost in round trip")
	}
}

func TestDecode_Corrupt(t *testing.T) {
	w := newRun(t, 7)
	blob, err := Encode(w)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	headerLen := binary.Size(SaveFileHeader{})

	mutate := func(fn func(b []byte) []byte) []byte {
		c := bytes.Clone(blob)
		return fn(c)
	}

	tests := []struct {
		name string
		blob []byte
	}{
		{"Empty", nil},
		{"Bad magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b })},
		{"Bad version", mutate(func(b []byte) []byte { b[4] = 9; return b })},
		{"Truncated body", mutate(func(b []byte) []byte { return b[:len(b)-10] })},
		{"Flipped body byte", mutate(func(b []byte) []byte { b[headerLen+5] ^= 0xFF; return b })},
		{"Header only", mutate(func(b []byte) []byte { return b[:headerLen] })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.blob)
			if !errors.Is(err, ErrCorruptSave) {
				t.Fatalf("err = %v, want ErrCorruptSave", err)
			}
			if got != nil {
				t.Error("corrupt save must not yield a partial world")
			}
		})
	}
}

// reframe переписывает JSON-тело сохранения и пересчитывает длину и CRC,
// так что Decode видит целый файл.
func reframe(t *testing.T, blob []byte, edit func(body []byte) []byte) []byte {
	t.Helper()

	var header SaveFileHeader
	r := bytes.NewReader(blob)
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		t.Fatalf("read header: %v", err)
	}
	body := edit(bytes.Clone(blob[binary.Size(header):]))
	header.BodyLen = uint32(len(body))
	header.CRC = crc32.ChecksumIEEE(body)

	var out bytes.Buffer
	if err := binary.Write(&out, binary.LittleEndian, &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	out.Write(body)
	return out.Bytes()
}

func TestDecode_NullEquipmentSlots(t *testing.T) {
	w := newRun(t, 5)
	dagger := dungeon.Dagger.Spawn(domain.Point{})
	dagger.Position = nil
	daggerID := w.Spawn(dagger)
	w.Player().Inventory.Add(daggerID)

	blob, err := Encode(w)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	edited := reframe(t, blob, func(body []byte) []byte {
		if !bytes.Contains(body, []byte(`"slots":{}`)) {
			t.Fatal("player has no empty equipment slots to null out")
		}
		return bytes.ReplaceAll(body, []byte(`"slots":{}`), []byte(`"slots":null`))
	})

	got, err := Decode(edited)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	player := got.Player()
	if player.Equipped == nil || player.Equipped.Slots == nil {
		t.Fatal("equipment slots not initialized after load")
	}

	if err := systems.Equip(got, player, got.Get(daggerID)); err != nil {
		t.Fatalf("equip after load: %v", err)
	}
	if id, ok := player.Equipped.Get(domain.SlotWeapon); !ok || id != daggerID {
		t.Errorf("weapon slot = %s, want %s", id, daggerID)
	}
}

func TestDecode_RejectsInvalidWorld(t *testing.T) {
	w := newRun(t, 9)
	// Предмет в инвентаре, который одновременно лежит на полу
	ground := w.Query(func(e *domain.Entity) bool { return e.IsItem() && e.Position != nil })
	if len(ground) == 0 {
		t.Skip("level has no floor items")
	}
	w.Player().Inventory.Add(ground[0].ID)

	blob, err := Encode(w)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(blob); !errors.Is(err, ErrCorruptSave) {
		t.Errorf("err = %v, want ErrCorruptSave", err)
	}
}

func TestWriteReadFile(t *testing.T) {
	w := newRun(t, 11)
	path := filepath.Join(t.TempDir(), "run.cdsv")

	if err := WriteFile(path, w); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.RunID != w.RunID || got.Tick != w.Tick {
		t.Errorf("got run %s tick %d, want %s tick %d", got.RunID, got.Tick, w.RunID, w.Tick)
	}
}

func TestSaveStore(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	w := newRun(t, 31)

	// 1. Пустой слот
	if _, err := store.Load(ctx, "main"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("err = %v, want ErrSlotNotFound", err)
	}

	// 2. Сохранение и загрузка
	if err := store.Save(ctx, "main", w); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "main")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RunID != w.RunID {
		t.Errorf("run id = %s, want %s", got.RunID, w.RunID)
	}

	// 3. Перезапись слота
	w.Tick = 99
	if err := store.Save(ctx, "main", w); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	slots, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 1 || slots[0].Tick != 99 || slots[0].Slot != "main" {
		t.Errorf("slots = %+v", slots)
	}

	// 4. Удаление
	if err := store.Delete(ctx, "main"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "main"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("err after delete = %v, want ErrSlotNotFound", err)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Error("empty path must fail")
	}
}
