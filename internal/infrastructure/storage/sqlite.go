package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var ErrSlotNotFound = errors.New("save slot not found")

const schema = `CREATE TABLE IF NOT EXISTS saves (
	slot     TEXT PRIMARY KEY,
	run_id   TEXT NOT NULL,
	depth    INTEGER NOT NULL,
	tick     INTEGER NOT NULL,
	saved_at INTEGER NOT NULL,
	blob     BLOB NOT NULL
)`

// SlotInfo - метаданные сохранения без тела.
type SlotInfo struct {
	Slot    string
	RunID   string
	Depth   int
	Tick    int
	SavedAt time.Time
}

// SaveStore хранит сохранения в именованных слотах SQLite.
type SaveStore struct {
	sqlDB *sql.DB
}

// Open открывает (или создаёт) базу сохранений.
func Open(ctx context.Context, path string) (*SaveStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SaveStore{sqlDB: sqlDB}, nil
}

// Close закрывает базу.
func (s *SaveStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save кодирует мир и перезаписывает слот.
func (s *SaveStore) Save(ctx context.Context, slot string, w *domain.World) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return fmt.Errorf("slot name is required")
	}

	blob, err := Encode(w)
	if err != nil {
		return fmt.Errorf("encode world: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO saves (slot, run_id, depth, tick, saved_at, blob)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   run_id = excluded.run_id,
		   depth = excluded.depth,
		   tick = excluded.tick,
		   saved_at = excluded.saved_at,
		   blob = excluded.blob`,
		slot, w.RunID.String(), w.Depth, w.Tick, time.Now().UTC().UnixMilli(), blob,
	)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "save_store",
		"slot":      slot,
		"run_id":    w.RunID,
		"depth":     w.Depth,
		"tick":      w.Tick,
		"bytes":     len(blob),
	}).Info("Game saved.")
	return nil
}

// Load читает и декодирует слот.
func (s *SaveStore) Load(ctx context.Context, slot string) (*domain.World, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blob []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT blob FROM saves WHERE slot = ?`, slot).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %q: %w", slot, ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", slot, err)
	}

	w, err := Decode(blob)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "save_store",
			"slot":      slot,
		}).WithError(err).Warn("Rejected corrupt save.")
		return nil, err
	}
	return w, nil
}

// Delete удаляет слот (после смерти игрока). Отсутствующий слот - не ошибка.
func (s *SaveStore) Delete(ctx context.Context, slot string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	return nil
}

// List возвращает метаданные всех слотов, новые первыми.
func (s *SaveStore) List(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT slot, run_id, depth, tick, saved_at FROM saves ORDER BY saved_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	out := make([]SlotInfo, 0)
	for rows.Next() {
		var info SlotInfo
		var savedAt int64
		if err := rows.Scan(&info.Slot, &info.RunID, &info.Depth, &info.Tick, &savedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		info.SavedAt = time.UnixMilli(savedAt).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}
