package engine

import (
	"context"
	"errors"
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/infrastructure/storage"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Store - хранилище сохранений (см. storage.SaveStore).
type Store interface {
	Saver
	Load(ctx context.Context, slot string) (*domain.World, error)
	Delete(ctx context.Context, slot string) error
}

// Options - параметры новых забегов.
type Options struct {
	Seed      uint64
	MapWidth  int
	MapHeight int
	Slot      string
}

// GameService - главное меню: новый забег, продолжение, сохранение.
// Управляет жизненным циклом сессий поверх хранилища.
type GameService struct {
	store Store
	opts  Options
	log   *logrus.Entry
}

func NewService(store Store, opts Options) *GameService {
	return &GameService{
		store: store,
		opts:  opts,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "game_service",
			"slot":      opts.Slot,
		}),
	}
}

// NewGame начинает забег с сидом из настроек.
func (s *GameService) NewGame() (*Session, error) {
	w, err := NewRun(s.opts.Seed, s.opts.MapWidth, s.opts.MapHeight)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return NewSession(w, s.saver(), s.opts.Slot), nil
}

// Continue загружает забег из слота. Битое сохранение удаляется,
// вызывающий должен вернуться в меню или начать новую игру.
func (s *GameService) Continue(ctx context.Context) (*Session, error) {
	if s.store == nil {
		return nil, storage.ErrSlotNotFound
	}
	w, err := s.store.Load(ctx, s.opts.Slot)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptSave) {
			s.log.WithError(err).Warn("Corrupt save discarded")
			if delErr := s.store.Delete(ctx, s.opts.Slot); delErr != nil {
				s.log.WithError(delErr).Warn("Failed to delete corrupt save")
			}
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"run_id": w.RunID,
		"depth":  w.Depth,
		"tick":   w.Tick,
	}).Info("Run restored")
	return NewSession(w, s.saver(), s.opts.Slot), nil
}

// Advance прокидывает ввод в сессию. Смерть игрока стирает сохранение.
func (s *GameService) Advance(ctx context.Context, session *Session, intent domain.PlayerIntent) (domain.GameSnapshot, error) {
	snap, err := session.Advance(intent)
	if err != nil {
		return snap, err
	}
	if snap.Terminal && s.store != nil {
		if err := s.store.Delete(ctx, s.opts.Slot); err != nil {
			s.log.WithError(err).Warn("Failed to delete save of a finished run")
		}
	}
	return snap, nil
}

// saver - nil-интерфейс, если хранилища нет.
func (s *GameService) saver() Saver {
	if s.store == nil {
		return nil
	}
	return s.store
}
