package engine

import (
	"context"
	"errors"
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine/handlers"
	"cognitive-crawler/internal/engine/handlers/actions"
	"cognitive-crawler/internal/systems"
	"cognitive-crawler/pkg/logger"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// ErrSessionCrashed - сессия уже упала на нарушении инварианта и больше
// не принимает ввод.
var ErrSessionCrashed = errors.New("session crashed")

// События автомата фаз хода.
const (
	evCommit      = "commit"       // игрок совершает действие
	evAbort       = "abort"        // действие отклонено или ждёт цели
	evEndPlayer   = "end_player"   // ход игрока завершён
	evEndMonsters = "end_monsters" // все монстры сходили
	evDescend     = "descend"      // спуск по лестнице
	evRefresh     = "refresh"      // новый уровень готов
	evResume      = "resume"       // тик завершён, ждём ввод
	evDie         = "die"          // игрок погиб
	evPause       = "pause"        // открыто главное меню
	evUnpause     = "unpause"      // меню закрыто
)

// Saver сохраняет мир в именованный слот (см. storage.SaveStore).
type Saver interface {
	Save(ctx context.Context, slot string, w *domain.World) error
}

// Session - один забег: мир плюс планировщик фаз.
// Не потокобезопасна: Advance вызывается из одного потока управления.
type Session struct {
	World *domain.World

	fsm       *fsm.FSM
	mode      domain.InputMode
	targeting *handlers.TargetRequest
	handlers  map[domain.IntentKind]handlers.HandlerFunc
	turns     *TurnManager

	saver Saver
	slot  string

	transitioned bool  // в текущем шаге был спуск
	crashed      error // первое нарушение инварианта

	log *logrus.Entry
}

// NewSession оборачивает готовый мир (новый или загруженный) в планировщик.
// saver может быть nil: тогда OpenMenu только ставит игру на паузу.
func NewSession(w *domain.World, saver Saver, slot string) *Session {
	s := &Session{
		World:    w,
		mode:     domain.ModeNormal,
		handlers: actions.Registry(),
		turns:    NewTurnManager(),
		saver:    saver,
		slot:     slot,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "scheduler",
			"run_id":    w.RunID,
		}),
	}

	initial := string(domain.RunAwaitingInput)
	if w.PlayerDead {
		initial = string(domain.RunGameOver)
	}

	s.fsm = fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: evCommit, Src: []string{string(domain.RunAwaitingInput)}, Dst: string(domain.RunPlayerTurn)},
			{Name: evAbort, Src: []string{string(domain.RunPlayerTurn)}, Dst: string(domain.RunAwaitingInput)},
			{Name: evEndPlayer, Src: []string{string(domain.RunPlayerTurn)}, Dst: string(domain.RunMonsterTurn)},
			{Name: evEndMonsters, Src: []string{string(domain.RunMonsterTurn)}, Dst: string(domain.RunMapRefresh)},
			{Name: evDescend, Src: []string{string(domain.RunPlayerTurn)}, Dst: string(domain.RunLevelTransition)},
			{Name: evRefresh, Src: []string{string(domain.RunLevelTransition)}, Dst: string(domain.RunMapRefresh)},
			{Name: evResume, Src: []string{string(domain.RunMapRefresh)}, Dst: string(domain.RunAwaitingInput)},
			{Name: evDie, Src: []string{
				string(domain.RunPlayerTurn),
				string(domain.RunMonsterTurn),
				string(domain.RunMapRefresh),
			}, Dst: string(domain.RunGameOver)},
			{Name: evPause, Src: []string{string(domain.RunAwaitingInput)}, Dst: string(domain.RunPaused)},
			{Name: evUnpause, Src: []string{string(domain.RunPaused)}, Dst: string(domain.RunAwaitingInput)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				s.log.WithFields(logrus.Fields{
					"event": e.Event,
					"from":  e.Src,
					"to":    e.Dst,
					"tick":  s.World.Tick,
				}).Debug("Run state changed")
			},
		},
	)

	return s
}

// State - текущая фаза планировщика.
func (s *Session) State() domain.RunState {
	return domain.RunState(s.fsm.Current())
}

// Mode - какой ввод сейчас ожидается.
func (s *Session) Mode() domain.InputMode {
	return s.mode
}

// Crashed возвращает нарушение инварианта, на котором упала сессия.
func (s *Session) Crashed() error {
	return s.crashed
}

// Advance - единственная точка входа для ввода. Применяет намерение и
// возвращает снапшот после завершённого шага.
func (s *Session) Advance(intent domain.PlayerIntent) (domain.GameSnapshot, error) {
	if s.crashed != nil {
		return domain.GameSnapshot{}, fmt.Errorf("%w: %w", ErrSessionCrashed, s.crashed)
	}
	s.transitioned = false

	if s.State() == domain.RunGameOver {
		return s.Snapshot(), nil
	}

	if err := s.dispatch(intent); err != nil {
		if !errors.Is(err, domain.ErrInvariantViolation) {
			err = fmt.Errorf("%w: %w", domain.ErrInvariantViolation, err)
		}
		s.crashed = err
		s.log.WithError(err).WithField("intent", intent.Kind.String()).Error("Session crashed")
		return domain.GameSnapshot{}, err
	}

	return s.Snapshot(), nil
}

// dispatch маршрутизирует намерение по режиму ввода.
// Намерение не из своего режима игнорируется.
func (s *Session) dispatch(intent domain.PlayerIntent) error {
	switch s.mode {
	case domain.ModeNormal:
		switch intent.Kind {
		case domain.IntentMove, domain.IntentWait, domain.IntentPickUp, domain.IntentDescendStairs:
			return s.commit(intent, nil)
		case domain.IntentOpenInventory:
			s.mode = domain.ModeInventory
			return nil
		case domain.IntentOpenDropMenu:
			s.mode = domain.ModeDropMenu
			return nil
		case domain.IntentOpenRemoveEquipmentMenu:
			s.mode = domain.ModeRemoveEquipment
			return nil
		case domain.IntentOpenMenu:
			return s.openMenu()
		}

	case domain.ModeInventory:
		if intent.Kind == domain.IntentUseItem {
			return s.commit(intent, nil)
		}
	case domain.ModeDropMenu:
		if intent.Kind == domain.IntentDropItem {
			return s.commit(intent, nil)
		}
	case domain.ModeRemoveEquipment:
		if intent.Kind == domain.IntentUnequipItem {
			return s.commit(intent, nil)
		}

	case domain.ModeTargeting:
		if intent.Kind == domain.IntentSelectTarget && s.targeting != nil {
			target := intent.Target
			return s.commit(domain.UseItem(s.targeting.ItemIndex), &target)
		}

	case domain.ModeMenu:
		if intent.Kind == domain.IntentCancel {
			s.mode = domain.ModeNormal
			return s.fire(evUnpause)
		}
		return nil
	}

	if intent.Kind == domain.IntentCancel && s.mode != domain.ModeNormal {
		s.mode = domain.ModeNormal
		s.targeting = nil
		return nil
	}

	s.log.WithFields(logrus.Fields{
		"intent": intent.Kind.String(),
		"mode":   s.mode,
	}).Debug("Intent ignored in current mode")
	return nil
}

// commit проводит одно действие игрока через полный цикл фаз.
func (s *Session) commit(intent domain.PlayerIntent, target *domain.Point) error {
	handler, ok := s.handlers[intent.Kind]
	if !ok {
		return nil
	}

	player := s.World.Player()
	if player == nil {
		return fmt.Errorf("%w: no player entity", domain.ErrInvariantViolation)
	}

	// 1. PlayerTurn
	if err := s.fire(evCommit); err != nil {
		return err
	}
	s.mode = domain.ModeNormal
	s.targeting = nil

	res, err := handler(handlers.Context{
		World:  s.World,
		Actor:  player,
		Intent: intent,
		Target: target,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			return err
		}
		// Отказ: ход не тратится
		s.World.Logf(domain.LogError, "%s", handlers.RejectMessage(err))
		s.log.WithError(err).WithField("intent", intent.Kind.String()).Debug("Intent rejected")
		return s.fire(evAbort)
	}

	if res.Targeting != nil {
		s.mode = domain.ModeTargeting
		s.targeting = res.Targeting
		s.World.Logf(domain.LogInfo, "Выберите цель.")
		return s.fire(evAbort)
	}
	if !res.Consumed {
		return s.fire(evAbort)
	}

	systems.TickHunger(s.World, player)
	if s.World.PlayerDead {
		return s.gameOver()
	}

	// 2. LevelTransition или MonsterTurn
	if res.Event == handlers.EventDescend {
		if err := s.fire(evDescend); err != nil {
			return err
		}
		if err := s.handleLevelTransition(); err != nil {
			return err
		}
		if err := s.fire(evRefresh); err != nil {
			return err
		}
	} else {
		if err := s.fire(evEndPlayer); err != nil {
			return err
		}
		if err := s.processMonsterTurns(); err != nil {
			return err
		}
		if s.World.PlayerDead {
			return s.gameOver()
		}
		if err := s.fire(evEndMonsters); err != nil {
			return err
		}
	}

	// 3. MapRefresh
	if err := s.refreshMap(); err != nil {
		return err
	}
	return s.fire(evResume)
}

// refreshMap завершает тик: убирает мёртвых, пересчитывает зрение,
// двигает часы и проверяет целостность мира.
func (s *Session) refreshMap() error {
	removed := s.World.Flush()
	recomputed := systems.RefreshViewsheds(s.World)
	s.World.Tick++

	s.log.WithFields(logrus.Fields{
		"tick":      s.World.Tick,
		"removed":   len(removed),
		"viewsheds": recomputed,
		"entities":  s.World.Len(),
		"depth":     s.World.Depth,
	}).Debug("Map refreshed")

	return s.World.Validate()
}

// gameOver фиксирует смерть игрока. Мир доводится до согласованного
// состояния, чтобы последний снапшот показывал итог тика.
func (s *Session) gameOver() error {
	if err := s.fire(evDie); err != nil {
		return err
	}
	s.World.Flush()
	systems.RefreshViewsheds(s.World)
	s.World.Tick++

	s.log.WithFields(logrus.Fields{
		"tick":  s.World.Tick,
		"depth": s.World.Depth,
	}).Info("Player died, run is over")
	return nil
}

// openMenu сохраняет забег и ставит его на паузу.
func (s *Session) openMenu() error {
	if s.saver != nil {
		if err := s.saver.Save(context.Background(), s.slot, s.World); err != nil {
			s.log.WithError(err).WithField("slot", s.slot).Warn("Save failed, staying in game")
			s.World.Logf(domain.LogError, "Не удалось сохранить игру.")
			return nil
		}
		s.World.Logf(domain.LogSystem, "Игра сохранена.")
	}
	s.mode = domain.ModeMenu
	return s.fire(evPause)
}

// fire переводит автомат. Недопустимый переход - ошибка планировщика.
func (s *Session) fire(event string) error {
	if err := s.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("%w: run state %s cannot handle %q: %v",
			domain.ErrInvariantViolation, s.fsm.Current(), event, err)
	}
	return nil
}
