package tui

import (
	"context"
	"errors"
	"fmt"

	"cognitive-crawler/internal/domain"
	"cognitive-crawler/internal/engine"
	"cognitive-crawler/internal/infrastructure/storage"
	"cognitive-crawler/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// App - терминальный клиент поверх GameService.
type App struct {
	screen  tcell.Screen
	service *engine.GameService
	session *engine.Session
	snap    domain.GameSnapshot
	cursor  *domain.Point // курсор прицеливания
	log     *logrus.Entry
}

func NewApp(screen tcell.Screen, service *engine.GameService) *App {
	return &App{
		screen:  screen,
		service: service,
		log:     logger.Log.WithField("component", "tui"),
	}
}

// Start продолжает сохранённый забег или начинает новый.
func (a *App) Start(ctx context.Context) error {
	session, err := a.service.Continue(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSlotNotFound) {
			a.log.WithError(err).Warn("Continue failed, starting new run")
		}
		return a.newGame()
	}
	a.attach(session)
	return nil
}

func (a *App) newGame() error {
	session, err := a.service.NewGame()
	if err != nil {
		return err
	}
	a.attach(session)
	return nil
}

func (a *App) attach(session *engine.Session) {
	a.session = session
	a.snap = session.Snapshot()
	a.cursor = nil
}

// Run крутит цикл ввода до выхода игрока или падения сессии.
func (a *App) Run(ctx context.Context) error {
	for {
		Draw(a.screen, a.snap, a.cursor)

		switch ev := a.screen.PollEvent().(type) {
		case nil:
			// экран закрыт
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			quit, err := a.HandleKey(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// HandleKey обрабатывает одно нажатие. quit - игрок вышел.
func (a *App) HandleKey(ctx context.Context, ev *tcell.EventKey) (quit bool, err error) {
	// 1. Конец забега: только выход или новая игра
	if a.snap.Terminal {
		switch ev.Rune() {
		case 'q':
			return true, nil
		case 'n':
			return false, a.newGame()
		}
		return false, nil
	}

	// 2. Пауза: забег уже сохранён, можно выйти
	if a.snap.Mode == domain.ModeMenu && ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
		return true, nil
	}

	// 3. Прицеливание двигает курсор, Enter подтверждает
	if a.snap.Mode == domain.ModeTargeting && a.cursor != nil {
		if d, ok := Direction(ev); ok {
			a.moveCursor(d)
			return false, nil
		}
		if ev.Key() == tcell.KeyEnter {
			return false, a.advance(ctx, domain.SelectTarget(*a.cursor))
		}
	}

	intent, ok := MapKey(ev, a.snap.Mode)
	if !ok {
		return false, nil
	}
	return false, a.advance(ctx, intent)
}

func (a *App) advance(ctx context.Context, intent domain.PlayerIntent) error {
	snap, err := a.service.Advance(ctx, a.session, intent)
	if err != nil {
		return fmt.Errorf("advance %s: %w", intent.Kind, err)
	}
	a.snap = snap

	switch {
	case snap.Mode != domain.ModeTargeting:
		a.cursor = nil
	case a.cursor == nil:
		// курсор стартует с клетки игрока
		if p, ok := a.session.World.Player().Point(); ok {
			a.cursor = &p
		}
	}
	return nil
}

func (a *App) moveCursor(d domain.Direction) {
	dx, dy := d.Delta()
	next := a.cursor.Add(dx, dy)
	if next.X < 0 || next.Y < 0 || next.X >= a.snap.Width || next.Y >= a.snap.Height {
		return
	}
	a.cursor = &next
}

// Snapshot - последний отрисованный снапшот.
func (a *App) Snapshot() domain.GameSnapshot {
	return a.snap
}
