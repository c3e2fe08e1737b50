package server

import (
	"context"
	"errors"
	"sync"

	"cognitive-crawler/internal/engine"
	"cognitive-crawler/internal/network"
	"cognitive-crawler/pkg/api"
	"cognitive-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrNoSession - игра еще не начата (нужен NEW_GAME или CONTINUE).
var ErrNoSession = errors.New("no active session")

// Bridge держит единственную сессию и сериализует ввод из всех
// соединений: ядро видит один поток управления. Каждое обновление
// рассылается всем подключенным клиентам (игрок и зрители).
type Bridge struct {
	mu      sync.Mutex
	service *engine.GameService
	session *engine.Session
	hub     *network.Broadcaster
	last    api.ServerResponse
	log     *logrus.Entry
}

func NewBridge(service *engine.GameService) *Bridge {
	return &Bridge{
		service: service,
		hub:     network.NewBroadcaster(),
		log:     logger.Log.WithField("component", "ws_bridge"),
	}
}

// Hub - рассылка обновлений по клиентам.
func (b *Bridge) Hub() *network.Broadcaster {
	return b.hub
}

// Handle применяет команду клиента и возвращает ответ. UPDATE после
// изменения мира уже разослан всем; отправителю лично нужны только
// ошибки и ответ на STATE.
func (b *Bridge) Handle(ctx context.Context, cmd api.ClientCommand) api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch cmd.Action {
	case api.ActionNewGame:
		s, err := b.service.NewGame()
		if err != nil {
			return b.fail(err)
		}
		b.session = s
		return b.publish(BuildResponse(s.Snapshot()))

	case api.ActionContinue:
		s, err := b.service.Continue(ctx)
		if err != nil {
			return b.fail(err)
		}
		b.session = s
		return b.publish(BuildResponse(s.Snapshot()))

	case api.ActionState:
		if b.session == nil {
			return ErrorResponse(ErrNoSession)
		}
		return b.last
	}

	if b.session == nil {
		return ErrorResponse(ErrNoSession)
	}

	intent, err := ParseIntent(cmd)
	if err != nil {
		b.log.WithError(err).WithField("action", cmd.Action).Debug("Bad command")
		return ErrorResponse(err)
	}

	snap, err := b.service.Advance(ctx, b.session, intent)
	if err != nil {
		return b.fail(err)
	}
	return b.publish(BuildResponse(snap))
}

// WithSession дает доступ к сессии под замком (debug-эндпоинты).
func (b *Bridge) WithSession(fn func(s *engine.Session)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return false
	}
	fn(b.session)
	return true
}

func (b *Bridge) publish(resp api.ServerResponse) api.ServerResponse {
	b.last = resp
	b.hub.Broadcast(resp)
	return resp
}

func (b *Bridge) fail(err error) api.ServerResponse {
	b.log.WithError(err).Warn("Command failed")
	return ErrorResponse(err)
}
