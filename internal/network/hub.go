package network

import (
	"sync"

	"cognitive-crawler/pkg/api"
	"cognitive-crawler/pkg/logger"
)

// Буфер личного канала подписчика.
const subscriberBuffer = 16

// Broadcaster занимается только рассылкой ответов подписчикам:
// игроку и зрителям одной сессии.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ClientID -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал клиента. Канал принадлежит хабу:
// закрывается только в Unregister.
func (b *Broadcaster) Register(clientID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, subscriberBuffer)
	b.subscribers[clientID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		close(ch)
		delete(b.subscribers, clientID)
	}
}

// SendTo отправляет ответ одному клиенту (Unicast)
func (b *Broadcaster) SendTo(clientID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[clientID]; ok {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("client_id", clientID).Warn("Hub: channel full, message dropped")
		}
	}
}

// Broadcast отправляет всем. Медленные клиенты пропускают обновление.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("client_id", id).Debug("Hub: slow client skipped")
		}
	}
}

// HasSubscriber проверяет, подключен ли клиент.
func (b *Broadcaster) HasSubscriber(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[clientID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
