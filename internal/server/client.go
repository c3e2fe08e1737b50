package server

import (
	"context"
	"net/http"
	"time"

	"cognitive-crawler/pkg/api"
	"cognitive-crawler/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Bridge
type Client struct {
	ID     string
	Bridge *Bridge
	Conn   *websocket.Conn
	Send   chan api.ServerResponse // личный канал из Hub
	log    *logrus.Entry
}

func NewClient(bridge *Bridge, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:     id,
		Bridge: bridge,
		Conn:   conn,
		Send:   bridge.Hub().Register(id),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ws_client",
			"client_id": id,
		}),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Bridge.Hub().Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Warn("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")

	// Если игра уже идет, сразу отдаем текущее состояние
	if resp := c.Bridge.Handle(context.Background(), api.ClientCommand{Action: api.ActionState}); resp.Type == api.TypeUpdate {
		c.Bridge.Hub().SendTo(c.ID, resp)
	}

	// ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Errorf("WS Error: %v", err)
			}
			break
		}
		resp := c.Bridge.Handle(context.Background(), cmd)
		if resp.Type == api.TypeError || cmd.Action == api.ActionState {
			c.Bridge.Hub().SendTo(c.ID, resp)
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
