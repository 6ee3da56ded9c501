package main

import (
	"context"
	"net/http"
	"time"

	"advertBack/internal/handlers"
	"advertBack/internal/models"
	"advertBack/internal/services"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	readLimit     = 1 << 20
	readDeadline  = 120 * time.Second // extended by every pong
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
	sendTimeout   = 5 * time.Second
)

type directMsg struct {
	userID int
	msg    models.Message
}

type unreg struct {
	userID int
	conn   *websocket.Conn
}

type Client struct {
	ID     int
	Socket *websocket.Conn
}

// WebSocketManager keeps one live connection per user. The clients map is
// only touched from Run.
type WebSocketManager struct {
	clients    map[int]*websocket.Conn
	direct     chan directMsg
	register   chan Client
	unregister chan unreg
	done       chan struct{}
	logger     *zap.Logger
	gauge      prometheus.Gauge
}

func NewWebSocketManager(logger *zap.Logger, m *metrics) *WebSocketManager {
	ws := &WebSocketManager{
		clients:    make(map[int]*websocket.Conn),
		direct:     make(chan directMsg, 64),
		register:   make(chan Client),
		unregister: make(chan unreg),
		done:       make(chan struct{}),
		logger:     logger,
	}
	if m != nil {
		ws.gauge = m.wsConnections
	}
	return ws
}

func (ws *WebSocketManager) Run(ctx context.Context) {
	defer func() {
		for id, conn := range ws.clients {
			_ = writeClose(conn, websocket.CloseGoingAway, "server shutdown")
			_ = conn.Close()
			delete(ws.clients, id)
		}
		close(ws.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-ws.register:
			// a second login replaces the first socket
			if old, ok := ws.clients[client.ID]; ok && old != client.Socket {
				_ = old.Close()
			}
			ws.clients[client.ID] = client.Socket
			ws.logger.Debug("ws register", zap.Int("user_id", client.ID))

		case u := <-ws.unregister:
			if cur, ok := ws.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(ws.clients, u.userID)
				ws.logger.Debug("ws unregister", zap.Int("user_id", u.userID))
			}

		case dm := <-ws.direct:
			conn, ok := ws.clients[dm.userID]
			if !ok {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteJSON(dm.msg); err != nil {
				ws.logger.Warn("ws direct send", zap.Int("user_id", dm.userID), zap.Error(err))
				_ = conn.Close()
				delete(ws.clients, dm.userID)
			}
		}
		if ws.gauge != nil {
			ws.gauge.Set(float64(len(ws.clients)))
		}
	}
}

// PushMessage hands msg to the recipient's socket if one is open. It never
// blocks once the manager has stopped.
func (ws *WebSocketManager) PushMessage(userID int, msg models.Message) {
	select {
	case ws.direct <- directMsg{userID: userID, msg: msg}:
	case <-ws.done:
	}
}

func (ws *WebSocketManager) leave(userID int, conn *websocket.Conn) {
	select {
	case ws.unregister <- unreg{userID: userID, conn: conn}:
	case <-ws.done:
	}
}

var _ services.MessagePusher = (*WebSocketManager)(nil)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// wsInbound is a chat message sent over the socket.
type wsInbound struct {
	ToUserID    int    `json:"toUserId"`
	MessageText string `json:"messageText"`
	AdID        *int   `json:"adId,omitempty"`
}

// WebSocketHandler upgrades an authenticated request. The user comes from
// the access token checked by requireRole, not from the socket payload.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		app.clientError(w, http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logger.Warn("ws upgrade", zap.Error(err))
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	select {
	case app.wsManager.register <- Client{ID: userID, Socket: conn}:
	case <-app.wsManager.done:
		_ = conn.Close()
		return
	}

	go app.pingLoop(conn, userID)
	go app.readLoop(conn, userID)
}

func (app *application) pingLoop(conn *websocket.Conn, userID int) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-app.wsManager.done:
			return
		case <-t.C:
		}
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
			app.wsManager.leave(userID, conn)
			return
		}
	}
}

func (app *application) readLoop(conn *websocket.Conn, userID int) {
	defer func() {
		app.wsManager.leave(userID, conn)
		_ = conn.Close()
	}()

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				app.logger.Debug("ws read", zap.Int("user_id", userID), zap.Error(err))
			}
			return
		}
		if in.ToUserID == 0 {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		msg, err := app.chatService.Send(ctx, userID, in.ToUserID, in.MessageText, in.AdID)
		cancel()
		if err != nil {
			app.logger.Warn("ws send message", zap.Int("user_id", userID), zap.Error(err))
			continue
		}
		if msg != nil {
			// the sender gets the stored copy with its id and timestamp
			app.wsManager.PushMessage(userID, *msg)
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
