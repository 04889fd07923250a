// ============================================================================
// WEBSOCKET HUB - Менеджер WebSocket соединений устройств
// ============================================================================
//
// Hub знает все подключенные устройства (браузеры с приложением LetsGo)
// и доставляет им снимки экрана и уведомления по device_id.
//
// Протокол:
//   1. клиент подключается к /ws
//   2. в течение authTimeout присылает {"token": "<jwt устройства>"}
//   3. сервер отвечает {"status":"authenticated","device_id":...}
//   4. дальше: сервер шлет {"type":..., "data":...},
//      клиент шлет {"type":..., "data":...} (обрабатывает MessageHandler)
//
// Одно устройство может держать несколько соединений (вкладки):
// SendToDevice доставляет сообщение во все.
//
// ============================================================================

package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"letsgo/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
)

const (
	// authTimeout: сколько ждем первое сообщение с токеном
	authTimeout = 5 * time.Second

	// pingInterval: как часто сервер отправляет ping клиенту
	pingInterval = 30 * time.Second

	// pongWait: если клиент молчит дольше, соединение считается мертвым
	pongWait = 60 * time.Second

	// maxMessageSize: максимальный размер входящего сообщения (8 KB)
	maxMessageSize = 8192

	// writeWait: таймаут на отправку одного сообщения
	writeWait = 10 * time.Second

	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: ограничить origin доменом веб-клиента, когда он появится
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AuthFunc проверяет токен и возвращает device_id и канал
type AuthFunc func(token string) (deviceID, channel string, err error)

// MessageHandler: обработчик входящих сообщений от клиента
type MessageHandler func(client *Client, messageType string, data json.RawMessage) error

// ConnectHandler вызывается после успешной аутентификации клиента
type ConnectHandler func(client *Client)

// Client: одно WebSocket соединение
type Client struct {
	ID       string // уникальный ID соединения
	DeviceID string // из JWT
	Channel  string // из JWT
	conn     *websocket.Conn
	send     chan []byte
	hub      *Hub
}

// Hub управляет всеми активными WebSocket соединениями.
// Весь доступ к clients и closed защищен mu.
type Hub struct {
	clients        map[string]*Client
	closed         bool
	mu             sync.RWMutex
	connected      *atomic.Int64
	authFunc       AuthFunc
	messageHandler MessageHandler
	onConnect      ConnectHandler
	log            *logger.Logger
}

// NewHub создает новый WebSocket Hub. Не забудьте запустить hub.Run(ctx).
func NewHub(authFunc AuthFunc, log *logger.Logger) *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		connected: atomic.NewInt64(0),
		authFunc:  authFunc,
		log:       log,
	}
}

// SetMessageHandler устанавливает обработчик входящих сообщений
func (h *Hub) SetMessageHandler(handler MessageHandler) {
	h.messageHandler = handler
}

// SetConnectHandler устанавливает обработчик новых соединений
func (h *Hub) SetConnectHandler(handler ConnectHandler) {
	h.onConnect = handler
}

// Run ждет завершения контекста и закрывает все соединения
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
	h.connected.Store(0)
	h.mu.Unlock()

	h.log.Info(logger.Entry{Action: "hub_stopped", Message: "websocket hub stopped"})
}

// Connected: текущее число соединений
func (h *Hub) Connected() int64 {
	return h.connected.Load()
}

// register добавляет клиента. После остановки hub новых клиентов не принимает.
func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c.ID] = c
	h.connected.Inc()
	h.mu.Unlock()

	h.log.Info(logger.Entry{
		Action:   "client_registered",
		Message:  c.ID,
		DeviceID: c.DeviceID,
		Additional: map[string]any{
			"channel": c.Channel,
		},
	})
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.send)
		h.connected.Dec()
	}
	h.mu.Unlock()

	h.log.Info(logger.Entry{Action: "client_unregistered", Message: c.ID, DeviceID: c.DeviceID})
}

// SendToDevice отправляет сообщение во все соединения устройства
func (h *Hub) SendToDevice(deviceID string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, c := range h.clients {
		if c.DeviceID != deviceID {
			continue
		}
		select {
		case c.send <- message:
			delivered++
		default:
			h.log.Warn(logger.Entry{
				Action:     "send_to_device_dropped",
				Message:    "send buffer full",
				DeviceID:   deviceID,
				Additional: map[string]any{"client_id": c.ID},
			})
		}
	}
	return delivered
}

// IsDeviceConnected проверяет, есть ли у устройства открытое соединение
func (h *Hub) IsDeviceConnected(deviceID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.DeviceID == deviceID {
			return true
		}
	}
	return false
}

// SendTypedMessage отправляет {"type":..., "data":...} устройству
func (h *Hub) SendTypedMessage(deviceID, msgType string, data any) error {
	msg, err := json.Marshal(map[string]any{
		"type": msgType,
		"data": data,
	})
	if err != nil {
		return err
	}
	h.SendToDevice(deviceID, msg)
	return nil
}

// ServeWS обрабатывает HTTP запрос на WebSocket соединение
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(logger.Entry{
			Action:  "ws_upgrade_failed",
			Message: err.Error(),
			Error:   logger.Err(err),
		})
		return
	}

	_ = conn.SetReadDeadline(time.Now().Add(authTimeout))

	var authMsg struct {
		Token string `json:"token"`
	}
	if err := conn.ReadJSON(&authMsg); err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseProtocolError, "auth timeout"))
		_ = conn.Close()
		h.log.Warn(logger.Entry{Action: "ws_auth_failed", Message: "no auth message received", Error: logger.Err(err)})
		return
	}

	deviceID, channel, err := h.authFunc(authMsg.Token)
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"error": "invalid token"})
		_ = conn.Close()
		h.log.Warn(logger.Entry{Action: "ws_auth_invalid_token", Message: err.Error(), Error: logger.Err(err)})
		return
	}

	client := &Client{
		ID:       uuid.NewString(),
		DeviceID: deviceID,
		Channel:  channel,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		hub:      h,
	}

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if !h.register(client) {
		_ = conn.WriteJSON(map[string]string{"error": "server shutting down"})
		_ = conn.Close()
		h.log.Warn(logger.Entry{Action: "ws_register_after_stop", Message: client.ID, DeviceID: deviceID})
		return
	}
	if err := conn.WriteJSON(map[string]string{"status": "authenticated", "device_id": deviceID}); err != nil {
		h.unregister(client)
		_ = conn.Close()
		return
	}

	if h.onConnect != nil {
		h.onConnect(client)
	}

	go client.writePump()
	go client.readPump()
}

// readPump читает сообщения от клиента
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warn(logger.Entry{
					Action:   "ws_read_error",
					Message:  c.ID,
					DeviceID: c.DeviceID,
					Error:    logger.Err(err),
				})
			}
			return
		}

		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data,omitempty"`
		}
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.log.Warn(logger.Entry{
				Action:   "ws_parse_message_error",
				Message:  err.Error(),
				DeviceID: c.DeviceID,
				Additional: map[string]any{
					"client_id": c.ID,
					"raw":       string(message),
				},
			})
			continue
		}

		if c.hub.messageHandler == nil {
			continue
		}
		if err := c.hub.messageHandler(c, msg.Type, msg.Data); err != nil {
			c.hub.log.Error(logger.Entry{
				Action:   "ws_handle_message_error",
				Message:  err.Error(),
				DeviceID: c.DeviceID,
				Error:    logger.Err(err),
				Additional: map[string]any{
					"client_id": c.ID,
					"msg_type":  msg.Type,
				},
			})
		}
	}
}

// writePump отправляет сообщения клиенту и пингует его
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
