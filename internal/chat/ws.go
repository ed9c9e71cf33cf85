package chat

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type wsEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// hub fans events out to every open socket on one investment thread.
type hub struct {
	investmentID string
	clients      map[*websocket.Conn]bool
	mu           sync.RWMutex
}

var (
	hubsMu sync.RWMutex
	hubs   = make(map[string]*hub)
)

func getHub(investmentID string) *hub {
	hubsMu.Lock()
	defer hubsMu.Unlock()
	if h, ok := hubs[investmentID]; ok {
		return h
	}
	h := &hub{investmentID: investmentID, clients: make(map[*websocket.Conn]bool)}
	hubs[investmentID] = h
	return h
}

func (h *hub) broadcast(evt wsEvent) {
	payload, _ := json.Marshal(evt)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, payload)
	}
}

func (h *hub) register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ThreadWS upgrades to a websocket pushing new messages on one investment
// thread. Clients that disconnect simply reconnect and list with ?since=.
func ThreadWS(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	isAdmin, _ := c.Get("is_admin").(bool)

	investmentID := c.Param("id")
	if investmentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing investment id"})
	}

	allowed, err := canAccess(c.Request().Context(), investmentID, userID, isAdmin)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "investment not found or inaccessible"})
	}
	if !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a participant in this thread"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h := getHub(investmentID)
	h.register(ws)

	// Server-push protocol; client frames are discarded.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			h.unregister(ws)
			_ = ws.Close()
			break
		}
	}
	return nil
}

// BroadcastNewMessage publishes a freshly inserted message to the thread hub.
func BroadcastNewMessage(investmentID string, message interface{}) {
	h := getHub(investmentID)
	h.broadcast(wsEvent{Type: "message_new", Data: message})
}
