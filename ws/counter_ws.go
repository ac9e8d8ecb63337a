package ws

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"jangbo/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// CounterHub pushes a store's pickup board to everyone watching it — the
// in-store display, mostly. Clients subscribe per store; any committed
// board change rebroadcasts the full board snapshot.
type CounterHub struct {
	clients    map[uint]map[*websocket.Conn]bool // storeID -> watchers
	broadcast  chan uint
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	counters   *services.CounterService
}

type subscription struct {
	Conn    *websocket.Conn
	StoreID uint
}

func NewCounterHub(counters *services.CounterService) *CounterHub {
	return &CounterHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan uint, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		counters:   counters,
	}
}

// BoardChanged satisfies services.BoardNotifier.
func (h *CounterHub) BoardChanged(storeID uint) {
	select {
	case h.broadcast <- storeID:
	default:
		// a pending broadcast for a busy hub is fine to drop; the next
		// change resends the whole board anyway
	}
}

func (h *CounterHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.StoreID] == nil {
				h.clients[sub.StoreID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.StoreID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.StoreID][sub.Conn]; ok {
				delete(h.clients[sub.StoreID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case storeID := <-h.broadcast:
			board, err := h.counters.Board(storeID)
			if err != nil {
				log.Printf("counter board for store %d: %v", storeID, err)
				continue
			}
			h.mu.Lock()
			for conn := range h.clients[storeID] {
				if err := conn.WriteJSON(board); err != nil {
					delete(h.clients[storeID], conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/stores/:id/counters
func (h *CounterHub) Serve(c *gin.Context) {
	storeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || storeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid store id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}

	// Send the current board before joining the broadcast set: until the
	// registration below, this goroutine is the connection's only writer,
	// and gorilla forbids concurrent ones.
	if board, err := h.counters.Board(uint(storeID)); err == nil {
		conn.WriteJSON(board)
	}

	sub := subscription{Conn: conn, StoreID: uint(storeID)}
	h.register <- sub

	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
