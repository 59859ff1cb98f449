package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// PreviewClient is one editor connection watching one block.
type PreviewClient struct {
	Conn    *websocket.Conn
	BlockID string
	Send    chan []byte
}

type envelope struct {
	blockID string
	data    []byte
}

// PreviewHub fans preview messages out to the subscribers of each block.
type PreviewHub struct {
	blockClients map[string]map[*PreviewClient]bool
	register     chan *PreviewClient
	unregister   chan *PreviewClient
	broadcast    chan envelope
	done         chan struct{}
	queueSize    int
	logger       *logging.ChanneledLogger
	mu           sync.RWMutex
}

// NewPreviewHub creates a hub whose per-client queues hold queueSize messages.
func NewPreviewHub(queueSize int, logger *logging.ChanneledLogger) *PreviewHub {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &PreviewHub{
		blockClients: make(map[string]map[*PreviewClient]bool),
		register:     make(chan *PreviewClient),
		unregister:   make(chan *PreviewClient),
		broadcast:    make(chan envelope, queueSize),
		done:         make(chan struct{}),
		queueSize:    queueSize,
		logger:       logger,
	}
}

// Run is the hub's main loop. It returns when ctx is done, closing every client.
func (h *PreviewHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for blockID, clients := range h.blockClients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.blockClients, blockID)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.blockClients[client.BlockID]; !ok {
				h.blockClients[client.BlockID] = make(map[*PreviewClient]bool)
			}
			h.blockClients[client.BlockID][client] = true
			h.mu.Unlock()
			h.logger.Preview().Info("Preview client registered", "blockId", client.BlockID)

		case client := <-h.unregister:
			h.remove(client)
			h.logger.Preview().Info("Preview client unregistered", "blockId", client.BlockID)

		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

func (h *PreviewHub) remove(client *PreviewClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.blockClients[client.BlockID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send)
			if len(clients) == 0 {
				delete(h.blockClients, client.BlockID)
			}
		}
	}
}

// deliver drops clients whose queue is full rather than stall the hub.
func (h *PreviewHub) deliver(env envelope) {
	h.mu.RLock()
	var slow []*PreviewClient
	for client := range h.blockClients[env.blockID] {
		select {
		case client.Send <- env.data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Preview().Warn("Dropping slow preview client", "blockId", client.BlockID)
		h.remove(client)
	}
}

// Publish queues msg for the block's subscribers. Messages for blocks nobody
// watches are discarded.
func (h *PreviewHub) Publish(msg PreviewMessage) {
	if h.SubscriberCount(msg.BlockID) == 0 {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Preview().Error("Error marshaling preview message", "error", err.Error(), "blockId", msg.BlockID)
		return
	}
	select {
	case h.broadcast <- envelope{blockID: msg.BlockID, data: data}:
	default:
		h.logger.Preview().Warn("Preview queue full, message dropped", "blockId", msg.BlockID)
	}
}

// SubscriberCount returns how many editors watch blockID.
func (h *PreviewHub) SubscriberCount(blockID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.blockClients[blockID])
}

// Serve registers conn as a subscriber of blockID and pumps messages until the
// connection closes. It blocks.
func (h *PreviewHub) Serve(conn *websocket.Conn, blockID string) {
	client := &PreviewClient{
		Conn:    conn,
		BlockID: blockID,
		Send:    make(chan []byte, h.queueSize),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(client)
	h.readPump(client)
}

// readPump discards client input and watches for the connection to go away.
func (h *PreviewHub) readPump(client *PreviewClient) {
	defer func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Preview().Warn("Preview connection closed unexpectedly", "error", err.Error(), "blockId", client.BlockID)
			}
			return
		}
	}
}

func (h *PreviewHub) writePump(client *PreviewClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
