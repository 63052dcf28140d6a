package websocket

import "sync"

// Hub fans tip events out to connected authors. One live connection per
// author id; a reconnect replaces the previous one.
type Hub struct {
	clients    map[string]*Client // author id -> client
	register   chan *Client
	unregister chan *Client
	sendOne    chan sendReq
	quit       chan struct{}
	mu         sync.RWMutex
}

type sendReq struct {
	AuthorID string
	Message  OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		sendOne:    make(chan sendReq),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[c.AuthorID]; ok {
				close(old.Send)
			}
			h.clients[c.AuthorID] = c
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[c.AuthorID]; ok && cur == c {
				delete(h.clients, c.AuthorID)
				close(c.Send)
			}
			h.mu.Unlock()

		case req := <-h.sendOne:
			h.mu.RLock()
			client, ok := h.clients[req.AuthorID]
			h.mu.RUnlock()
			if ok {
				select {
				case client.Send <- req.Message:
				default:
					// slow consumer, drop rather than block the hub
				}
			}

		case <-h.quit:
			h.mu.Lock()
			for _, c := range h.clients {
				close(c.Send)
			}
			h.clients = make(map[string]*Client)
			h.mu.Unlock()
			return
		}
	}
}

// SendToAuthor queues a message for the author's connection, if any.
func (h *Hub) SendToAuthor(authorID string, msg OutgoingMessage) {
	h.sendOne <- sendReq{AuthorID: authorID, Message: msg}
}

func (h *Hub) Close() {
	close(h.quit)
}
