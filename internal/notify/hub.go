package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"myka/internal/shared"
)

var ErrNoClient = errors.New("no connected client for user")

// Hub tracks connected clients per user and fans outbound push messages out
// to them. Connection lifecycle flows through the register/unregister
// channels; sends go straight to each client's buffered channel and are
// dropped when a client can't keep up.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	log        *zap.Logger

	mu      sync.RWMutex
	clients map[string]map[*Client]bool // userID -> connections

	pendingMu sync.Mutex
	pending   map[string]chan string // requestID -> reply
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
		clients:    make(map[string]map[*Client]bool),
		pending:    make(map[string]chan string),
	}
}

// Run owns the client registry until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.log.Info("notification hub stopping")
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			h.mu.Unlock()
			h.log.Debug("client connected",
				zap.String("client_id", client.ID),
				zap.String("user_id", client.UserID))
		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.UserID]; ok {
				if conns[client] {
					delete(conns, client)
					close(client.SendChannel)
					if len(conns) == 0 {
						delete(h.clients, client.UserID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug("client disconnected",
				zap.String("client_id", client.ID),
				zap.String("user_id", client.UserID))
		}
	}
}

// HasClient reports whether the user has at least one live connection.
func (h *Hub) HasClient(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// Show delivers a push message to every connection the user holds.
// Implements scheduler.Displayer.
func (h *Hub) Show(userID string, msg shared.PushMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns := h.clients[userID]
	if len(conns) == 0 {
		h.mu.RUnlock()
		return ErrNoClient
	}
	for client := range conns {
		select {
		case client.SendChannel <- data:
		default:
			// slow client: drop rather than block the scheduler
			h.log.Warn("send buffer full, dropping message",
				zap.String("client_id", client.ID),
				zap.String("user_id", userID))
		}
	}
	h.mu.RUnlock()
	return nil
}

// Request pushes a prompt to the user and waits for the device's reply, or
// until ctx expires. Used for the permission and install prompts.
func (h *Hub) Request(ctx context.Context, userID string, msg shared.PushMessage) (string, error) {
	requestID := uuid.New().String()
	msg.RequestID = requestID

	replyCh := make(chan string, 1)
	h.pendingMu.Lock()
	h.pending[requestID] = replyCh
	h.pendingMu.Unlock()
	defer func() {
		h.pendingMu.Lock()
		delete(h.pending, requestID)
		h.pendingMu.Unlock()
	}()

	if err := h.Show(userID, msg); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-replyCh:
		return result, nil
	}
}

// PromptInstall shows the platform install prompt on the user's device and
// reports whether it was accepted. Implements install.Prompter.
func (h *Hub) PromptInstall(ctx context.Context, userID string) (bool, error) {
	result, err := h.Request(ctx, userID, shared.PushMessage{Kind: "install-prompt"})
	if err != nil {
		return false, err
	}
	return result == "accepted", nil
}

// resolve hands a device reply to the waiting Request call. Replies for
// unknown (expired) requests are dropped.
func (h *Hub) resolve(requestID, result string) {
	h.pendingMu.Lock()
	ch, ok := h.pending[requestID]
	delete(h.pending, requestID)
	h.pendingMu.Unlock()
	if ok {
		ch <- result
	}
}
