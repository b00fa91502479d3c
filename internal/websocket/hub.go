package websocket

import (
	"context"
	"sync"

	"github.com/Umar7799/user-managment/internal/domain"
	"github.com/Umar7799/user-managment/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub tracks the set of live connections and pushes registry state to them.
// Connections are added on connect and removed on disconnect or error; the
// set is only iterated at broadcast time.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	syncUsers  chan *Client
	stop       chan struct{}
	stopOnce   sync.Once
	done       chan struct{} // closed when Run() exits
	stopped    bool
	userRepo   repository.UserRepository
	log        zerolog.Logger
	mu         sync.RWMutex
}

func NewHub(userRepo repository.UserRepository, log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		syncUsers:  make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		userRepo:   userRepo,
		log:        log,
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case client := <-h.syncUsers:
			h.handleSyncUsers(client)
		}
	}
}

// Stop gracefully shuts down the hub and closes all client channels.
// It blocks until Run() has exited. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister safely unregisters a client, handling the case where the hub
// may already be stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastUsers pushes the full ordered user listing to every connected
// client. Always the complete snapshot, never a delta.
func (h *Hub) BroadcastUsers(users []*domain.User) {
	msg, err := NewMessage(MessageTypeUsersUpdated, UsersUpdatedPayload{Users: users})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build usersUpdated message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.stopped {
		return
	}
	for client := range h.clients {
		client.trySend(msg)
	}
}

// NotifyBlocked delivers a targeted signal to every live connection owned
// by the given user, telling that client its own account is now blocked.
func (h *Hub) NotifyBlocked(userID uuid.UUID, message string) {
	msg, err := NewMessage(MessageTypeBlocked, BlockedPayload{Message: message})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build blocked message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.stopped {
		return
	}
	for client := range h.clients {
		if client.userID == userID {
			client.trySend(msg)
		}
	}
}

// ClientCount reports how many connections are currently registered.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) handleSyncUsers(client *Client) {
	// Same live-status gate as the HTTP listing: a connection whose owner
	// has since been blocked or deleted cannot pull the registry on demand.
	user, err := h.userRepo.GetByID(context.Background(), client.userID)
	if err != nil || user.Blocked() {
		client.sendError("SYNC_DENIED", "Account is not active")
		return
	}

	users, err := h.userRepo.List(context.Background())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list users for sync request")
		client.sendError("SYNC_FAILED", "Could not load user listing")
		return
	}

	msg, err := NewMessage(MessageTypeUsersUpdated, UsersUpdatedPayload{Users: users})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to build usersUpdated message")
		return
	}
	client.trySend(msg)
}
