package ws_room

import (
	"context"
	"log/slog"
	"sync"

	"github.com/meteocheck/core/internal/model"
)

const (
	EventRoomState = "ROOM_STATE"
	EventError     = "ERROR"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type stateEvent struct {
	roomID model.RoomID
	snap   model.Snapshot
}

// StateLoader reads the current snapshot of a room. The hub uses it to
// seed every newly registered client from inside its own loop.
type StateLoader func(ctx context.Context, id model.RoomID) (model.Snapshot, error)

// roomState tracks the clients of one room plus the newest snapshot
// version made visible to them. Broadcast enqueue happens outside the
// room's store lock, so two mutations can arrive here inverted; the
// version stamp (bumped under that lock) restores the applied order by
// dropping anything already superseded. createdAt tells room
// generations apart after an eviction resets the counter.
type roomState struct {
	clients   map[*Client]bool
	createdAt int64
	delivered uint64
}

// Hub fans room snapshots out to every client attached to that room. A
// client whose send buffer is full is dropped rather than allowed to
// block the mutation path; it re-fetches on reconnect.
type Hub struct {
	logger     *slog.Logger
	loadState  StateLoader
	clients    map[*Client]bool
	rooms      map[model.RoomID]*roomState
	register   chan *Client
	unregister chan *Client
	broadcast  chan stateEvent
	mu         sync.RWMutex

	sendBuffer int
}

func NewHub(logger *slog.Logger, sendBuffer int, loadState StateLoader) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	return &Hub{
		logger:     logger,
		loadState:  loadState,
		clients:    make(map[*Client]bool),
		rooms:      make(map[model.RoomID]*roomState),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan stateEvent),
		sendBuffer: sendBuffer,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case ev := <-h.broadcast:
			h.broadcastToRoom(ev.roomID, ev.snap)
		}
	}
}

// BroadcastState publishes a fresh snapshot to every client of the
// room. Called by the HTTP delivery after each successful mutation.
func (h *Hub) BroadcastState(roomID model.RoomID, snap model.Snapshot) {
	h.broadcast <- stateEvent{
		roomID: roomID,
		snap:   snap,
	}
}

// handleRegister attaches the client and queues the room's current
// state to it. The state is read at registration, inside the hub's
// loop, so a mutation landing between the HTTP handshake and this
// point is either in the seeded snapshot or in a broadcast the client
// is now attached for.
func (h *Hub) handleRegister(client *Client) {
	snap, err := h.loadState(context.Background(), client.roomID)
	if err != nil {
		h.logger.Error("failed to seed client state", "error", err, "room", client.roomID)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	rc, exists := h.rooms[client.roomID]
	if !exists {
		rc = &roomState{clients: make(map[*Client]bool)}
		h.rooms[client.roomID] = rc
	}
	rc.clients[client] = true

	if err == nil {
		if snap.CreatedAt != rc.createdAt || snap.Version > rc.delivered {
			rc.createdAt = snap.CreatedAt
			rc.delivered = snap.Version
		}
		h.queue(rc, client, Event{Type: EventRoomState, Payload: snap})
	}

	h.logger.Info("client registered",
		"token", client.token,
		"room", client.roomID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if rc, exists := h.rooms[client.roomID]; exists {
			delete(rc.clients, client)
			if len(rc.clients) == 0 {
				delete(h.rooms, client.roomID)
			}
		}
	}

	h.logger.Info("client unregistered",
		"token", client.token,
		"room", client.roomID)
}

func (h *Hub) broadcastToRoom(roomID model.RoomID, snap model.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rc, exists := h.rooms[roomID]
	if !exists {
		return
	}
	if snap.CreatedAt == rc.createdAt && snap.Version <= rc.delivered {
		// Superseded by a snapshot that already went out.
		return
	}
	rc.createdAt = snap.CreatedAt
	rc.delivered = snap.Version

	event := Event{Type: EventRoomState, Payload: snap}
	for client := range rc.clients {
		h.queue(rc, client, event)
	}
}

// queue is the non-blocking send; a full buffer evicts the client.
// Callers hold h.mu.
func (h *Hub) queue(rc *roomState, client *Client, event Event) {
	select {
	case client.send <- event:
	default:
		delete(h.clients, client)
		delete(rc.clients, client)
		close(client.send)
	}
}
