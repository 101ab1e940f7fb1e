package ws_room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infra_memory_room "github.com/meteocheck/core/internal/infra/memory/room"
	"github.com/meteocheck/core/internal/model"
	usecase_room "github.com/meteocheck/core/internal/usecase/room"
)

func fixedLoader(snap model.Snapshot) StateLoader {
	return func(context.Context, model.RoomID) (model.Snapshot, error) {
		return snap, nil
	}
}

// The seed snapshot is read at registration, inside the hub, so a
// mutation applied between the handshake and the register is part of
// the state the client starts from.
func TestRegisterSeedsStateReadAtRegistration(t *testing.T) {
	uc := usecase_room.New(infra_memory_room.New())
	ctx := context.Background()

	_, _, err := uc.Create(ctx, "daily")
	require.NoError(t, err)

	h := NewHub(nil, 4, uc.State)
	client := &Client{hub: h, send: make(chan Event, 4), roomID: "daily"}

	// Lands after the handshake's existence check, before register.
	_, err = uc.End(ctx, "daily")
	require.NoError(t, err)

	h.handleRegister(client)

	select {
	case ev := <-client.send:
		require.Equal(t, EventRoomState, ev.Type)
		snap, ok := ev.Payload.(model.Snapshot)
		require.True(t, ok)
		assert.True(t, snap.Ended)
	default:
		t.Fatal("no seed state queued at registration")
	}
}

// A stalled client must be evicted, not waited on: the broadcast path
// returns promptly and the remaining clients still receive.
func TestSlowClientIsDroppedWithoutBlocking(t *testing.T) {
	seed := model.Snapshot{RoomID: "r", CreatedAt: 1, Version: 1}
	h := NewHub(nil, 1, fixedLoader(seed))

	slow := &Client{hub: h, send: make(chan Event, 1), roomID: "r"}
	healthy := &Client{hub: h, send: make(chan Event, 8), roomID: "r"}
	h.handleRegister(slow) // seed fills the one-slot buffer
	h.handleRegister(healthy)
	<-healthy.send

	done := make(chan struct{})
	go func() {
		h.broadcastToRoom("r", model.Snapshot{RoomID: "r", CreatedAt: 1, Version: 2})
		h.broadcastToRoom("r", model.Snapshot{RoomID: "r", CreatedAt: 1, Version: 3})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}

	for _, want := range []uint64{2, 3} {
		ev := <-healthy.send
		snap, ok := ev.Payload.(model.Snapshot)
		require.True(t, ok)
		assert.Equal(t, want, snap.Version)
	}

	// The stalled client kept only its seed and was closed out.
	ev := <-slow.send
	snap, ok := ev.Payload.(model.Snapshot)
	require.True(t, ok)
	assert.Equal(t, uint64(1), snap.Version)
	_, open := <-slow.send
	assert.False(t, open)

	h.mu.RLock()
	defer h.mu.RUnlock()
	assert.NotContains(t, h.clients, slow)
	assert.Contains(t, h.clients, healthy)
	assert.NotContains(t, h.rooms["r"].clients, slow)
}

func TestBroadcastDropsSupersededSnapshot(t *testing.T) {
	seed := model.Snapshot{RoomID: "r", CreatedAt: 1, Version: 1}
	h := NewHub(nil, 8, fixedLoader(seed))

	client := &Client{hub: h, send: make(chan Event, 8), roomID: "r"}
	h.handleRegister(client)
	<-client.send

	h.broadcastToRoom("r", model.Snapshot{RoomID: "r", CreatedAt: 1, Version: 3})
	h.broadcastToRoom("r", model.Snapshot{RoomID: "r", CreatedAt: 1, Version: 2})

	ev := <-client.send
	snap, ok := ev.Payload.(model.Snapshot)
	require.True(t, ok)
	assert.Equal(t, uint64(3), snap.Version)

	select {
	case ev := <-client.send:
		t.Fatalf("superseded snapshot delivered: %+v", ev)
	default:
	}
}

// An evicted and re-minted room restarts its version counter; the new
// generation is told apart by creation time, not dropped as stale.
func TestBroadcastAcceptsNewRoomGeneration(t *testing.T) {
	seed := model.Snapshot{RoomID: "r", CreatedAt: 1, Version: 5}
	h := NewHub(nil, 8, fixedLoader(seed))

	client := &Client{hub: h, send: make(chan Event, 8), roomID: "r"}
	h.handleRegister(client)
	<-client.send

	h.broadcastToRoom("r", model.Snapshot{RoomID: "r", CreatedAt: 2, Version: 1})

	ev := <-client.send
	snap, ok := ev.Payload.(model.Snapshot)
	require.True(t, ok)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, int64(2), snap.CreatedAt)
}
