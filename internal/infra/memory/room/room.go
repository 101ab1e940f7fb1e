package infra_memory_room

import (
	"context"
	"sync"
	"time"

	"github.com/meteocheck/core/internal/model"
	usecase_room "github.com/meteocheck/core/internal/usecase/room"
)

// Driver is the process-wide authoritative room store. The outer lock
// guards map membership only; each entry carries its own lock so
// mutations to one room serialize while independent rooms proceed in
// parallel. A mutation and its snapshot recompute run under the same
// entry lock, so a reader never sees a half-applied change.
type Driver struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]*entry

	now func() time.Time
}

type entry struct {
	mu   sync.Mutex
	room *model.Room
}

type Option func(*Driver)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

func New(opts ...Option) *Driver {
	d := &Driver{
		rooms: make(map[model.RoomID]*entry),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Exists(_ context.Context, id model.RoomID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.rooms[id]
	return ok, nil
}

func (d *Driver) CreateIfAbsent(_ context.Context, id model.RoomID) (model.Snapshot, error) {
	e := d.materialize(id)

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.room.Snapshot(), nil
}

// UpsertParticipant lazily creates the room: join is a materializing
// operation, reads are not. An existing token keeps its selection and
// only refreshes the name.
func (d *Driver) UpsertParticipant(_ context.Context, id model.RoomID, token model.Token, name string) (model.Snapshot, error) {
	e := d.materialize(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.room.Participants[token]; ok {
		p.Name = name
	} else {
		e.room.Participants[token] = &model.Participant{
			Token:    token,
			Name:     name,
			JoinedAt: d.now(),
		}
	}
	e.room.Version++
	return e.room.Snapshot(), nil
}

func (d *Driver) SetSelection(_ context.Context, id model.RoomID, token model.Token, symbol model.Symbol) (model.Snapshot, error) {
	e, ok := d.lookup(id)
	if !ok {
		return model.Snapshot{}, usecase_room.ErrResourceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Ended is the tie-breaker of record for the end-vs-select race.
	if e.room.Ended {
		return model.Snapshot{}, usecase_room.ErrRoundEnded
	}
	if !e.room.HasSymbol(symbol) {
		return model.Snapshot{}, usecase_room.ErrUnknownSymbol
	}
	p, ok := e.room.Participants[token]
	if !ok {
		return model.Snapshot{}, usecase_room.ErrResourceNotFound
	}

	s := symbol
	p.Symbol = &s
	e.room.Version++
	return e.room.Snapshot(), nil
}

func (d *Driver) EndRound(_ context.Context, id model.RoomID) (model.Snapshot, error) {
	e, ok := d.lookup(id)
	if !ok {
		return model.Snapshot{}, usecase_room.ErrResourceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Repeat ends are no-ops, down to the version counter.
	if !e.room.Ended {
		e.room.Ended = true
		e.room.Version++
	}
	return e.room.Snapshot(), nil
}

func (d *Driver) SetAnonymous(_ context.Context, id model.RoomID, anonymous bool) (model.Snapshot, error) {
	e, ok := d.lookup(id)
	if !ok {
		return model.Snapshot{}, usecase_room.ErrResourceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.room.Anonymous = anonymous
	e.room.Version++
	return e.room.Snapshot(), nil
}

func (d *Driver) RemoveParticipant(_ context.Context, id model.RoomID, token model.Token) (model.Snapshot, error) {
	e, ok := d.lookup(id)
	if !ok {
		return model.Snapshot{}, usecase_room.ErrResourceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.room.Participants, token)
	e.room.Version++
	return e.room.Snapshot(), nil
}

func (d *Driver) Snapshot(_ context.Context, id model.RoomID) (model.Snapshot, error) {
	e, ok := d.lookup(id)
	if !ok {
		return model.Snapshot{}, usecase_room.ErrResourceNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.room.Snapshot(), nil
}

// CleanupStaleRooms evicts rooms created before now-horizon. It takes
// the outer write lock alone, so in-flight per-room mutations finish
// against their own entry and the sweep never interleaves with one.
func (d *Driver) CleanupStaleRooms(_ context.Context, horizon time.Duration) (int, error) {
	deadline := d.now().Add(-horizon)

	d.mu.Lock()
	defer d.mu.Unlock()

	evicted := 0
	for id, e := range d.rooms {
		if e.room.CreatedAt.Before(deadline) {
			delete(d.rooms, id)
			evicted++
		}
	}
	return evicted, nil
}

func (d *Driver) lookup(id model.RoomID) (*entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.rooms[id]
	return e, ok
}

func (d *Driver) materialize(id model.RoomID) *entry {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.rooms[id]
	if !ok {
		e = &entry{room: model.NewRoom(id, d.now())}
		d.rooms[id] = e
	}
	return e
}
