package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meteocheck/core/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrRoundEnded       = errors.New("round already ended")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrInvalidToken     = errors.New("invalid client token")
	ErrRoomsUnavailable = errors.New("no available rooms")
)

const (
	maxNameLen  = 40
	defaultName = "Guest"
)

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --outpkg=repository --filename=repository.go
type RoomRepository interface {
	Exists(ctx context.Context, id model.RoomID) (bool, error)
	CreateIfAbsent(ctx context.Context, id model.RoomID) (model.Snapshot, error)
	UpsertParticipant(ctx context.Context, id model.RoomID, token model.Token, name string) (model.Snapshot, error)
	SetSelection(ctx context.Context, id model.RoomID, token model.Token, symbol model.Symbol) (model.Snapshot, error)
	EndRound(ctx context.Context, id model.RoomID) (model.Snapshot, error)
	SetAnonymous(ctx context.Context, id model.RoomID, anonymous bool) (model.Snapshot, error)
	RemoveParticipant(ctx context.Context, id model.RoomID, token model.Token) (model.Snapshot, error)
	Snapshot(ctx context.Context, id model.RoomID) (model.Snapshot, error)

	CleanupStaleRooms(ctx context.Context, horizon time.Duration) (int, error)
}

type Usecase struct {
	RoomRepository RoomRepository
}

func New(r RoomRepository) *Usecase {
	return &Usecase{
		RoomRepository: r,
	}
}

// Create materializes a room. With an explicit id the call is
// idempotent; without one a short public code is minted.
func (u *Usecase) Create(ctx context.Context, requested model.RoomID) (model.RoomID, model.Snapshot, error) {
	id := requested
	if id == model.EmptyRoomID {
		var err error
		if id, err = u.resolveRoomID(ctx); err != nil {
			return model.EmptyRoomID, model.Snapshot{}, err
		}
	}

	snap, err := u.RoomRepository.CreateIfAbsent(ctx, id)
	if err != nil {
		return model.EmptyRoomID, model.Snapshot{}, errors.Join(ErrInternal, err)
	}
	return id, snap, nil
}

// Assuming that minted codes can conflict with live rooms.
// Retrying...
func (u *Usecase) resolveRoomID(ctx context.Context) (model.RoomID, error) {
	var retries = 3
	for retries > 0 {
		id := u.buildRoomCode()
		exists, err := u.RoomRepository.Exists(ctx, id)
		if err != nil {
			return model.EmptyRoomID, errors.Join(ErrInternal, err)
		}
		if !exists {
			return id, nil
		}
		retries--
	}
	return model.EmptyRoomID, ErrRoomsUnavailable
}

func (u *Usecase) buildRoomCode() model.RoomID {
	const codeLen = 6
	var builder strings.Builder
	builder.Grow(codeLen)

	for i := 0; i < codeLen; i++ {
		builder.WriteByte(byte(rand.Intn(10)) + '0')
	}

	return model.RoomID(builder.String())
}

// Join upserts a participant. An empty token mints a fresh one for the
// client to keep; a repeated join with the same token never duplicates
// the participant and preserves any selection already made.
func (u *Usecase) Join(ctx context.Context, id model.RoomID, token string, name string) (model.Token, model.Snapshot, error) {
	if id == model.EmptyRoomID {
		return model.EmptyToken, model.Snapshot{}, ErrResourceNotFound
	}

	resolved, err := u.resolveToken(token)
	if err != nil {
		return model.EmptyToken, model.Snapshot{}, err
	}

	snap, err := u.RoomRepository.UpsertParticipant(ctx, id, resolved, normalizeName(name))
	if err != nil {
		return model.EmptyToken, model.Snapshot{}, errors.Join(ErrInternal, err)
	}
	return resolved, snap, nil
}

// Select records a participant's pick. A selection landing after the
// round ended surfaces as ErrRoundEnded so the delivery layer can
// treat it as the expected race, not a fault.
func (u *Usecase) Select(ctx context.Context, id model.RoomID, token string, symbol model.Symbol) (model.Snapshot, error) {
	resolved, err := u.parseToken(token)
	if err != nil {
		return model.Snapshot{}, err
	}
	if symbol == "" {
		return model.Snapshot{}, ErrUnknownSymbol
	}

	snap, err := u.RoomRepository.SetSelection(ctx, id, resolved, symbol)
	if err != nil {
		switch {
		case errors.Is(err, ErrResourceNotFound),
			errors.Is(err, ErrRoundEnded),
			errors.Is(err, ErrUnknownSymbol):
			return model.Snapshot{}, err
		default:
			return model.Snapshot{}, errors.Join(ErrInternal, err)
		}
	}
	return snap, nil
}

// End closes the round. Repeat calls are no-ops.
func (u *Usecase) End(ctx context.Context, id model.RoomID) (model.Snapshot, error) {
	snap, err := u.RoomRepository.EndRound(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Snapshot{}, ErrResourceNotFound
		}
		return model.Snapshot{}, errors.Join(ErrInternal, err)
	}
	return snap, nil
}

func (u *Usecase) SetAnonymous(ctx context.Context, id model.RoomID, anonymous bool) (model.Snapshot, error) {
	snap, err := u.RoomRepository.SetAnonymous(ctx, id, anonymous)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Snapshot{}, ErrResourceNotFound
		}
		return model.Snapshot{}, errors.Join(ErrInternal, err)
	}
	return snap, nil
}

// Leave removes the participant. Removing a token the room never saw
// is a no-op, not an error.
func (u *Usecase) Leave(ctx context.Context, id model.RoomID, token string) (model.Snapshot, error) {
	resolved, err := u.parseToken(token)
	if err != nil {
		return model.Snapshot{}, err
	}

	snap, err := u.RoomRepository.RemoveParticipant(ctx, id, resolved)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Snapshot{}, ErrResourceNotFound
		}
		return model.Snapshot{}, errors.Join(ErrInternal, err)
	}
	return snap, nil
}

// State reads the current snapshot. Unknown rooms are an expected
// not-found, never a lazy create.
func (u *Usecase) State(ctx context.Context, id model.RoomID) (model.Snapshot, error) {
	snap, err := u.RoomRepository.Snapshot(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Snapshot{}, ErrResourceNotFound
		}
		return model.Snapshot{}, errors.Join(ErrInternal, err)
	}
	return snap, nil
}

// Cleanup evicts rooms created before the horizon. Runs outside the
// mutation path, on the owner's ticker.
func (u *Usecase) Cleanup(ctx context.Context, horizon time.Duration) (int, error) {
	evicted, err := u.RoomRepository.CleanupStaleRooms(ctx, horizon)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}
	return evicted, nil
}

func (u *Usecase) resolveToken(token string) (model.Token, error) {
	if token == "" {
		return model.Token(uuid.New().String()), nil
	}
	return u.parseToken(token)
}

func (u *Usecase) parseToken(token string) (model.Token, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return model.EmptyToken, ErrInvalidToken
	}
	return model.Token(parsed.String()), nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName
	}
	if runes := []rune(name); len(runes) > maxNameLen {
		return string(runes[:maxNameLen])
	}
	return name
}
