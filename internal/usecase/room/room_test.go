package usecase_room_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infra_memory_room "github.com/meteocheck/core/internal/infra/memory/room"
	"github.com/meteocheck/core/internal/model"
	usecase_room "github.com/meteocheck/core/internal/usecase/room"
)

func newUsecase() *usecase_room.Usecase {
	return usecase_room.New(infra_memory_room.New())
}

func mustJoin(t *testing.T, uc *usecase_room.Usecase, id model.RoomID, name string) model.Token {
	t.Helper()
	token, _, err := uc.Join(context.Background(), id, "", name)
	require.NoError(t, err)
	return token
}

func TestCheckInScenario(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, "daily")
	require.NoError(t, err)
	require.Equal(t, model.RoomID("daily"), id)

	alice := mustJoin(t, uc, id, "Alice")
	bob := mustJoin(t, uc, id, "Bob")

	_, err = uc.Select(ctx, id, string(alice), model.SymbolSun)
	require.NoError(t, err)
	snap, err := uc.Select(ctx, id, string(bob), model.SymbolRain)
	require.NoError(t, err)

	assert.Equal(t, map[model.Symbol]int{
		model.SymbolSun:    1,
		model.SymbolPartly: 0,
		model.SymbolCloud:  0,
		model.SymbolRain:   1,
		model.SymbolStorm:  0,
	}, snap.Summary)
	require.Len(t, snap.Participants, 2)
	assert.Equal(t, "Alice", snap.Participants[0].Name)
	assert.Equal(t, "Bob", snap.Participants[1].Name)
}

// Summary must always equal an independent recomputation from the
// participants list.
func TestSummaryDerivation(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, model.EmptyRoomID)
	require.NoError(t, err)

	tokens := make([]model.Token, 0, 7)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		tokens = append(tokens, mustJoin(t, uc, id, name))
	}

	sequence := []struct {
		idx    int
		symbol model.Symbol
	}{
		{0, model.SymbolSun},
		{1, model.SymbolSun},
		{2, model.SymbolStorm},
		{0, model.SymbolRain}, // reselect overwrites
		{3, model.SymbolPartly},
		{4, model.SymbolCloud},
		{4, model.SymbolCloud}, // repeat is idempotent
	}
	for _, step := range sequence {
		_, err := uc.Select(ctx, id, string(tokens[step.idx]), step.symbol)
		require.NoError(t, err)
	}

	snap, err := uc.State(ctx, id)
	require.NoError(t, err)

	recomputed := map[model.Symbol]int{}
	for _, s := range snap.Symbols {
		recomputed[s] = 0
	}
	selected := 0
	for _, p := range snap.Participants {
		if p.Symbol != nil {
			recomputed[*p.Symbol]++
			selected++
		}
	}
	assert.Equal(t, recomputed, snap.Summary)

	total := 0
	for _, n := range snap.Summary {
		total += n
	}
	assert.Equal(t, selected, total)
}

func TestJoinIsIdempotentPerToken(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, "retro")
	require.NoError(t, err)

	token := mustJoin(t, uc, id, "Alice")
	_, err = uc.Select(ctx, id, string(token), model.SymbolPartly)
	require.NoError(t, err)

	// Rejoin with the same token: no duplicate, selection survives.
	again, snap, err := uc.Join(ctx, id, string(token), "Alice")
	require.NoError(t, err)
	assert.Equal(t, token, again)
	require.Len(t, snap.Participants, 1)
	require.NotNil(t, snap.Participants[0].Symbol)
	assert.Equal(t, model.SymbolPartly, *snap.Participants[0].Symbol)

	// Same display name under a different token is a second
	// participant, not a collision.
	mustJoin(t, uc, id, "Alice")
	snap, err = uc.State(ctx, id)
	require.NoError(t, err)
	assert.Len(t, snap.Participants, 2)
}

func TestEndRoundIsIdempotentAndFinal(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, "sprint")
	require.NoError(t, err)
	token := mustJoin(t, uc, id, "Alice")
	_, err = uc.Select(ctx, id, string(token), model.SymbolSun)
	require.NoError(t, err)

	first, err := uc.End(ctx, id)
	require.NoError(t, err)
	second, err := uc.End(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, second.Ended)

	// A selection after the end leaves everything untouched.
	_, err = uc.Select(ctx, id, string(token), model.SymbolCloud)
	assert.ErrorIs(t, err, usecase_room.ErrRoundEnded)

	snap, err := uc.State(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first, snap)
}

func TestInvalidSymbolLeavesStateUnchanged(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, "weekly")
	require.NoError(t, err)
	token := mustJoin(t, uc, id, "Alice")

	before, err := uc.State(ctx, id)
	require.NoError(t, err)

	_, err = uc.Select(ctx, id, string(token), model.Symbol("tornado"))
	assert.ErrorIs(t, err, usecase_room.ErrUnknownSymbol)

	after, err := uc.State(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNameTruncationBoundary(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, "boundary")
	require.NoError(t, err)

	_, snap, err := uc.Join(ctx, id, "", strings.Repeat("n", 41))
	require.NoError(t, err)
	require.Len(t, snap.Participants, 1)
	assert.Equal(t, strings.Repeat("n", 40), snap.Participants[0].Name)
}

func TestStateOnUnknownRoomIsNotFound(t *testing.T) {
	uc := newUsecase()

	_, err := uc.State(context.Background(), "never-created")
	assert.ErrorIs(t, err, usecase_room.ErrResourceNotFound)
}

func TestAnonymousFlagKeepsNamesInSnapshot(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, "anon")
	require.NoError(t, err)
	mustJoin(t, uc, id, "Alice")

	snap, err := uc.SetAnonymous(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, snap.Anonymous)
	// Hiding names is the display layer's contract; the data stays.
	require.Len(t, snap.Participants, 1)
	assert.Equal(t, "Alice", snap.Participants[0].Name)

	snap, err = uc.SetAnonymous(ctx, id, false)
	require.NoError(t, err)
	assert.False(t, snap.Anonymous)
}

func TestLeaveRemovesParticipant(t *testing.T) {
	uc := newUsecase()
	ctx := context.Background()

	id, _, err := uc.Create(ctx, "leave")
	require.NoError(t, err)
	alice := mustJoin(t, uc, id, "Alice")
	mustJoin(t, uc, id, "Bob")

	snap, err := uc.Leave(ctx, id, string(alice))
	require.NoError(t, err)
	require.Len(t, snap.Participants, 1)
	assert.Equal(t, "Bob", snap.Participants[0].Name)

	// Leaving twice is a no-op.
	snap, err = uc.Leave(ctx, id, string(alice))
	require.NoError(t, err)
	assert.Len(t, snap.Participants, 1)
}
