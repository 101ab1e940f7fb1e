package model

import (
	"slices"
	"sort"
	"time"
)

type Participant struct {
	Token    Token
	Name     string
	Symbol   *Symbol
	JoinedAt time.Time
}

type Room struct {
	ID           RoomID
	CreatedAt    time.Time
	Ended        bool
	Anonymous    bool
	Symbols      []Symbol
	Participants map[Token]*Participant

	// Version counts applied mutations. The store bumps it under the
	// room's lock, so snapshot versions totally order the states of
	// one room even when their broadcasts race.
	Version uint64
}

func NewRoom(id RoomID, now time.Time) *Room {
	return &Room{
		ID:           id,
		CreatedAt:    now,
		Symbols:      Catalog(),
		Participants: make(map[Token]*Participant),
		Version:      1,
	}
}

func (r *Room) HasSymbol(s Symbol) bool {
	return slices.Contains(r.Symbols, s)
}

// Summarize derives per-symbol counts from the current participants.
// Every catalog symbol gets a bucket; participants without a selection
// contribute to none. The participants map is the only source of
// truth, so the result is recomputed on every snapshot.
func Summarize(r *Room) map[Symbol]int {
	summary := make(map[Symbol]int, len(r.Symbols))
	for _, s := range r.Symbols {
		summary[s] = 0
	}
	for _, p := range r.Participants {
		if p.Symbol != nil {
			summary[*p.Symbol]++
		}
	}
	return summary
}

type ParticipantView struct {
	Name   string  `json:"name"`
	Symbol *Symbol `json:"symbol"`
}

// Snapshot is the wire form of a room's full state. The anonymous flag
// never strips names from the payload; hiding them is the display
// layer's job.
type Snapshot struct {
	RoomID       string            `json:"roomId"`
	CreatedAt    int64             `json:"createdAt"`
	Ended        bool              `json:"ended"`
	Anonymous    bool              `json:"anonymous"`
	Symbols      []Symbol          `json:"symbols"`
	Participants []ParticipantView `json:"participants"`
	Summary      map[Symbol]int    `json:"summary"`

	// Version orders snapshots of one room; it stays off the wire.
	Version uint64 `json:"-"`
}

// Snapshot builds the wire state, participants ordered by join time.
func (r *Room) Snapshot() Snapshot {
	ordered := make([]*Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].JoinedAt.Equal(ordered[j].JoinedAt) {
			return ordered[i].Token < ordered[j].Token
		}
		return ordered[i].JoinedAt.Before(ordered[j].JoinedAt)
	})

	views := make([]ParticipantView, 0, len(ordered))
	for _, p := range ordered {
		views = append(views, ParticipantView{
			Name:   p.Name,
			Symbol: p.Symbol,
		})
	}

	return Snapshot{
		RoomID:       string(r.ID),
		CreatedAt:    r.CreatedAt.UnixMilli(),
		Ended:        r.Ended,
		Anonymous:    r.Anonymous,
		Symbols:      slices.Clone(r.Symbols),
		Participants: views,
		Summary:      Summarize(r),
		Version:      r.Version,
	}
}
