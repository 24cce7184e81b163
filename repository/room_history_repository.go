package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/louisuxu-sys/BC-LINE/models"
)

type roomState struct {
	history []models.Outcome
	totals  models.RoomTotals
}

// RoomHistoryRepository keeps per-user room histories in memory. Histories do not survive a restart.
type RoomHistoryRepository struct {
	mu    sync.Mutex
	rooms map[string]map[string]*roomState
}

// NewRoomHistoryRepository creates an empty in-memory room store
func NewRoomHistoryRepository() *RoomHistoryRepository {
	return &RoomHistoryRepository{rooms: make(map[string]map[string]*roomState)}
}

// Append adds outcomes to a room, bumps its totals and trims the history to the newest limit entries
func (r *RoomHistoryRepository) Append(ctx context.Context, userID, room string, outcomes []models.Outcome, limit int) (*models.RoomSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userRooms, ok := r.rooms[userID]
	if !ok {
		userRooms = make(map[string]*roomState)
		r.rooms[userID] = userRooms
	}
	state, ok := userRooms[room]
	if !ok {
		state = &roomState{}
		userRooms[room] = state
	}

	for _, o := range outcomes {
		state.history = append(state.history, o)
		state.totals.Add(o)
	}
	if limit > 0 && len(state.history) > limit {
		state.history = slices.Clone(state.history[len(state.history)-limit:])
	}

	return snapshot(userID, room, state), nil
}

// Get returns a copy of the room state; an unknown room yields an empty snapshot
func (r *RoomHistoryRepository) Get(ctx context.Context, userID, room string) (*models.RoomSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.rooms[userID][room]; ok {
		return snapshot(userID, room, state), nil
	}
	return &models.RoomSnapshot{UserID: userID, Room: room}, nil
}

// ClearRoom empties the history and totals of one room
func (r *RoomHistoryRepository) ClearRoom(ctx context.Context, userID, room string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userRooms, ok := r.rooms[userID]; ok {
		delete(userRooms, room)
		if len(userRooms) == 0 {
			delete(r.rooms, userID)
		}
	}
	return nil
}

// ClearUser drops every room of a user
func (r *RoomHistoryRepository) ClearUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, userID)
	return nil
}

// RoomCount returns the number of rooms a user currently tracks
func (r *RoomHistoryRepository) RoomCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[userID])
}

func snapshot(userID, room string, state *roomState) *models.RoomSnapshot {
	return &models.RoomSnapshot{
		UserID:  userID,
		Room:    room,
		History: slices.Clone(state.history),
		Totals:  state.totals,
	}
}
