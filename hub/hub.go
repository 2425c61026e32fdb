package hub

import (
	"log/slog"
	"sync"

	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/domain"
	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/metrics"
)

// Hub is the process-wide room registry and broadcast engine. It owns the
// room→member mapping; sessions only cache their own room id. All structural
// mutations go through one lock so a room never observes two concurrent
// membership changes.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]domain.Session
	joined map[string]string // session id → room id
}

func New() *Hub {
	return &Hub{
		rooms:  make(map[string]map[string]domain.Session),
		joined: make(map[string]string),
	}
}

// Join adds s to roomID, creating the room on first use. Joining the current
// room again is a no-op; a session the index shows in another room is moved
// within the same critical section, so it is never a member of two rooms.
func (h *Hub) Join(roomID string, s domain.Session) {
	h.mu.Lock()
	if prev, ok := h.joined[s.ID()]; ok && prev != roomID {
		h.removeLocked(s.ID(), prev)
	}
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]domain.Session)
		h.rooms[roomID] = members
		metrics.ActiveRooms.Inc()
	}
	members[s.ID()] = s
	h.joined[s.ID()] = roomID
	count := len(members)
	h.mu.Unlock()

	slog.Info("session joined room", "room", roomID, "sessionId", s.ID(), "members", count)
}

// Leave removes s from whichever room the index records and drops the room
// once its member set empties. No-op for sessions that never joined.
func (h *Hub) Leave(s domain.Session) {
	h.mu.Lock()
	roomID, ok := h.joined[s.ID()]
	if !ok {
		h.mu.Unlock()
		return
	}
	remaining := h.removeLocked(s.ID(), roomID)
	h.mu.Unlock()

	slog.Info("session left room", "room", roomID, "sessionId", s.ID(), "members", remaining)
}

// removeLocked deletes the session from roomID and prunes the room if it is
// now empty. Caller holds h.mu.
func (h *Hub) removeLocked(sid, roomID string) int {
	delete(h.joined, sid)
	members, ok := h.rooms[roomID]
	if !ok {
		return 0
	}
	delete(members, sid)
	if len(members) == 0 {
		delete(h.rooms, roomID)
		metrics.ActiveRooms.Dec()
		slog.Info("room removed", "room", roomID)
	}
	return len(members)
}

// Members returns a snapshot of the sessions currently in roomID.
func (h *Hub) Members(roomID string) []domain.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.rooms[roomID]
	out := make([]domain.Session, 0, len(members))
	for _, s := range members {
		out = append(out, s)
	}
	return out
}

// Broadcast delivers frame to every member of roomID except sender and
// returns the number of successful deliveries. A failed write never aborts
// the pass; unwritable sessions are pruned after it.
func (h *Hub) Broadcast(roomID string, sender domain.Session, frame []byte) int {
	delivered := 0
	var dead []domain.Session

	for _, s := range h.Members(roomID) {
		if s.ID() == sender.ID() {
			continue
		}
		if err := s.Send(frame); err != nil {
			slog.Warn("dropping unwritable session", "room", roomID, "sessionId", s.ID(), "error", err)
			dead = append(dead, s)
			continue
		}
		delivered++
	}

	for _, s := range dead {
		h.Leave(s)
		s.Close()
		metrics.SessionsPruned.Inc()
	}
	return delivered
}

// Stats reports the current number of rooms and joined sessions.
func (h *Hub) Stats() (rooms, sessions int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms), len(h.joined)
}
