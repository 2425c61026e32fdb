package domain

import (
	"errors"
	"fmt"
)

// Wire message types. Edit and cursor payloads are opaque to the server:
// only the envelope is decoded, the body is relayed exactly as received.
const (
	TypeJoin   = "join"
	TypeJoined = "joined"
	TypeEdit   = "edit"
	TypeCursor = "cursor"
	TypePing   = "ping"
	TypePong   = "pong"
)

// ErrWriteFailed reports a session whose transport can no longer accept
// frames. The registry treats it as a departure.
var ErrWriteFailed = errors.New("session write failed")

// Message is the decoded envelope of one wire frame. Raw holds the frame
// bytes exactly as received, so relayed edits and cursors reach the other
// members bit-for-bit.
type Message struct {
	Type string `json:"type"`
	Room string `json:"room,omitempty"`
	User string `json:"user,omitempty"`
	Raw  []byte `json:"-"`
}

// DecodeError is returned for frames that are not well-formed envelopes.
// It carries the offending input; the owning connection stays open.
type DecodeError struct {
	Raw    []byte
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode frame: %s", e.Reason)
}

// Session is the server-side state of one live client connection. A session
// belongs to at most one room at a time; Room returns "" until a join
// succeeds. Sessions cache only their own room id; the Registry is the
// source of truth for membership.
type Session interface {
	ID() string
	Room() string
	User() string
	SetRoom(room, user string)
	ClearRoom()
	Send(data []byte) error
	Close() error
}

// Registry owns the room→member mapping. Join and Leave are serialized per
// registry; Members returns a snapshot safe to iterate while the registry
// mutates.
type Registry interface {
	Join(roomID string, s Session)
	Leave(s Session)
	Members(roomID string) []Session
	Broadcast(roomID string, sender Session, frame []byte) int
	Stats() (rooms, sessions int)
}

// Handler consumes inbound frames and transport lifecycle events for a
// session.
type Handler interface {
	Handle(s Session, frame []byte)
	Disconnect(s Session)
}
