package protocol

import (
	"log/slog"

	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/domain"
	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/metrics"
)

// Router drives the per-session state machine: join moves room membership,
// edit and cursor fan out to the session's current room, ping is answered
// locally, everything else is dropped without closing the connection.
type Router struct {
	registry domain.Registry
}

func NewRouter(registry domain.Registry) *Router {
	return &Router{registry: registry}
}

func (rt *Router) Handle(s domain.Session, frame []byte) {
	msg, err := Decode(frame)
	if err != nil {
		metrics.DecodeFailures.Inc()
		slog.Warn("dropping malformed frame", "sessionId", s.ID(), "error", err)
		return
	}

	switch msg.Type {
	case domain.TypeJoin:
		rt.join(s, msg)
	case domain.TypeEdit, domain.TypeCursor:
		rt.relay(s, msg)
	case domain.TypePing:
		rt.pong(s)
	default:
		slog.Debug("ignoring unknown message type", "sessionId", s.ID(), "type", msg.Type)
	}
}

// Disconnect is the transport-closed transition: membership is released
// whether the close was an explicit leave or an abrupt drop.
func (rt *Router) Disconnect(s domain.Session) {
	rt.registry.Leave(s)
	s.ClearRoom()
}

// join registers the session in the named room, leaving any previous room,
// and acks with "joined" before returning. The ack is sent synchronously so
// it always precedes any relay this session triggers afterwards.
func (rt *Router) join(s domain.Session, msg domain.Message) {
	rt.registry.Join(msg.Room, s)
	s.SetRoom(msg.Room, msg.User)
	metrics.JoinsTotal.Inc()

	ack, err := Encode(domain.Message{Type: domain.TypeJoined, Room: msg.Room})
	if err != nil {
		slog.Error("encoding joined ack", "sessionId", s.ID(), "error", err)
		return
	}
	if err := s.Send(ack); err != nil {
		slog.Warn("joined ack undeliverable", "sessionId", s.ID(), "room", msg.Room, "error", err)
	}
}

func (rt *Router) relay(s domain.Session, msg domain.Message) {
	room := s.Room()
	if room == "" {
		// A client may race an early edit ahead of its join ack; that frame
		// has no room to land in and is not an error.
		slog.Debug("discarding pre-join message", "sessionId", s.ID(), "type", msg.Type)
		return
	}

	delivered := rt.registry.Broadcast(room, s, msg.Raw)
	metrics.MessagesRelayed.WithLabelValues(msg.Type).Inc()
	slog.Debug("relayed message", "room", room, "sessionId", s.ID(), "type", msg.Type, "delivered", delivered)
}

func (rt *Router) pong(s domain.Session) {
	frame, err := Encode(domain.Message{Type: domain.TypePong})
	if err != nil {
		slog.Error("encoding pong", "sessionId", s.ID(), "error", err)
		return
	}
	if err := s.Send(frame); err != nil {
		slog.Debug("pong undeliverable", "sessionId", s.ID(), "error", err)
	}
}
