package protocol

import (
	"encoding/json"

	"github.com/CuriouzK0d3r/cli-novel-writer-sub006/domain"
)

// Decode parses the envelope of a single frame. Only the type, room and user
// fields are read; whatever else the frame carries stays untouched in Raw.
// Anything that is not a JSON object with a string "type" yields a
// DecodeError.
func Decode(frame []byte) (domain.Message, error) {
	var msg domain.Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		return domain.Message{}, &domain.DecodeError{Raw: frame, Reason: err.Error()}
	}
	if msg.Type == "" {
		return domain.Message{}, &domain.DecodeError{Raw: frame, Reason: "missing type field"}
	}
	msg.Raw = frame
	return msg, nil
}

// Encode serializes a server-built message. Relayed edits and cursors never
// pass through here; they are forwarded as the sender framed them.
func Encode(msg domain.Message) ([]byte, error) {
	return json.Marshal(msg)
}
