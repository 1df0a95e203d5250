package connect

import (
	"encoding/json"
	"errors"
	"strings"
)

// Inbound method and command literals. The platform multiplexes unrelated
// push notifications over the same channel; only loginHandler commands are
// semantically meaningful to us.
const (
	methodHeartbeat = "heartbeat"
	methodOnCommand = "onCommand"
	commandHandler  = "loginHandler"
)

// Message interpretation errors. Every frame that does not match one of the
// recognized shapes is rejected with a specific kind rather than guessed at,
// so protocol variations surface as loggable errors instead of silent
// misclassification.
var (
	ErrEmptyMessage   = errors.New("received an empty message")
	ErrInvalidPayload = errors.New("message payload is not a JSON object")
	ErrUnknownMethod  = errors.New("message requested an unknown method")
	ErrUnknownCommand = errors.New("message requested an unknown command")
	ErrMissingParams  = errors.New("message is missing a parameter")
	ErrMissingName    = errors.New("command name missing from message")
)

// Envelope is the interpreted form of one inbound frame: either a heartbeat
// or a single domain command string. Envelopes are consumed immediately and
// never retained.
type Envelope struct {
	Heartbeat bool
	Command   string
}

// inboundMessage is the closed set of shapes accepted off the wire. Pointer
// fields distinguish an absent field from an empty one; a frame whose fields
// have the wrong JSON types fails to decode at all.
type inboundMessage struct {
	Method  *string        `json:"method"`
	Command *string        `json:"command"`
	Params  *inboundParams `json:"params"`
}

type inboundParams struct {
	Arg0 *inboundArg `json:"arg_0"`
}

type inboundArg struct {
	Command *string `json:"command"`
}

// ParseMessage interprets one raw frame into an envelope, or fails with a
// specific error kind.
func ParseMessage(raw string) (Envelope, error) {
	if raw == "" {
		return Envelope{}, ErrEmptyMessage
	}

	// A json null decodes into the zero struct without tripping the
	// unmarshal; it is still not an object
	if strings.TrimSpace(raw) == "null" {
		return Envelope{}, ErrInvalidPayload
	}

	var msg inboundMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return Envelope{}, ErrInvalidPayload
	}

	if msg.Method == nil {
		return Envelope{}, ErrUnknownMethod
	}

	// Heartbeats carry nothing else worth validating
	if *msg.Method == methodHeartbeat {
		return Envelope{Heartbeat: true}, nil
	}

	if *msg.Method != methodOnCommand {
		return Envelope{}, ErrUnknownMethod
	}

	if msg.Command == nil || *msg.Command != commandHandler {
		return Envelope{}, ErrUnknownCommand
	}

	if msg.Params == nil || msg.Params.Arg0 == nil {
		return Envelope{}, ErrMissingParams
	}

	if msg.Params.Arg0.Command == nil {
		return Envelope{}, ErrMissingName
	}

	return Envelope{Command: *msg.Params.Arg0.Command}, nil
}
