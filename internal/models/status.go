package models

import (
	"encoding/json"
	"fmt"
)

// Status represents the observed state of a monitored room
type Status int

const (
	StatusPending Status = iota
	StatusOpen
	StatusClosed
	StatusBlocked
)

// Commands the platform pushes over a session. CommandTimedOut never maps to
// a status; it ends the listen loop and is handled by the supervisor.
const (
	CommandAccepted = "accepted"
	CommandBlocked  = "blocked"
	CommandTimedOut = "connectionTimedOut"
)

// String returns the string representation of a room status
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusBlocked:
		return "blocked"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// MarshalJSON serializes a status as its lower-case string literal
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a status from its string literal
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus converts a string literal back into a Status
func ParseStatus(s string) (Status, error) {
	switch s {
	case "pending":
		return StatusPending, nil
	case "open":
		return StatusOpen, nil
	case "closed":
		return StatusClosed, nil
	case "blocked":
		return StatusBlocked, nil
	}
	return StatusPending, fmt.Errorf("invalid room status %q", s)
}

// Settled reports whether a status is a determinate outcome for a session.
// Open and Blocked are absorbing: once reached, only a fresh session can
// observe a contrary signal.
func (s Status) Settled() bool {
	return s == StatusOpen || s == StatusBlocked
}

// Transition computes the next status for a platform command. Pure function;
// callers must route CommandTimedOut around it since a timeout carries no
// status of its own.
func (s Status) Transition(command string) Status {
	switch s {
	case StatusPending, StatusClosed:
		switch command {
		case CommandAccepted:
			return StatusOpen
		case CommandBlocked:
			return StatusBlocked
		default:
			return StatusClosed
		}
	case StatusOpen:
		return StatusOpen
	case StatusBlocked:
		return StatusBlocked
	}
	return s
}
