// Package monitor runs one supervisor per room, keeping a session to the
// platform alive indefinitely and feeding inbound commands through the
// status machine into the status store.
package monitor

import (
	"context"
	"log"
	"time"

	"github.com/edumon/acrooms/internal/config"
	"github.com/edumon/acrooms/internal/connect"
	"github.com/edumon/acrooms/internal/models"
	"github.com/edumon/acrooms/internal/service"
	"github.com/edumon/acrooms/internal/utils"
)

// CredentialProvider resolves a room URL into a credential triple
type CredentialProvider interface {
	Resolve(ctx context.Context, roomURL string) (connect.Credentials, error)
}

// Session is one open observation attempt for a room
type Session interface {
	Receive() (string, error)
	Close()
}

// SessionOpener establishes sessions from credential triples
type SessionOpener interface {
	Open(ctx context.Context, creds connect.Credentials) (Session, error)
}

// state names one phase of a supervisor's lifecycle
type state int

const (
	stateAcquireCredentials state = iota
	stateOpenSession
	stateListening
	stateCoolingDown
)

func (s state) String() string {
	switch s {
	case stateAcquireCredentials:
		return "acquire-credentials"
	case stateOpenSession:
		return "open-session"
	case stateListening:
		return "listening"
	case stateCoolingDown:
		return "cooling-down"
	}
	return "unknown"
}

// listenOutcome is how a listen loop ended
type listenOutcome int

const (
	// listenFailed: the transport closed or the platform signaled a timeout
	// before a determinate status was reached
	listenFailed listenOutcome = iota
	// listenSettled: the room's status reached Open or Blocked
	listenSettled
)

// Supervisor drives one room's monitoring lifecycle. Sessions within a room
// are strictly sequential; no supervisor observes or affects another.
type Supervisor struct {
	room     models.Room
	creds    CredentialProvider
	sessions SessionOpener
	service  *service.RoomService

	retryInterval time.Duration
	cooldown      time.Duration
}

// NewSupervisor creates a supervisor for one room
func NewSupervisor(room models.Room, creds CredentialProvider, sessions SessionOpener, svc *service.RoomService, cfg config.MonitorConfig) *Supervisor {
	return &Supervisor{
		room:          room,
		creds:         creds,
		sessions:      sessions,
		service:       svc,
		retryInterval: cfg.CredentialRetryInterval,
		cooldown:      cfg.CooldownInterval,
	}
}

// Run drives the room's state machine until the context is canceled. It
// never fails: every error feeds back into a retry path.
func (s *Supervisor) Run(ctx context.Context) {
	log.Printf("Monitoring room %s", s.room.Name)

	var creds connect.Credentials
	var session Session

	current := stateAcquireCredentials
	for ctx.Err() == nil {
		switch current {
		case stateAcquireCredentials:
			resolved, err := s.creds.Resolve(ctx, s.room.URL)
			if err != nil {
				log.Printf("Room %s: credential acquisition failed, retrying in %s: %v",
					s.room.Name, s.retryInterval, err)
				if !sleep(ctx, s.retryInterval) {
					return
				}
				continue
			}
			creds = resolved
			current = stateOpenSession

		case stateOpenSession:
			opened, err := s.sessions.Open(ctx, creds)
			if err != nil {
				// Credentials may have expired before use; re-derive them
				log.Printf("Room %s: session open failed: %v", s.room.Name, err)
				current = stateAcquireCredentials
				continue
			}
			session = opened
			current = stateListening

		case stateListening:
			outcome := s.listen(ctx, session)
			session.Close()
			session = nil

			if outcome == listenSettled {
				current = stateCoolingDown
			} else {
				// Presumed transient platform or network fault; reconnect
				// immediately
				current = stateAcquireCredentials
			}

		case stateCoolingDown:
			// A settled status can still change behind the scenes; after the
			// cool-down a fresh session re-observes the room.
			log.Printf("Room %s: status settled, re-observing in %s", s.room.Name, s.cooldown)
			if !sleep(ctx, s.cooldown) {
				return
			}
			current = stateAcquireCredentials
		}
	}

	if session != nil {
		session.Close()
	}
}

// listen consumes one session's messages until the room's status settles or
// the session gives out. Malformed and unknown frames are expected noise on
// this channel; they are logged and discarded, never fatal.
//
// The status is tracked per session, starting from Pending: a settled record
// from an earlier session carries no weight against what this session
// observes, which is what lets a re-observation after the cool-down flip a
// room that changed behind the scenes.
func (s *Supervisor) listen(ctx context.Context, session Session) listenOutcome {
	observed := models.StatusPending
	for {
		raw, err := session.Receive()
		if err != nil {
			log.Printf("Room %s: session closed", s.room.Name)
			return listenFailed
		}

		envelope, err := connect.ParseMessage(raw)
		if err != nil {
			log.Printf("Room %s: ignoring frame (%v): %s",
				s.room.Name, err, utils.SanitizeLogString(raw))
			continue
		}

		if envelope.Heartbeat {
			continue
		}

		if envelope.Command == models.CommandTimedOut {
			// A valid message, but it carries no status: the platform is
			// telling us this session is done.
			log.Printf("Room %s: platform timed the session out", s.room.Name)
			return listenFailed
		}

		status, err := s.service.ApplyCommand(ctx, s.room.Name, observed, envelope.Command)
		if err != nil {
			log.Printf("Room %s: failed to apply command %s: %v",
				s.room.Name, utils.SanitizeLogString(envelope.Command), err)
			continue
		}
		observed = status

		if observed.Settled() {
			return listenSettled
		}
	}
}

// sleep waits for the duration or the context, whichever ends first. It
// returns false when the context won.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
