package monitor

import (
	"context"

	"github.com/edumon/acrooms/internal/config"
	"github.com/edumon/acrooms/internal/connect"
	"github.com/edumon/acrooms/internal/models"
	"github.com/edumon/acrooms/internal/service"
)

// platformOpener adapts the websocket dialer to the SessionOpener interface
type platformOpener struct {
	dialer *connect.Dialer
}

func (p platformOpener) Open(ctx context.Context, creds connect.Credentials) (Session, error) {
	session, err := p.dialer.Open(ctx, creds)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// NewPlatformOpener returns a SessionOpener backed by the real platform
// endpoint; an empty endpoint means the production default.
func NewPlatformOpener(endpoint string) SessionOpener {
	return platformOpener{dialer: connect.NewDialer(endpoint)}
}

// Manager owns one supervisor per configured room
type Manager struct {
	supervisors []*Supervisor
}

// NewManager builds supervisors for the given rooms, sharing one credential
// provider and one session opener.
func NewManager(rooms []models.Room, svc *service.RoomService, cfg config.MonitorConfig) *Manager {
	creds := connect.NewProvider()
	sessions := NewPlatformOpener(cfg.Endpoint)

	supervisors := make([]*Supervisor, 0, len(rooms))
	for _, room := range rooms {
		supervisors = append(supervisors, NewSupervisor(room, creds, sessions, svc, cfg))
	}

	return &Manager{supervisors: supervisors}
}

// Start launches every room's supervisor. Each runs independently until the
// context is canceled; rooms never block one another.
func (m *Manager) Start(ctx context.Context) {
	for _, supervisor := range m.supervisors {
		go supervisor.Run(ctx)
	}
}
