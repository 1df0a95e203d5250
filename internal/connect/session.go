package connect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Production platform endpoints. The websocket endpoint is overridable via
// Dialer.Endpoint; the RTMP prefix and swfUrl are fixed parts of the
// handshake template the platform expects verbatim.
const (
	DefaultEndpoint = "wss://amsprod-connect-uswest1-acts1.acms.com:443/"

	rtmpSlug = "rtmps://spcs-app3uswest1.acms.com:443/"
	swfSlug  = "https://pcadobeconnect.stanford.edu/common/webrtchtml/index.html"

	connectSuccessCode = "NetConnection.Connect.Success"

	heartbeatEnableMessage = `{"type":"WSFunc","method":"startHeartbeat","value":true}`

	closeGracePeriod = 5 * time.Second
)

// Session errors
var (
	// ErrHandshakeRejected means the platform refused the connect request,
	// usually because the scraped credentials have already expired.
	ErrHandshakeRejected = errors.New("platform rejected the session handshake")

	// ErrClosed covers every transport-level termination of a session. The
	// supervisor treats all causes identically, so none are distinguished.
	ErrClosed = errors.New("session transport closed")
)

// Dialer opens sessions against the platform's websocket endpoint
type Dialer struct {
	// Endpoint overrides the production websocket endpoint when non-empty
	Endpoint string

	wsDialer *websocket.Dialer
}

// NewDialer creates a dialer for the given endpoint; an empty endpoint
// means the production default.
func NewDialer(endpoint string) *Dialer {
	return &Dialer{
		Endpoint: endpoint,
		wsDialer: websocket.DefaultDialer,
	}
}

// Session is one persistent connection representing a single observation
// attempt for a room. At most one session is active per room at a time;
// the owning supervisor is the only user of a session.
type Session struct {
	conn *websocket.Conn
}

// handshakeResponse is the only shape accepted as a successful connect reply
type handshakeResponse struct {
	Status struct {
		Code string `json:"code"`
	} `json:"status"`
}

// HandshakeMessage builds the connect frame for a credential triple. The
// frame is a fixed template filled in field order, so identical inputs
// produce byte-identical output. The timestamp busts the platform's swfUrl
// cache.
func HandshakeMessage(creds Credentials, at time.Time) []byte {
	return []byte(fmt.Sprintf(
		`{"type":"NCFunc","method":"connect","url":"%s?rtmp://%s/meetingas3app/%s/","params":{"ticket":"%s","reconnection":false,"swfUrl":"%s?timestamp=%d","Recording":false}}`,
		rtmpSlug, creds.Origin, creds.AppInstance, creds.Ticket, swfSlug, at.UnixMilli(),
	))
}

// Open connects to the platform, performs the handshake, and enables server
// heartbeats. It returns an open session, or an error if the transport or
// the handshake failed; recovery is the caller's responsibility.
func (d *Dialer) Open(ctx context.Context, creds Credentials) (*Session, error) {
	endpoint := d.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	wsDialer := d.wsDialer
	if wsDialer == nil {
		wsDialer = websocket.DefaultDialer
	}

	conn, _, err := wsDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", endpoint, err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, HandshakeMessage(creds, time.Now())); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send handshake: %w", err)
	}

	// Exactly one reply is expected before any push traffic
	_, reply, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read handshake reply: %w", err)
	}

	var response handshakeResponse
	if err := json.Unmarshal(reply, &response); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: unparsable reply", ErrHandshakeRejected)
	}
	if response.Status.Code != connectSuccessCode {
		conn.Close()
		return nil, fmt.Errorf("%w: status code %q", ErrHandshakeRejected, response.Status.Code)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(heartbeatEnableMessage)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable heartbeats: %w", err)
	}

	return &Session{conn: conn}, nil
}

// Receive blocks until the next message arrives. Any transport error or
// termination is reported as ErrClosed; the distinction between causes
// carries no value upstream.
func (s *Session) Receive() (string, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return "", ErrClosed
	}
	return string(data), nil
}

// Close shuts the session down gracefully on a best-effort basis. Failures
// are logged and swallowed; from the caller's point of view closing always
// succeeds.
func (s *Session) Close() {
	deadline := time.Now().Add(closeGracePeriod)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		log.Printf("Error sending close frame: %v", err)
	}
	if err := s.conn.Close(); err != nil {
		log.Printf("Error closing session transport: %v", err)
	}
}
