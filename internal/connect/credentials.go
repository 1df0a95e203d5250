// Package connect implements the session protocol against the meeting
// platform: credential scraping, the websocket handshake, and the
// interpretation of inbound push messages.
package connect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

// Credential extraction errors, one per scraped field
var (
	ErrTicketExtraction      = errors.New("ticket extraction failed")
	ErrOriginExtraction      = errors.New("origin extraction failed")
	ErrAppInstanceExtraction = errors.New("app instance extraction failed")
)

// The credential fields are URL-encoded into a javascript payload on the
// room's stub page, so a proper HTML parser buys nothing here; these match
// the encoded query fragments directly.
var (
	ticketPattern      = regexp.MustCompile(`ticket%3D([a-z0-9]+)%26`)
	originPattern      = regexp.MustCompile(`origins%3D([a-z0-9\-]+)%3A([0-9]+)%2C`)
	appInstancePattern = regexp.MustCompile(`appInstance%3D([0-9]%2F[0-9A-F]+)%2F`)
)

// Credentials is the short-lived triple required to open a session for a
// room. It must be re-derived whenever a session needs re-establishing.
type Credentials struct {
	Ticket      string
	Origin      string // host:port
	AppInstance string
}

// Provider scrapes credentials from a room's stub page
type Provider struct {
	httpClient *http.Client
}

// NewProvider creates a credential provider with a sensible request timeout
func NewProvider() *Provider {
	return &Provider{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Resolve fetches the stub page for a room and extracts the credential
// triple from it. Each field fails with its own extraction error so that
// page-layout changes surface precisely in the logs.
func (p *Provider) Resolve(ctx context.Context, roomURL string) (Credentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, roomURL, nil)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to create credential request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to fetch credential page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credential page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Credentials{}, fmt.Errorf("credential page returned status %d", resp.StatusCode)
	}

	return extractCredentials(string(body))
}

// extractCredentials pulls the credential triple out of a stub page body
func extractCredentials(body string) (Credentials, error) {
	ticket := ticketPattern.FindStringSubmatch(body)
	if ticket == nil {
		return Credentials{}, ErrTicketExtraction
	}

	origin := originPattern.FindStringSubmatch(body)
	if origin == nil {
		return Credentials{}, ErrOriginExtraction
	}

	appInstance := appInstancePattern.FindStringSubmatch(body)
	if appInstance == nil {
		return Credentials{}, ErrAppInstanceExtraction
	}

	return Credentials{
		Ticket:      ticket[1],
		Origin:      fmt.Sprintf("%s:%s", origin[1], origin[2]),
		AppInstance: appInstance[1],
	}, nil
}
