package connect_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edumon/acrooms/internal/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPageBody mimics the javascript payload on a room's stub page with the
// credential fields URL-encoded into it
func stubPageBody(ticket, originHost, originPort, appInstance string) string {
	return fmt.Sprintf(
		`var launcher = "launcher?ticket%%3D%s%%26foo%%3Dbar%%26origins%%3D%s%%3A%s%%2Cother%%26appInstance%%3D%s%%2F";`,
		ticket, originHost, originPort, appInstance,
	)
}

func serveBody(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestResolveCredentials(t *testing.T) {
	body := stubPageBody("abc123def", "spcs-app3uswest1", "443", "7%2F00AF52BC9")
	server := serveBody(t, body, http.StatusOK)
	defer server.Close()

	provider := connect.NewProvider()
	creds, err := provider.Resolve(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "abc123def", creds.Ticket)
	assert.Equal(t, "spcs-app3uswest1:443", creds.Origin)
	assert.Equal(t, "7%2F00AF52BC9", creds.AppInstance)
}

func TestResolveMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"no ticket", `origins%3Dhost%3A443%2C appInstance%3D7%2F00AF%2F`, connect.ErrTicketExtraction},
		{"no origin", `ticket%3Dabc123%26 appInstance%3D7%2F00AF%2F`, connect.ErrOriginExtraction},
		{"no app instance", `ticket%3Dabc123%26 origins%3Dhost%3A443%2C`, connect.ErrAppInstanceExtraction},
		{"empty page", "", connect.ErrTicketExtraction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := serveBody(t, tc.body, http.StatusOK)
			defer server.Close()

			provider := connect.NewProvider()
			_, err := provider.Resolve(context.Background(), server.URL)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestResolveHTTPFailure(t *testing.T) {
	server := serveBody(t, "not found", http.StatusNotFound)
	defer server.Close()

	provider := connect.NewProvider()
	_, err := provider.Resolve(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestResolveUnreachableHost(t *testing.T) {
	server := serveBody(t, "", http.StatusOK)
	url := server.URL
	server.Close()

	provider := connect.NewProvider()
	_, err := provider.Resolve(context.Background(), url)
	assert.Error(t, err)
}
