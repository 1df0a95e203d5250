package connect_test

import (
	"testing"

	"github.com/edumon/acrooms/internal/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeartbeat(t *testing.T) {
	env, err := connect.ParseMessage(`{"method":"heartbeat"}`)
	require.NoError(t, err)
	assert.True(t, env.Heartbeat)
	assert.Empty(t, env.Command)
}

func TestParseCommand(t *testing.T) {
	raw := `{"method":"onCommand","command":"loginHandler","params":{"arg_0":{"command":"accepted"}}}`

	env, err := connect.ParseMessage(raw)
	require.NoError(t, err)
	assert.False(t, env.Heartbeat)
	assert.Equal(t, "accepted", env.Command)
}

func TestParseTimeoutCommand(t *testing.T) {
	raw := `{"method":"onCommand","command":"loginHandler","params":{"arg_0":{"command":"connectionTimedOut"}}}`

	env, err := connect.ParseMessage(raw)
	require.NoError(t, err)
	assert.Equal(t, "connectionTimedOut", env.Command)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"empty message", "", connect.ErrEmptyMessage},
		{"not json", "garbage{", connect.ErrInvalidPayload},
		{"non-object payload", `"hello"`, connect.ErrInvalidPayload},
		{"null payload", `null`, connect.ErrInvalidPayload},
		{"array payload", `[1,2,3]`, connect.ErrInvalidPayload},
		{"missing method", `{"command":"loginHandler"}`, connect.ErrUnknownMethod},
		{"unknown method", `{"method":"somethingElse"}`, connect.ErrUnknownMethod},
		{"missing command", `{"method":"onCommand"}`, connect.ErrUnknownCommand},
		{"unknown command", `{"method":"onCommand","command":"other"}`, connect.ErrUnknownCommand},
		{"missing params", `{"method":"onCommand","command":"loginHandler"}`, connect.ErrMissingParams},
		{"params not object", `{"method":"onCommand","command":"loginHandler","params":"nope"}`, connect.ErrInvalidPayload},
		{"missing arg_0", `{"method":"onCommand","command":"loginHandler","params":{}}`, connect.ErrMissingParams},
		{"arg_0 not object", `{"method":"onCommand","command":"loginHandler","params":{"arg_0":7}}`, connect.ErrInvalidPayload},
		{"missing name", `{"method":"onCommand","command":"loginHandler","params":{"arg_0":{}}}`, connect.ErrMissingName},
		{"name not string", `{"method":"onCommand","command":"loginHandler","params":{"arg_0":{"command":1}}}`, connect.ErrInvalidPayload},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := connect.ParseMessage(tc.raw)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
