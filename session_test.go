package wsendpoint

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIdentity(t *testing.T) {
	a := newTestSession()
	b := newTestSession()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSessionConnectionInfo(t *testing.T) {
	info := &ConnectionInfo{
		RemoteAddr: "10.0.0.1:1234",
		Path:       "/rooms/lobby",
		PathParams: map[string]string{"room": "lobby"},
		Headers:    http.Header{"X-Tag": []string{"a"}},
		Query:      map[string]string{"token": "secret"},
	}
	s := NewSession(info, nopConnection{})

	assert.Equal(t, "10.0.0.1:1234", s.RemoteAddr())
	assert.Equal(t, "lobby", s.PathParam("room"))
	assert.Equal(t, "", s.PathParam("missing"))
	assert.Equal(t, "secret", s.QueryParam("token"))
	assert.Equal(t, "a", s.Headers().Get("X-Tag"))
}

func TestSessionEmptyInfo(t *testing.T) {
	s := NewSession(nil, nopConnection{})
	assert.Equal(t, "", s.RemoteAddr())
	assert.Equal(t, "", s.PathParam("x"))
	assert.Equal(t, "", s.QueryParam("x"))
	assert.NotNil(t, s.Headers())
}

func TestSessionCloseKeepsFirstStatus(t *testing.T) {
	s := newTestSession()
	require.False(t, s.IsClosed())

	s.Close(StatusGoingAway, "first")
	s.Close(StatusInternalError, "second")

	assert.True(t, s.IsClosed())
	status, reason := s.CloseStatus()
	assert.Equal(t, StatusGoingAway, status)
	assert.Equal(t, "first", reason)

	select {
	case <-s.Done():
	default:
		t.Fatal("session context not cancelled on close")
	}
}
