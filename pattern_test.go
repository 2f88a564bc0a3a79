package wsendpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		params  map[string]string
		matches bool
	}{
		{"/echo", "/echo", nil, true},
		{"/echo", "/other", nil, false},
		{"/echo", "/echo/extra", nil, false},
		{"/rooms/{room}", "/rooms/lobby", map[string]string{"room": "lobby"}, true},
		{"/rooms/{room}", "/rooms", nil, false},
		{"/rooms/{room}/users/{user}", "/rooms/a/users/b", map[string]string{"room": "a", "user": "b"}, true},
		{"/files/*", "/files/report", nil, true},
		{"/files/*", "/files/a/b", nil, false},
		{"/files/**", "/files/a/b", nil, true},
		{"/", "/", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			pattern, err := NewPattern(tt.pattern)
			require.NoError(t, err)

			params, ok := pattern.Match(tt.path)
			assert.Equal(t, tt.matches, ok)
			if tt.matches {
				assert.Equal(t, tt.params, params)
			}
		})
	}
}

func TestPatternInvalidParamName(t *testing.T) {
	_, err := NewPattern("/rooms/{bad name}")
	assert.Error(t, err)
}

func TestPatternString(t *testing.T) {
	pattern, err := NewPattern("/a/{b}")
	require.NoError(t, err)
	assert.Equal(t, "/a/{b}", pattern.String())
}
