package wsendpoint

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matcherEndpoint struct{}

func (e *matcherEndpoint) TextWithSession(s *Session, text string)        {}
func (e *matcherEndpoint) TextReversed(text string, s *Session)           {}
func (e *matcherEndpoint) TextOnly(text string)                           {}
func (e *matcherEndpoint) SessionOnly(s *Session)                         {}
func (e *matcherEndpoint) NoParams()                                      {}
func (e *matcherEndpoint) ArrayFull(s *Session, b []byte, off, n int)     {}
func (e *matcherEndpoint) ArrayNoOffsets(b []byte)                        {}
func (e *matcherEndpoint) BufferParam(buf *bytes.Buffer)                  {}
func (e *matcherEndpoint) ReaderParam(r io.Reader)                        {}
func (e *matcherEndpoint) RuneReaderParam(r io.RuneReader)                {}
func (e *matcherEndpoint) WrongType(n float64)                            {}
func (e *matcherEndpoint) ExtraParam(s *Session, text string, extra bool) {}
func (e *matcherEndpoint) TooManyInts(b []byte, a, b2, c int)             {}

func methodOf(t *testing.T, name string) reflect.Method {
	t.Helper()
	method, ok := reflect.TypeOf(&matcherEndpoint{}).MethodByName(name)
	require.True(t, ok, "method %s not found", name)
	return method
}

func TestMatchTemplate(t *testing.T) {
	textSlots := messageTemplates[0].slots
	arraySlots := messageTemplates[2].slots

	tests := []struct {
		name       string
		method     string
		slots      []argSlot
		want       []int
		wantsMatch bool
	}{
		{"session and text in slot order", "TextWithSession", textSlots, []int{0, 1}, true},
		{"parameter order independent", "TextReversed", textSlots, []int{1, 0}, true},
		{"optional session omitted", "TextOnly", textSlots, []int{1}, true},
		{"required text missing", "SessionOnly", textSlots, nil, false},
		{"no params fails required slot", "NoParams", textSlots, nil, false},
		{"array with offset and length", "ArrayFull", arraySlots, []int{0, 1, 2, 3}, true},
		{"array without offsets", "ArrayNoOffsets", arraySlots, []int{1}, true},
		{"wrong param type", "WrongType", textSlots, nil, false},
		{"unaccounted parameter", "ExtraParam", textSlots, nil, false},
		{"more ints than slots", "TooManyInts", arraySlots, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchTemplate(methodOf(t, tt.method), tt.slots)
			assert.Equal(t, tt.wantsMatch, ok)
			if tt.wantsMatch {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMatchTemplateExactTypes(t *testing.T) {
	// A *bytes.Buffer satisfies io.Reader and io.RuneReader at runtime, but
	// matching is by declared parameter type, so the templates stay mutually
	// exclusive.
	_, ok := matchTemplate(methodOf(t, "BufferParam"), messageTemplates[3].slots)
	assert.False(t, ok, "buffer param must not match the streaming-input template")

	_, ok = matchTemplate(methodOf(t, "ReaderParam"), messageTemplates[1].slots)
	assert.False(t, ok, "reader param must not match the buffer template")

	_, ok = matchTemplate(methodOf(t, "RuneReaderParam"), messageTemplates[4].slots)
	assert.True(t, ok, "rune reader param must match the streaming-reader template")
}
