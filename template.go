package wsendpoint

import (
	"bytes"
	"io"
	"reflect"
)

// A calling-argument template describes one acceptable method shape for an
// event: an ordered list of typed slots, each required or optional. Slot 0 is
// always the session. The matcher pairs every method parameter with a distinct
// slot; parameter order does not have to follow slot order, the recorded slot
// indexes restore the correspondence at invocation time.

const sessionSlot = 0

type argSlot struct {
	typ      reflect.Type
	required bool
}

var (
	sessionType     = reflect.TypeOf((*Session)(nil))
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
	readerType      = reflect.TypeOf((*io.Reader)(nil)).Elem()
	runeReaderType  = reflect.TypeOf((*io.RuneReader)(nil)).Elem()
	bytesBufferType = reflect.TypeOf((*bytes.Buffer)(nil))
	byteSliceType   = reflect.TypeOf([]byte(nil))
	stringType      = reflect.TypeOf("")
	intType         = reflect.TypeOf(int(0))
	closeStatusType = reflect.TypeOf(CloseStatus(0))
	frameType       = reflect.TypeOf(Frame{})
)

var lifecycleTemplates = map[EventKind][]argSlot{
	EventOpen: {
		{sessionType, false},
	},
	EventClose: {
		{sessionType, false},
		{closeStatusType, false},
		{stringType, false},
	},
	EventError: {
		{sessionType, false},
		{errorType, true},
	},
	EventFrame: {
		{sessionType, false},
		{frameType, true},
	},
	EventPing: {
		{sessionType, false},
		{byteSliceType, false},
	},
	EventPong: {
		{sessionType, false},
		{byteSliceType, false},
	},
}

type messageTemplate struct {
	strategy SinkStrategy
	modality EventKind
	slots    []argSlot
}

// Tried in declaration order; the first template that matches a message
// handler decides both its modality and its sink strategy. The order is kept
// for compatibility with existing endpoints and is otherwise arbitrary.
var messageTemplates = []messageTemplate{
	{SinkWholeText, EventText, []argSlot{
		{sessionType, false},
		{stringType, true},
	}},
	{SinkWholeBinaryBuffer, EventBinary, []argSlot{
		{sessionType, false},
		{bytesBufferType, true},
	}},
	{SinkWholeBinaryArray, EventBinary, []argSlot{
		{sessionType, false},
		{byteSliceType, true},
		{intType, false}, // offset
		{intType, false}, // length
	}},
	{SinkStreamingInput, EventBinary, []argSlot{
		{sessionType, false},
		{readerType, true},
	}},
	{SinkStreamingReader, EventText, []argSlot{
		{sessionType, false},
		{runeReaderType, true},
	}},
}

// matchTemplate reports whether the method's parameters are satisfiable by
// the template. Every parameter must consume a distinct slot and every
// required slot must be consumed. Matching is by exact parameter type: Go has
// no subtype hierarchy to honor here, and interface-typed slots (error,
// io.Reader, io.RuneReader) are declared by the same interface in handler
// code. Returns the slot index per parameter.
func matchTemplate(method reflect.Method, slots []argSlot) ([]int, bool) {
	mt := method.Type
	numParams := mt.NumIn() - 1 // skip receiver
	if numParams > len(slots) {
		return nil, false
	}

	used := make([]bool, len(slots))
	paramSlots := make([]int, 0, numParams)
	for i := 1; i <= numParams; i++ {
		param := mt.In(i)
		slot := -1
		for j, s := range slots {
			if !used[j] && s.typ == param {
				slot = j
				break
			}
		}
		if slot < 0 {
			return nil, false
		}
		used[slot] = true
		paramSlots = append(paramSlots, slot)
	}

	for j, s := range slots {
		if s.required && !used[j] {
			return nil, false
		}
	}

	return paramSlots, true
}
