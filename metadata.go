package wsendpoint

import "reflect"

type EventKind int

const (
	EventOpen EventKind = iota
	EventClose
	EventError
	EventText
	EventBinary
	EventFrame
	EventPing
	EventPong
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventError:
		return "error"
	case EventText:
		return "text"
	case EventBinary:
		return "binary"
	case EventFrame:
		return "frame"
	case EventPing:
		return "ping"
	case EventPong:
		return "pong"
	}
	return "unknown"
}

type SinkStrategy int

const (
	SinkNone SinkStrategy = iota
	SinkWholeText
	SinkWholeBinaryBuffer
	SinkWholeBinaryArray
	SinkStreamingInput
	SinkStreamingReader
)

func (s SinkStrategy) String() string {
	switch s {
	case SinkWholeText:
		return "whole-text"
	case SinkWholeBinaryBuffer:
		return "whole-binary-buffer"
	case SinkWholeBinaryArray:
		return "whole-binary-array"
	case SinkStreamingInput:
		return "streaming-input"
	case SinkStreamingReader:
		return "streaming-reader"
	}
	return "none"
}

// HandlerDescriptor is an unbound reference to a matched handler method.
// paramSlots maps each method parameter (receiver excluded) to the template
// slot that satisfied it; slot 0 is always the session.
type HandlerDescriptor struct {
	method     reflect.Method
	kind       EventKind
	strategy   SinkStrategy
	paramSlots []int
}

func (d *HandlerDescriptor) Method() reflect.Method {
	return d.method
}

func (d *HandlerDescriptor) Name() string {
	return d.method.Name
}

func (d *HandlerDescriptor) Kind() EventKind {
	return d.kind
}

func (d *HandlerDescriptor) Strategy() SinkStrategy {
	return d.strategy
}

func (d *HandlerDescriptor) wantsSession() bool {
	for _, slot := range d.paramSlots {
		if slot == sessionSlot {
			return true
		}
	}
	return false
}

// Metadata describes the handler surface of one endpoint type. It is built
// once by introspection, published through the metadata cache, and never
// mutated afterwards.
type Metadata struct {
	endpointType reflect.Type

	open  *HandlerDescriptor
	close *HandlerDescriptor
	error *HandlerDescriptor
	frame *HandlerDescriptor
	ping  *HandlerDescriptor
	pong  *HandlerDescriptor

	text   *HandlerDescriptor
	binary *HandlerDescriptor
}

func newMetadata(endpointType reflect.Type) *Metadata {
	return &Metadata{endpointType: endpointType}
}

func (m *Metadata) EndpointType() reflect.Type { return m.endpointType }
func (m *Metadata) Open() *HandlerDescriptor   { return m.open }
func (m *Metadata) Close() *HandlerDescriptor  { return m.close }
func (m *Metadata) Error() *HandlerDescriptor  { return m.error }
func (m *Metadata) Frame() *HandlerDescriptor  { return m.frame }
func (m *Metadata) Ping() *HandlerDescriptor   { return m.ping }
func (m *Metadata) Pong() *HandlerDescriptor   { return m.pong }
func (m *Metadata) Text() *HandlerDescriptor   { return m.text }
func (m *Metadata) Binary() *HandlerDescriptor { return m.binary }

func (m *Metadata) TextStrategy() SinkStrategy {
	if m.text == nil {
		return SinkNone
	}
	return m.text.strategy
}

func (m *Metadata) BinaryStrategy() SinkStrategy {
	if m.binary == nil {
		return SinkNone
	}
	return m.binary.strategy
}

func (m *Metadata) setText(d *HandlerDescriptor) error {
	if m.text != nil {
		return &DuplicateHandlerError{
			Endpoint: m.endpointType,
			Kind:     EventText,
			First:    m.text.method.Name,
			Second:   d.method.Name,
		}
	}
	m.text = d
	return nil
}

func (m *Metadata) setBinary(d *HandlerDescriptor) error {
	if m.binary != nil {
		return &DuplicateHandlerError{
			Endpoint: m.endpointType,
			Kind:     EventBinary,
			First:    m.binary.method.Name,
			Second:   d.method.Name,
		}
	}
	m.binary = d
	return nil
}

// hasHandlers reports whether introspection found any handler at all.
func (m *Metadata) hasHandlers() bool {
	return m.open != nil || m.close != nil || m.error != nil ||
		m.frame != nil || m.ping != nil || m.pong != nil ||
		m.text != nil || m.binary != nil
}
