package wsendpoint

import (
	"fmt"
	"reflect"
	"strings"
)

// Handlers are marked by method name: OnOpen, OnClose, OnError, OnFrame,
// OnPing and OnPong for lifecycle events, and any exported method starting
// with OnMessage for message handlers. A lifecycle method declared with the
// exact shape of its handler interface below is taken as-is with no template
// search; any other shape goes through a permissive template match where the
// session parameter is optional.

type OpenHandler interface {
	OnOpen(session *Session)
}

type CloseHandler interface {
	OnClose(session *Session, status CloseStatus, reason string)
}

type ErrorHandler interface {
	OnError(session *Session, err error)
}

var strictLifecycleShapes = map[EventKind]struct {
	iface      reflect.Type
	paramSlots []int
}{
	EventOpen:  {reflect.TypeOf((*OpenHandler)(nil)).Elem(), []int{sessionSlot}},
	EventClose: {reflect.TypeOf((*CloseHandler)(nil)).Elem(), []int{sessionSlot, 1, 2}},
	EventError: {reflect.TypeOf((*ErrorHandler)(nil)).Elem(), []int{sessionSlot, 1}},
}

const messageMarkerPrefix = "OnMessage"

var lifecycleMarkers = map[string]EventKind{
	"OnOpen":  EventOpen,
	"OnClose": EventClose,
	"OnError": EventError,
	"OnFrame": EventFrame,
	"OnPing":  EventPing,
	"OnPong":  EventPong,
}

// introspect builds the metadata for one endpoint type. The result is
// complete or nil; a broken handler aborts the whole computation.
func introspect(endpointType reflect.Type) (*Metadata, error) {
	if endpointType == nil {
		return nil, ErrInvalidEndpoint
	}

	meta := newMetadata(endpointType)

	for i := 0; i < endpointType.NumMethod(); i++ {
		method := endpointType.Method(i)

		if kind, ok := lifecycleMarkers[method.Name]; ok {
			if err := introspectLifecycleMethod(meta, method, kind); err != nil {
				return nil, err
			}
			continue
		}

		if strings.HasPrefix(method.Name, messageMarkerPrefix) {
			if err := assertSignatureValid(endpointType, method); err != nil {
				return nil, err
			}
			if err := introspectMessageMethod(meta, method); err != nil {
				return nil, err
			}
		}
	}

	if !meta.hasHandlers() {
		return nil, fmt.Errorf("%w: %s declares no handler methods", ErrInvalidEndpoint, endpointType)
	}

	return meta, nil
}

func introspectLifecycleMethod(meta *Metadata, method reflect.Method, kind EventKind) error {
	if err := assertSignatureValid(meta.endpointType, method); err != nil {
		return err
	}

	descriptor := &HandlerDescriptor{method: method, kind: kind}

	if strict, ok := strictLifecycleShapes[kind]; ok && meta.endpointType.Implements(strict.iface) {
		descriptor.paramSlots = strict.paramSlots
	} else {
		paramSlots, ok := matchTemplate(method, lifecycleTemplates[kind])
		if !ok {
			return &InvalidSignatureError{
				Endpoint: meta.endpointType,
				Method:   method.Name,
				Reason:   fmt.Sprintf("parameters do not match the %s template", kind),
			}
		}
		descriptor.paramSlots = paramSlots
	}

	switch kind {
	case EventOpen:
		meta.open = descriptor
	case EventClose:
		meta.close = descriptor
	case EventError:
		meta.error = descriptor
	case EventFrame:
		meta.frame = descriptor
	case EventPing:
		meta.ping = descriptor
	case EventPong:
		meta.pong = descriptor
	}
	return nil
}

// introspectMessageMethod tries the message templates in priority order:
// whole text, whole binary buffer, whole binary array, streaming input,
// streaming reader. The first match decides modality and sink strategy; a
// method matching none of them is a programming error, not a method to skip.
func introspectMessageMethod(meta *Metadata, method reflect.Method) error {
	for _, tmpl := range messageTemplates {
		paramSlots, ok := matchTemplate(method, tmpl.slots)
		if !ok {
			continue
		}
		descriptor := &HandlerDescriptor{
			method:     method,
			kind:       tmpl.modality,
			strategy:   tmpl.strategy,
			paramSlots: paramSlots,
		}
		if tmpl.modality == EventText {
			return meta.setText(descriptor)
		}
		return meta.setBinary(descriptor)
	}

	return &InvalidSignatureError{
		Endpoint: meta.endpointType,
		Method:   method.Name,
		Reason:   "parameters do not match any message template",
	}
}

// assertSignatureValid enforces the hard constraints shared by every marked
// handler. The dispatch runtime calls handlers purely for effect, so return
// values are rejected outright. Visibility and instance-method constraints
// are enforced by the language: reflection only surfaces exported methods
// reachable from the instance's type.
func assertSignatureValid(endpointType reflect.Type, method reflect.Method) error {
	if method.Type.NumOut() != 0 {
		return &InvalidSignatureError{
			Endpoint: endpointType,
			Method:   method.Name,
			Reason:   "handler must not return values",
		}
	}
	if method.Type.IsVariadic() {
		return &InvalidSignatureError{
			Endpoint: endpointType,
			Method:   method.Name,
			Reason:   "handler must not be variadic",
		}
	}
	return nil
}
