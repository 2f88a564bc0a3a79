package wsendpoint

import "reflect"

// BoundHandler is a handler descriptor with the endpoint instance and session
// already applied. The caller supplies only the event-specific arguments, in
// template slot order with the session slot omitted; the recorded slot
// mapping reorders them into the method's declared parameter order.
type BoundHandler struct {
	fn         reflect.Value
	receiver   reflect.Value
	session    reflect.Value
	paramSlots []int
}

// bindHandler partially applies instance and session to a descriptor. The
// session is only wired in when the matched template recorded a session
// parameter on this particular method. A nil descriptor binds to nil: the
// event is simply unhandled.
func bindHandler(descriptor *HandlerDescriptor, instance any, session *Session) *BoundHandler {
	if descriptor == nil {
		return nil
	}
	return &BoundHandler{
		fn:         descriptor.method.Func,
		receiver:   reflect.ValueOf(instance),
		session:    reflect.ValueOf(session),
		paramSlots: descriptor.paramSlots,
	}
}

// Invoke calls the underlying method. args holds the event-specific slot
// values, indexed by template slot minus one (slot 0, the session, was
// applied at bind time). Optional slots the method did not declare are
// skipped; missing or nil values become the parameter's zero value.
func (b *BoundHandler) Invoke(args ...any) {
	in := make([]reflect.Value, 1, len(b.paramSlots)+1)
	in[0] = b.receiver
	for _, slot := range b.paramSlots {
		if slot == sessionSlot {
			in = append(in, b.session)
			continue
		}
		paramType := b.fn.Type().In(len(in))
		idx := slot - 1
		if idx >= len(args) || args[idx] == nil {
			in = append(in, reflect.Zero(paramType))
			continue
		}
		in = append(in, reflect.ValueOf(args[idx]))
	}
	b.fn.Call(in)
}
