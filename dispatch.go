package wsendpoint

// Frame is the event-level view of a single wire frame handed to a frame
// handler. Control payloads for ping and pong handlers arrive as plain byte
// slices instead.
type Frame struct {
	Type MessageType
	Data []byte
	Fin  bool
}

// DispatchTable is the per-connection aggregate of bound handlers and sinks.
// It is owned by one connection; the transport reads it on every event. A nil
// slot means the endpoint declared no handler for that event and the event is
// silently dropped.
type DispatchTable struct {
	endpoint any
	policy   *Policy

	open  *BoundHandler
	close *BoundHandler
	error *BoundHandler
	frame *BoundHandler
	ping  *BoundHandler
	pong  *BoundHandler

	textSink   Sink
	binarySink Sink
}

func (t *DispatchTable) Endpoint() any {
	return t.endpoint
}

func (t *DispatchTable) Policy() *Policy {
	return t.policy
}

func (t *DispatchTable) HasTextHandler() bool {
	return t.textSink != nil
}

func (t *DispatchTable) HasBinaryHandler() bool {
	return t.binarySink != nil
}

func (t *DispatchTable) HandleOpen() {
	if t.open == nil {
		return
	}
	t.open.Invoke()
}

func (t *DispatchTable) HandleClose(status CloseStatus, reason string) {
	if t.close == nil {
		return
	}
	t.close.Invoke(status, reason)
}

func (t *DispatchTable) HandleError(err error) {
	if t.error == nil {
		return
	}
	t.error.Invoke(err)
}

func (t *DispatchTable) HandleFrame(frame Frame) {
	if t.frame == nil {
		return
	}
	t.frame.Invoke(frame)
}

func (t *DispatchTable) HandlePing(payload []byte) {
	if t.ping == nil {
		return
	}
	t.ping.Invoke(payload)
}

func (t *DispatchTable) HandlePong(payload []byte) {
	if t.pong == nil {
		return
	}
	t.pong.Invoke(payload)
}

// HandleText feeds one text fragment into the text sink. fin marks the final
// fragment of the message.
func (t *DispatchTable) HandleText(payload []byte, fin bool) error {
	if t.textSink == nil {
		return nil
	}
	return t.textSink.Accept(payload, fin)
}

// HandleBinary feeds one binary fragment into the binary sink.
func (t *DispatchTable) HandleBinary(payload []byte, fin bool) error {
	if t.binarySink == nil {
		return nil
	}
	return t.binarySink.Accept(payload, fin)
}

// Release tears down the sinks. The table must not be used afterwards.
func (t *DispatchTable) Release() {
	if t.textSink != nil {
		t.textSink.Close()
	}
	if t.binarySink != nil {
		t.binarySink.Close()
	}
}
