package wsendpoint

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

// Sink assembles the payload fragments of one incoming message and invokes
// the bound handler once assembly completes according to its strategy. The
// transport pushes fragments in; sinks never read from the wire themselves.
// A sink is owned by a single connection and is not safe for concurrent use.
type Sink interface {
	// Accept consumes the next payload fragment. fin marks the final
	// fragment of the current message.
	Accept(payload []byte, fin bool) error

	// Close releases any assembly state. Safe to call with a message in
	// flight; a streaming handler sees the stream fail.
	Close()
}

// newSink constructs the sink for a matched message handler. No bound
// handler means no sink, which is a valid outcome, not an error.
func newSink(descriptor *HandlerDescriptor, bound *BoundHandler, policy *Policy, executor Executor) (Sink, error) {
	if bound == nil {
		return nil, nil
	}

	switch descriptor.strategy {
	case SinkWholeText:
		return &stringSink{bound: bound, limit: policy.MaxTextMessageSize}, nil
	case SinkWholeBinaryBuffer:
		return &bufferSink{bound: bound, limit: policy.MaxBinaryMessageSize}, nil
	case SinkWholeBinaryArray:
		return &byteArraySink{bound: bound, limit: policy.MaxBinaryMessageSize}, nil
	case SinkStreamingInput:
		if executor == nil {
			return nil, &SinkError{Strategy: SinkStreamingInput, Reason: ErrNoExecutor}
		}
		return &streamSink{
			bound:    bound,
			executor: executor,
			wrap:     func(r io.Reader) any { return r },
		}, nil
	case SinkStreamingReader:
		if executor == nil {
			return nil, &SinkError{Strategy: SinkStreamingReader, Reason: ErrNoExecutor}
		}
		return &streamSink{
			bound:    bound,
			executor: executor,
			wrap:     func(r io.Reader) any { return bufio.NewReader(r) },
		}, nil
	}

	return nil, &SinkError{Strategy: descriptor.strategy, Reason: errors.New("unknown sink strategy")}
}

// stringSink buffers a whole text message and invokes the handler with the
// assembled string.
type stringSink struct {
	bound *BoundHandler
	limit int64
	buf   strings.Builder
}

func (s *stringSink) Accept(payload []byte, fin bool) error {
	if s.limit > 0 && int64(s.buf.Len())+int64(len(payload)) > s.limit {
		return ErrMessageTooLarge
	}
	s.buf.Write(payload)
	if fin {
		text := s.buf.String()
		s.buf.Reset()
		s.bound.Invoke(text)
	}
	return nil
}

func (s *stringSink) Close() {}

// bufferSink buffers a whole binary message and hands the handler the buffer
// itself. The buffer is surrendered to the handler, so a fresh one is started
// for the next message.
type bufferSink struct {
	bound *BoundHandler
	limit int64
	buf   *bytes.Buffer
}

func (s *bufferSink) Accept(payload []byte, fin bool) error {
	if s.buf == nil {
		s.buf = &bytes.Buffer{}
	}
	if s.limit > 0 && int64(s.buf.Len())+int64(len(payload)) > s.limit {
		return ErrMessageTooLarge
	}
	s.buf.Write(payload)
	if fin {
		buf := s.buf
		s.buf = nil
		s.bound.Invoke(buf)
	}
	return nil
}

func (s *bufferSink) Close() {
	s.buf = nil
}

// byteArraySink buffers a whole binary message and invokes the handler with
// the byte slice plus offset and length slots.
type byteArraySink struct {
	bound *BoundHandler
	limit int64
	buf   bytes.Buffer
}

func (s *byteArraySink) Accept(payload []byte, fin bool) error {
	if s.limit > 0 && int64(s.buf.Len())+int64(len(payload)) > s.limit {
		return ErrMessageTooLarge
	}
	s.buf.Write(payload)
	if fin {
		data := make([]byte, s.buf.Len())
		copy(data, s.buf.Bytes())
		s.buf.Reset()
		s.bound.Invoke(data, 0, len(data))
	}
	return nil
}

func (s *byteArraySink) Close() {
	s.buf.Reset()
}

// streamSink exposes a live stream to the handler before the message is fully
// received. The first fragment dispatches the handler on the executor with
// the read side of a pipe; Accept feeds the write side. fin closes the pipe
// and waits for the handler, keeping message order intact for the connection.
type streamSink struct {
	bound    *BoundHandler
	executor Executor
	wrap     func(r io.Reader) any

	pw   *io.PipeWriter
	done chan struct{}
}

func (s *streamSink) Accept(payload []byte, fin bool) error {
	if s.pw == nil {
		pr, pw := io.Pipe()
		s.pw = pw
		s.done = make(chan struct{})
		done := s.done
		arg := s.wrap(pr)
		s.executor.Execute(func() {
			defer close(done)
			s.bound.Invoke(arg)
			// The handler may return without draining the stream; discard
			// the remainder so Accept never blocks on a dead reader.
			_, _ = io.Copy(io.Discard, pr)
		})
	}
	if len(payload) > 0 {
		if _, err := s.pw.Write(payload); err != nil {
			return err
		}
	}
	if fin {
		_ = s.pw.Close()
		<-s.done
		s.pw = nil
		s.done = nil
	}
	return nil
}

func (s *streamSink) Close() {
	if s.pw == nil {
		return
	}
	_ = s.pw.CloseWithError(ErrSinkClosed)
	<-s.done
	s.pw = nil
	s.done = nil
}
