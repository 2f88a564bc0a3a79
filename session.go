package wsendpoint

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConnectionInfo captures the upgrade request details a handler may want.
type ConnectionInfo struct {
	RemoteAddr string
	Path       string
	PathParams map[string]string
	Headers    http.Header
	Query      map[string]string
}

// Session is the capability object handlers receive to talk back to their
// connection. It implements context.Context, cancelled when the session
// closes.
type Session struct {
	id   string
	info *ConnectionInfo
	conn SessionConnection

	closeMu     sync.Mutex
	closed      bool
	closeStatus CloseStatus
	closeReason string

	ctx       context.Context
	cancelCtx context.CancelFunc
}

var _ context.Context = &Session{}

func NewSession(info *ConnectionInfo, conn SessionConnection) *Session {
	s := &Session{
		id:   uuid.NewString(),
		info: info,
		conn: conn,
	}
	s.ctx, s.cancelCtx = context.WithCancel(context.Background())
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) ConnectionInfo() *ConnectionInfo {
	return s.info
}

func (s *Session) Headers() http.Header {
	if s.info != nil && s.info.Headers != nil {
		return s.info.Headers
	}
	return http.Header{}
}

func (s *Session) QueryParam(key string) string {
	if s.info != nil && s.info.Query != nil {
		return s.info.Query[key]
	}
	return ""
}

// PathParam returns a capture from the path pattern the endpoint was
// registered under.
func (s *Session) PathParam(key string) string {
	if s.info != nil && s.info.PathParams != nil {
		return s.info.PathParams[key]
	}
	return ""
}

func (s *Session) RemoteAddr() string {
	if s.info != nil {
		return s.info.RemoteAddr
	}
	return ""
}

func (s *Session) SendText(data []byte) error {
	return s.conn.Write(s.ctx, MessageText, data)
}

func (s *Session) SendBinary(data []byte) error {
	return s.conn.Write(s.ctx, MessageBinary, data)
}

// Close records the close status and cancels the session context. The
// transport owns the actual wire close; repeated calls keep the first status.
func (s *Session) Close(status CloseStatus, reason string) {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeStatus = status
	s.closeReason = reason
	s.cancelCtx()
}

func (s *Session) IsClosed() bool {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	return s.closed
}

func (s *Session) CloseStatus() (CloseStatus, string) {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	return s.closeStatus, s.closeReason
}

func (s *Session) Deadline() (time.Time, bool) {
	return s.ctx.Deadline()
}

func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Session) Err() error {
	return s.ctx.Err()
}

func (s *Session) Value(key any) any {
	return s.ctx.Value(key)
}
