package wsendpoint

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

// Server is the transport layer: it upgrades HTTP requests, constructs a
// session and dispatch table per connection, and feeds wire events into the
// table. Endpoints register as constructor functions so every connection gets
// its own instance.
type Server struct {
	factory  *EndpointFactory
	routes   []*route
	origins  []string
	policy   *Policy
	executor Executor
	logger   *logrus.Logger
}

type route struct {
	pattern *Pattern
	create  func() any
}

var _ http.Handler = &Server{}

func NewServer() *Server {
	return &Server{
		factory:  NewEndpointFactory(),
		policy:   DefaultPolicy(),
		executor: GoExecutor{},
		logger:   logrus.New(),
	}
}

func (s *Server) SetLogger(logger *logrus.Logger) {
	s.logger = logger
}

func (s *Server) SetOrigins(origins []string) {
	s.origins = origins
}

func (s *Server) SetPolicy(policy *Policy) {
	s.policy = policy
}

func (s *Server) SetExecutor(executor Executor) {
	s.executor = executor
}

func (s *Server) Factory() *EndpointFactory {
	return s.factory
}

// Register binds an endpoint constructor to a path pattern. The endpoint type
// is introspected eagerly so a broken handler surface fails at registration,
// not on the first connection.
func (s *Server) Register(pathPattern string, create func() any) error {
	pattern, err := NewPattern(pathPattern)
	if err != nil {
		return &InvalidPatternError{Pattern: pathPattern, Reason: err}
	}

	if _, err := s.factory.GetMetadata(reflect.TypeOf(create())); err != nil {
		return err
	}

	s.routes = append(s.routes, &route{pattern: pattern, create: create})
	return nil
}

func (s *Server) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	if !s.isWebsocketUpgradeRequest(req) {
		res.WriteHeader(http.StatusBadRequest)
		if _, err := res.Write([]byte("Bad Request. Expected websocket upgrade request")); err != nil {
			s.logger.WithError(err).Error("failed to write error response")
		}
		return
	}

	matched, params := s.findRoute(req.URL.Path)
	if matched == nil {
		res.WriteHeader(http.StatusNotFound)
		return
	}

	s.handleWebsocketConnection(res, req, matched, params)
}

func (s *Server) findRoute(path string) (*route, map[string]string) {
	for _, r := range s.routes {
		if params, ok := r.pattern.Match(path); ok {
			return r, params
		}
	}
	return nil, nil
}

func (s *Server) isWebsocketUpgradeRequest(req *http.Request) bool {
	return req.Header.Get("Upgrade") == "websocket"
}

func (s *Server) handleWebsocketConnection(res http.ResponseWriter, req *http.Request, matched *route, params map[string]string) {
	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	conn, err := websocket.Accept(res, req, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to accept websocket connection")
		return
	}

	queryParams := make(map[string]string)
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			queryParams[key] = values[0]
		}
	}

	info := &ConnectionInfo{
		RemoteAddr: req.RemoteAddr,
		Path:       req.URL.Path,
		PathParams: params,
		Headers:    req.Header,
		Query:      queryParams,
	}

	connection := newWSConnection(conn)
	session := NewSession(info, connection)
	endpoint := matched.create()

	table, err := s.factory.CreateDispatchTable(endpoint, session, s.policy, s.executor)
	if err != nil {
		s.logger.WithError(err).WithField("path", req.URL.Path).Error("failed to create dispatch table")
		if closeErr := conn.Close(StatusInternalError, "endpoint setup failed"); closeErr != nil {
			s.logger.WithError(closeErr).Error("failed to close connection after setup error")
		}
		return
	}

	s.serveSession(session, connection, table)

	status, reason := session.CloseStatus()
	table.HandleClose(status, reason)
	table.Release()
	if err := connection.Close(status, reason); err != nil {
		s.logger.WithError(err).Debug("failed to close websocket connection")
	}
}

// serveSession runs the read loop, feeding fragments into the dispatch
// table until the connection ends. Inbound ping and pong control frames are
// answered inside coder/websocket and do not reach the table here.
func (s *Server) serveSession(session *Session, conn SessionConnection, table *DispatchTable) {
	table.HandleOpen()

	bufSize := table.Policy().InputBufferSize
	if bufSize <= 0 {
		bufSize = DefaultInputBufferSize
	}
	buf := make([]byte, bufSize)
	for {
		messageType, reader, err := conn.NextMessage(session)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				session.Close(status, "")
				return
			}
			if errors.Is(err, context.Canceled) {
				session.Close(StatusNormalClosure, "")
				return
			}
			table.HandleError(err)
			session.Close(StatusAbnormalClosure, "")
			return
		}

		if err := s.readMessage(messageType, reader, table, buf); err != nil {
			table.HandleError(err)
			if errors.Is(err, ErrMessageTooLarge) {
				session.Close(StatusMessageTooBig, "message too big")
			} else {
				session.Close(StatusInternalError, "")
			}
			return
		}
	}
}

func (s *Server) readMessage(messageType MessageType, reader io.Reader, table *DispatchTable, buf []byte) error {
	for {
		n, err := reader.Read(buf)
		fin := errors.Is(err, io.EOF)
		if n > 0 || fin {
			payload := buf[:n]
			table.HandleFrame(Frame{Type: messageType, Data: payload, Fin: fin})
			var sinkErr error
			if messageType == MessageText {
				sinkErr = table.HandleText(payload, fin)
			} else {
				sinkErr = table.HandleBinary(payload, fin)
			}
			if sinkErr != nil {
				return sinkErr
			}
		}
		if fin {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
