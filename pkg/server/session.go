package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/qszone/internal/errors"
	"github.com/vango-dev/qszone/pkg/link"
	"github.com/vango-dev/qszone/pkg/location"
	"github.com/vango-dev/qszone/pkg/reactive"
	"github.com/vango-dev/qszone/pkg/zone"
)

// WriteTimeout bounds a single frame write.
const WriteTimeout = 5 * time.Second

// session is one live connection. Everything except send runs on the
// connection's read goroutine.
type session struct {
	id     string
	server *Server
	conn   *websocket.Conn
	logger *slog.Logger

	loc   *location.Service
	query *reactive.Signal[string]
	keys  *reactive.Signal[[]string]

	zone      *zone.Zone
	stopWatch func()
	link      *link.Link

	writeMu sync.Mutex
	closed  bool
}

func newSession(s *Server, conn *websocket.Conn, id, rawURL, rawQuery string) *session {
	return &session{
		id:     id,
		server: s,
		conn:   conn,
		logger: s.logger.With("session", id),
		loc:    location.NewService(location.ParseURL(rawURL)),
		query:  reactive.NewSignal(rawQuery),
		keys:   reactive.NewSignal[[]string](nil),
	}
}

// attach places the session's link in z, replacing any previous link and
// key watch. A nil z becomes an unnamed pass-through zone so that keys
// frames still have somewhere to install their override. The new link
// sends its first href immediately.
func (s *session) attach(z *zone.Zone) {
	if z == nil {
		z = zone.New("")
	}
	if s.link != nil {
		s.link.Close()
	}
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.zone = z

	opts := []link.Option{
		link.WithZone(z),
		link.WithLogger(s.logger),
		link.WithAttrSetter(func(name, value string) {
			s.send(ServerFrame{Type: FrameHref, Href: value})
		}),
	}
	if m := s.server.metrics; m != nil {
		opts = append(opts, link.WithObserver(m.ObserveHref))
	}
	s.link = link.New(s.loc, s.query, opts...)
}

// run attaches the session to z and reads frames until the connection ends.
func (s *session) run(ctx context.Context, z *zone.Zone) {
	s.attach(z)
	s.logger.Info("session started", "zone", s.zone.Name(), "href", s.link.Href())
	defer func() {
		s.release()
		s.close()
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !isExpectedClose(err) {
				s.logger.Warn("websocket read error", "error", err)
				if m := s.server.metrics; m != nil {
					m.RecordWebSocketError("read")
				}
			}
			return
		}

		frame, err := decodeFrame(data)
		if err != nil {
			s.reject(err)
			continue
		}
		s.handle(ctx, frame)
	}
}

func (s *session) handle(ctx context.Context, f ClientFrame) {
	_, span := s.server.tracer.Start(ctx, "qszone.frame "+f.Type)
	defer span.End()
	span.SetAttributes(attribute.String("qszone.session", s.id))

	switch f.Type {
	case FrameNavigate:
		s.loc.NavigateURL(f.URL)
	case FrameQuery:
		s.query.Set(f.Query)
	case FrameKeys:
		// Last writer wins: the watch replaces the configured override.
		s.keys.Set(f.Keys)
		if s.stopWatch == nil {
			s.stopWatch = zone.WatchKeys(s.zone, s.keys)
		}
	case FrameZone:
		z, err := s.server.resolveZone(f.Zone, nil)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.reject(err)
			return
		}
		s.attach(z)
		s.keys.Set(nil)
	}
	s.logger.Debug("frame handled", "type", f.Type, "href", s.link.Href())
}

// reject reports a bad frame to the client and keeps the session open.
func (s *session) reject(err error) {
	e := errors.FromError(err, "E040")
	s.logger.Warn("frame rejected", "code", e.Code, "error", e.Error())
	if m := s.server.metrics; m != nil {
		m.RecordWebSocketError("frame")
	}
	s.send(ServerFrame{Type: FrameError, Code: e.Code, Message: e.Message})
}

func (s *session) send(f ServerFrame) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.closed {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	if err := s.conn.WriteJSON(f); err != nil {
		s.logger.Warn("websocket write error", "error", err)
		if m := s.server.metrics; m != nil {
			m.RecordWebSocketError("write")
		}
	}
}

// close tears the session down. It is safe to call from Shutdown while the
// read loop is running.
func (s *session) close() {
	s.writeMu.Lock()
	if s.closed {
		s.writeMu.Unlock()
		return
	}
	s.closed = true
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.writeMu.Unlock()

	s.conn.Close()
	s.logger.Info("session closed")
}

// release drops the session's subscriptions. Only the read goroutine
// calls it.
func (s *session) release() {
	s.link.Close()
	if s.stopWatch != nil {
		s.stopWatch()
	}
}
