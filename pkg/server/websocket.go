package server

import (
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/qszone/internal/errors"
)

// Client frame types.
const (
	FrameNavigate = "navigate"
	FrameQuery    = "query"
	FrameKeys     = "keys"
	FrameZone     = "zone"
)

// Server frame types.
const (
	FrameHref  = "href"
	FrameError = "error"
)

// ClientFrame is a message sent by the client.
type ClientFrame struct {
	Type  string   `json:"type"`
	URL   string   `json:"url,omitempty"`
	Query string   `json:"query,omitempty"`
	Keys  []string `json:"keys,omitempty"`
	Zone  string   `json:"zone,omitempty"`
}

// ServerFrame is a message sent by the server.
type ServerFrame struct {
	Type    string `json:"type"`
	Href    string `json:"href,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleWebSocket upgrades the connection and runs a session on the
// calling goroutine until the client disconnects.
//
// The initial state is taken from the "url", "q" and "zone" query
// parameters. An unknown zone is rejected before the upgrade.
//
// A "keys" frame replaces the zone's override with one that nulls the
// listed keys, so the configured null or default keys stop applying until
// the next "zone" frame. GET /href differs: its "nullKeys" parameter is
// chained after the configured override and both apply.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	z, err := s.resolveZone(q.Get("zone"), nil)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", errors.New("E042").Wrap(err))
		if s.metrics != nil {
			s.metrics.RecordWebSocketError("upgrade")
		}
		return
	}
	conn.SetReadLimit(MaxFrameSize)

	sess := newSession(s, conn, chimw.GetReqID(r.Context()), q.Get("url"), q.Get("q"))
	if s.metrics != nil {
		s.metrics.SessionOpened()
		defer s.metrics.SessionClosed()
	}
	s.track(sess)
	defer s.untrack(sess)

	sess.run(r.Context(), z)
}

// decodeFrame parses one client message.
func decodeFrame(data []byte) (ClientFrame, error) {
	var f ClientFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return ClientFrame{}, errors.New("E040").Wrap(err)
	}
	switch f.Type {
	case FrameNavigate, FrameQuery, FrameKeys, FrameZone:
		return f, nil
	default:
		return ClientFrame{}, errors.New("E041").
			WithDetail("Got frame type \"" + f.Type + "\".")
	}
}

// isExpectedClose reports whether a read error is an orderly end of the
// session: a normal close from the client or our own close after Shutdown.
func isExpectedClose(err error) bool {
	var ce *websocket.CloseError
	if stderrors.As(err, &ce) {
		switch ce.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived:
			return true
		}
		return false
	}
	return stderrors.Is(err, net.ErrClosed)
}
