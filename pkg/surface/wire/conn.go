package wire

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	werrors "github.com/weftui/weft/internal/errors"
	"github.com/weftui/weft/pkg/vdom"
)

// writeTimeout bounds one frame write.
const writeTimeout = 10 * time.Second

// maxEventFrameBytes bounds inbound event frames.
const maxEventFrameBytes = 64 * 1024

// RenderFlusher drains pending render work synchronously. Satisfied by
// *weft.Driver.
type RenderFlusher interface {
	Flush() error
}

// Session pumps one websocket connection: inbound event frames dispatch
// to the handlers registered on the wire surface, then the driver is
// flushed and the resulting patches go out as a single frame. Events are
// processed strictly in arrival order on the session's goroutine, which
// doubles as the render driver's goroutine.
type Session struct {
	id     string
	conn   *websocket.Conn
	surf   *Surface
	driver RenderFlusher
	logger *slog.Logger
	seq    uint64
}

// NewSession wraps an upgraded websocket connection.
func NewSession(conn *websocket.Conn, surf *Surface, driver RenderFlusher, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		conn:   conn,
		surf:   surf,
		driver: driver,
		logger: logger.With("session", id),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// SendPending flushes the surface's recorded patches as one frame.
// A pass that produced no patches sends nothing.
func (s *Session) SendPending() error {
	patches := s.surf.TakePatches()
	if len(patches) == 0 {
		return nil
	}

	s.seq++
	frame := PatchFrame{Type: "patches", Seq: s.seq, Patches: patches}

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(frame); err != nil {
		return werrors.Newf(werrors.CategoryProtocol, "write patch frame: %v", err).Wrap(err)
	}

	s.logger.Debug("sent patch frame", "seq", s.seq, "patches", len(patches))
	return nil
}

// Serve reads event frames until the connection closes or ctx is done.
// Each event runs its handler, flushes the driver, and sends the
// resulting patches before the next event is read.
func (s *Session) Serve(ctx context.Context) error {
	s.conn.SetReadLimit(maxEventFrameBytes)

	if err := s.SendPending(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var frame EventFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return werrors.New("W040").Wrap(err)
		}
		if frame.Type != "event" {
			s.logger.Warn("ignoring unknown frame type", "type", frame.Type)
			continue
		}

		s.dispatch(frame)

		if err := s.driver.Flush(); err != nil {
			return err
		}
		if err := s.SendPending(); err != nil {
			return err
		}
	}
}

func (s *Session) dispatch(frame EventFrame) {
	handler := s.surf.Handler(frame.ID, frame.Event)
	if handler == nil {
		// W041: the node may have been unmounted between the client's
		// event and our receipt. Expected under batching; drop it.
		s.logger.Debug("no handler for event", "id", frame.ID, "event", frame.Event)
		return
	}

	handler(vdom.Event{
		Type:    frame.Event,
		Value:   frame.Value,
		Checked: frame.Checked,
		Data:    frame.Data,
	})
}
