package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/stsysd/collisionviz/logging"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/rangecontrol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024
)

// Message types carried over the heatmap websocket.
const (
	MessageSession   = "session"
	MessageBrush     = "brush"
	MessageCommit    = "commit"
	MessageSelectAll = "select-all"
	MessageReset     = "reset"
	MessageError     = "error"
)

// ClientMessage is a request from the browser.
type ClientMessage struct {
	Type   string              `json:"type"`
	X0     *float64            `json:"x0,omitempty"`
	X1     *float64            `json:"x1,omitempty"`
	Source rangecontrol.Source `json:"source,omitempty"`
}

// ServerMessage is a reply. Exactly one payload field is set, matching Type.
type ServerMessage struct {
	Type    string           `json:"type"`
	Session *SessionResponse `json:"session,omitempty"`
	Brush   *BrushResponse   `json:"brush,omitempty"`
	Commit  *CommitResponse  `json:"commit,omitempty"`
	Error   *ErrorResponse   `json:"error,omitempty"`
}

// handleHeatmapWS はヒートマップ操作用のWebSocketを扱うハンドラーです。
// 接続ごとに新しいセッションを作成し、切断時に削除します。
func (s *Server) handleHeatmapWS(w http.ResponseWriter, r *http.Request) {
	if s.views.Heatmap == nil {
		s.writeJSONError(w, r, s.views.HeatmapErr)
		return
	}

	logger := logging.FromContext(r.Context()).With(slog.String("component", "websocket"))
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade がエラーレスポンスを書き込み済み
		logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	start, err := s.startSession(ctx)
	if err != nil {
		sendError(logger, conn, err)
		return
	}
	id := start.SessionID
	defer s.sessions.Delete(id)
	logger = logger.With(slog.String("session_id", id.String()))
	logger.InfoContext(ctx, "websocket connected")

	if err := send(conn, ServerMessage{Type: MessageSession, Session: &start}); err != nil {
		return
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go s.pingLoop(ctx, conn)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WarnContext(ctx, "websocket read failed", slog.Any("error", err))
			}
			break
		}

		reply, err := s.handleMessage(ctx, id, msg)
		if err != nil {
			if err := sendError(logger, conn, err); err != nil {
				break
			}
			continue
		}
		if err := send(conn, reply); err != nil {
			break
		}
	}
	logger.InfoContext(ctx, "websocket disconnected")
}

// handleMessage dispatches one client message to the session transitions.
func (s *Server) handleMessage(ctx context.Context, id uuid.UUID, msg ClientMessage) (ServerMessage, error) {
	switch msg.Type {
	case MessageBrush:
		if msg.X0 == nil || msg.X1 == nil {
			return ServerMessage{}, model.NewValidationError("x0 and x1 are required")
		}
		resp, err := s.brush(id, *msg.X0, *msg.X1)
		if err != nil {
			return ServerMessage{}, err
		}
		return ServerMessage{Type: MessageBrush, Brush: &resp}, nil

	case MessageCommit:
		req := CommitRequest{X0: msg.X0, X1: msg.X1, Source: msg.Source}
		if err := req.Bind(nil); err != nil {
			return ServerMessage{}, err
		}
		resp, err := s.commit(ctx, id, func(c *rangecontrol.Control, st rangecontrol.State) (rangecontrol.State, rangecontrol.Commit) {
			return c.Commit(st, *req.X0, *req.X1, req.Source)
		}, req.Source)
		if err != nil {
			return ServerMessage{}, err
		}
		return ServerMessage{Type: MessageCommit, Commit: &resp}, nil

	case MessageSelectAll, MessageReset:
		transition := (*rangecontrol.Control).SelectAll
		if msg.Type == MessageReset {
			transition = (*rangecontrol.Control).Reset
		}
		resp, err := s.commit(ctx, id, transition, rangecontrol.SourceProgram)
		if err != nil {
			return ServerMessage{}, err
		}
		return ServerMessage{Type: MessageCommit, Commit: &resp}, nil

	default:
		return ServerMessage{}, model.NewValidationError("unknown message type " + msg.Type)
	}
}

func (s *Server) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func sendError(logger *slog.Logger, conn *websocket.Conn, err error) error {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("websocket request failed", "error", err)
	}
	return send(conn, ServerMessage{Type: MessageError, Error: &ErrorResponse{Error: msg, Code: code}})
}

func send(conn *websocket.Conn, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
