package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/stsysd/collisionviz/heatmap"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/rangecontrol"
	"github.com/stsysd/collisionviz/store"
)

// handleHeatmapSVG は車型ヒートマップのSVGを返却するハンドラーです。
func (s *Server) handleHeatmapSVG(w http.ResponseWriter, r *http.Request) {
	params, err := NewRangeParams(r)
	if err != nil {
		s.writeSVGError(w, r, "heatmap", err)
		return
	}
	if s.views.Heatmap == nil {
		s.writeSVGError(w, r, "heatmap", s.views.HeatmapErr)
		return
	}

	svg, err := s.views.Heatmap.SVG(r.Context(), params.Range)
	s.metrics.Rendered("heatmap", err)
	if err != nil {
		s.writeSVGError(w, r, "heatmap", err)
		return
	}
	writeSVG(w, http.StatusOK, svg)
}

// handleLegendSVG は色の凡例のSVGを返却するハンドラーです。
func (s *Server) handleLegendSVG(w http.ResponseWriter, r *http.Request) {
	if s.views.Heatmap == nil {
		s.writeSVGError(w, r, "heatmap", s.views.HeatmapErr)
		return
	}
	writeSVG(w, http.StatusOK, s.views.Heatmap.LegendSVG())
}

// handleRangeSVG は年範囲スライダーのSVGを返却するハンドラーです。
func (s *Server) handleRangeSVG(w http.ResponseWriter, r *http.Request) {
	params, err := NewRangeParams(r)
	if err != nil {
		s.writeSVGError(w, r, "heatmap", err)
		return
	}
	if s.views.Heatmap == nil {
		s.writeSVGError(w, r, "heatmap", s.views.HeatmapErr)
		return
	}
	writeSVG(w, http.StatusOK, s.views.Heatmap.RangeSVG(params.Range))
}

// handleGetFrame はフレームをJSONで返却するハンドラーです。
func (s *Server) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	params, err := NewRangeParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	if s.views.Heatmap == nil {
		s.writeJSONError(w, r, s.views.HeatmapErr)
		return
	}

	v := s.views.Heatmap
	f, err := v.Frame(r.Context(), v.Resolve(params.Range), false)
	s.metrics.Rendered("heatmap", err)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	render.JSON(w, r, f)
}

// SessionResponse describes a viewer session. Diff is set when the session
// was just created and moves an empty view to the initial frame.
type SessionResponse struct {
	SessionID uuid.UUID          `json:"session_id"`
	State     rangecontrol.State `json:"state"`
	Bounds    [2]int             `json:"bounds"`
	Frame     *heatmap.Frame     `json:"frame,omitempty"`
	Diff      *heatmap.FrameDiff `json:"diff,omitempty"`
}

// BrushResponse is the label update for a live brush.
type BrushResponse struct {
	State rangecontrol.State `json:"state"`
}

// CommitResponse carries the committed range and the diff to apply.
type CommitResponse struct {
	State  rangecontrol.State  `json:"state"`
	Commit rangecontrol.Commit `json:"commit"`
	Diff   heatmap.FrameDiff   `json:"diff"`
}

// startSession はセッションを作成し、初期フレームへの差分を返します。
func (s *Server) startSession(ctx context.Context) (SessionResponse, error) {
	if s.views.Heatmap == nil {
		return SessionResponse{}, s.views.HeatmapErr
	}
	v := s.views.Heatmap
	initial := v.Control().Initial()

	f, err := v.Frame(ctx, initial.Range, false)
	s.metrics.Rendered("heatmap", err)
	if err != nil {
		return SessionResponse{}, err
	}
	diff := heatmap.DiffFrames(nil, nil, f)

	sess := s.sessions.Create(initial)
	sess, err = s.sessions.Update(sess.ID, func(x *store.Session) error {
		x.CellKeys = f.CellKeys()
		x.YearKeys = f.YearLabelKeys()
		return nil
	})
	if err != nil {
		return SessionResponse{}, err
	}

	lo, hi := v.Control().Bounds()
	return SessionResponse{
		SessionID: sess.ID,
		State:     sess.Range,
		Bounds:    [2]int{lo, hi},
		Diff:      &diff,
	}, nil
}

// brush は描画中のブラシを反映します。確定済みの範囲は変わりません。
func (s *Server) brush(id uuid.UUID, x0, x1 float64) (BrushResponse, error) {
	if s.views.Heatmap == nil {
		return BrushResponse{}, s.views.HeatmapErr
	}
	c := s.views.Heatmap.Control()
	sess, err := s.sessions.Update(id, func(x *store.Session) error {
		x.Range = c.Brush(x.Range, x0, x1)
		return nil
	})
	if err != nil {
		return BrushResponse{}, err
	}
	return BrushResponse{State: sess.Range}, nil
}

// commit applies a range transition and diffs the new frame against the
// keys the session last rendered.
func (s *Server) commit(ctx context.Context, id uuid.UUID, transition func(*rangecontrol.Control, rangecontrol.State) (rangecontrol.State, rangecontrol.Commit), source rangecontrol.Source) (CommitResponse, error) {
	if s.views.Heatmap == nil {
		return CommitResponse{}, s.views.HeatmapErr
	}
	v := s.views.Heatmap

	var resp CommitResponse
	_, err := s.sessions.Update(id, func(x *store.Session) error {
		state, commit := transition(v.Control(), x.Range)

		f, err := v.Frame(ctx, commit.Range, true)
		s.metrics.Rendered("heatmap", err)
		if err != nil {
			return err
		}
		resp = CommitResponse{
			State:  state,
			Commit: commit,
			Diff:   heatmap.DiffFrames(x.CellKeys, x.YearKeys, f),
		}
		x.Range = state
		x.CellKeys = f.CellKeys()
		x.YearKeys = f.YearLabelKeys()
		return nil
	})
	if err != nil {
		return CommitResponse{}, err
	}
	s.metrics.Committed(string(source))
	return resp, nil
}

// handleCreateSession はビューアセッションを作成するハンドラーです。
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.startSession(r.Context())
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// handleGetSession はセッションの状態と現在のフレームを返却するハンドラーです。
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewSessionParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	if s.views.Heatmap == nil {
		s.writeJSONError(w, r, s.views.HeatmapErr)
		return
	}

	sess, err := s.sessions.Get(params.SessionID)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	v := s.views.Heatmap
	f, err := v.Frame(r.Context(), sess.Range.Range, false)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}

	lo, hi := v.Control().Bounds()
	render.JSON(w, r, SessionResponse{
		SessionID: sess.ID,
		State:     sess.Range,
		Bounds:    [2]int{lo, hi},
		Frame:     &f,
	})
}

// handleDeleteSession はセッションを削除するハンドラーです。
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	params, err := NewSessionParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	if err := s.sessions.Delete(params.SessionID); err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBrush はブラシ操作中のラベル更新を行うハンドラーです。
func (s *Server) handleBrush(w http.ResponseWriter, r *http.Request) {
	params, err := NewSessionParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	var body BrushRequest
	if err := bind(r, &body); err != nil {
		s.writeJSONError(w, r, err)
		return
	}

	resp, err := s.brush(params.SessionID, *body.X0, *body.X1)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// handleCommit はブラシの確定を行うハンドラーです。
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	params, err := NewSessionParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	var body CommitRequest
	if err := bind(r, &body); err != nil {
		s.writeJSONError(w, r, err)
		return
	}

	resp, err := s.commit(r.Context(), params.SessionID, func(c *rangecontrol.Control, st rangecontrol.State) (rangecontrol.State, rangecontrol.Commit) {
		return c.Commit(st, *body.X0, *body.X1, body.Source)
	}, body.Source)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// handleSelectAll は全期間を選択するハンドラーです。
func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	s.handleProgramCommit(w, r, (*rangecontrol.Control).SelectAll)
}

// handleReset は既定の範囲に戻すハンドラーです。
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.handleProgramCommit(w, r, (*rangecontrol.Control).Reset)
}

func (s *Server) handleProgramCommit(w http.ResponseWriter, r *http.Request, transition func(*rangecontrol.Control, rangecontrol.State) (rangecontrol.State, rangecontrol.Commit)) {
	params, err := NewSessionParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	resp, err := s.commit(r.Context(), params.SessionID, transition, rangecontrol.SourceProgram)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// bind decodes and validates a JSON body. Decode failures are reported as
// validation errors.
func bind(r *http.Request, v render.Binder) error {
	if err := render.Bind(r, v); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			return err
		}
		return model.NewValidationError("invalid request body")
	}
	return nil
}
