package api

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/stsysd/collisionviz/clock"
	"github.com/stsysd/collisionviz/speedsign"
)

// handleClockSVG は24時間時計のSVGを返却するハンドラーです。
func (s *Server) handleClockSVG(w http.ResponseWriter, r *http.Request) {
	params, err := NewClockParams(r)
	if err != nil {
		s.writeSVGError(w, r, "clock", err)
		return
	}
	if s.views.Clock == nil {
		s.writeSVGError(w, r, "clock", s.views.ClockErr)
		return
	}
	s.metrics.Rendered("clock", nil)
	writeSVG(w, http.StatusOK, s.views.Clock.SVG(params.Pin))
}

// ClockResponse is the laid out clock plus the current hand.
type ClockResponse struct {
	Chart   clock.Chart `json:"chart"`
	Hand    clock.Hand  `json:"hand"`
	Summary string      `json:"summary"`
	Pinned  *int        `json:"pinned,omitempty"`
}

// handleGetClock は時計のデータをJSONで返却するハンドラーです。
func (s *Server) handleGetClock(w http.ResponseWriter, r *http.Request) {
	params, err := NewClockParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	if s.views.Clock == nil {
		s.writeJSONError(w, r, s.views.ClockErr)
		return
	}

	c := s.views.Clock.Chart()
	resp := ClockResponse{
		Chart:   c,
		Hand:    s.views.Clock.Hand(),
		Summary: c.Summary(),
	}
	if i, ok := params.Pin.Segment(); ok {
		resp.Pinned = &i
	}
	render.JSON(w, r, resp)
}

// handleSpeedSVG は速度標識チャートのSVGを返却するハンドラーです。
func (s *Server) handleSpeedSVG(w http.ResponseWriter, r *http.Request) {
	params, err := NewSpeedParams(r)
	if err != nil {
		s.writeSVGError(w, r, "speed", err)
		return
	}
	if s.views.Speed == nil {
		s.writeSVGError(w, r, "speed", s.views.SpeedErr)
		return
	}

	svg, err := s.views.Speed.SVG(params.Year)
	s.metrics.Rendered("speed", err)
	if err != nil {
		s.writeSVGError(w, r, "speed", err)
		return
	}
	writeSVG(w, http.StatusOK, svg)
}

// handleGetSpeed は速度標識チャートのデータをJSONで返却するハンドラーです。
func (s *Server) handleGetSpeed(w http.ResponseWriter, r *http.Request) {
	params, err := NewSpeedParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	if s.views.Speed == nil {
		s.writeJSONError(w, r, s.views.SpeedErr)
		return
	}

	scene, err := s.views.Speed.Scene(params.Year)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	render.JSON(w, r, scene)
}

// CarResponse is the car position and its outline at that position.
type CarResponse struct {
	speedsign.CarPosition
	Path string `json:"path"`
}

// handleGetCar は車のアニメーション位置を返却するハンドラーです。
func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	params, err := NewCarParams(r)
	if err != nil {
		s.writeJSONError(w, r, err)
		return
	}
	if s.views.Speed == nil {
		s.writeJSONError(w, r, s.views.SpeedErr)
		return
	}

	elapsed := params.Elapsed
	if !params.Given {
		elapsed = time.Since(s.started)
	}
	l := s.views.Speed.Layout()
	pos := s.views.Speed.Car(elapsed)
	render.JSON(w, r, CarResponse{
		CarPosition: pos,
		Path:        speedsign.CarPath(pos.X, pos.Y, l.CarWidth, l.CarHeight),
	})
}
