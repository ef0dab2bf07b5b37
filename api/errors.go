package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/stsysd/collisionviz/canvas"
	"github.com/stsysd/collisionviz/heatmap"
	"github.com/stsysd/collisionviz/logging"
	"github.com/stsysd/collisionviz/model"
	"github.com/stsysd/collisionviz/speedsign"
)

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// Render implements render.Renderer.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.Code)
	return nil
}

// statusFor maps an error to its HTTP status and the message safe to show.
func statusFor(err error) (int, string) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound, "Session not found"
	case errors.Is(err, model.ErrResourceUnavailable):
		return http.StatusServiceUnavailable, model.UserMessage(err)
	case errors.Is(err, model.ErrSchemaMismatch), errors.Is(err, model.ErrEmptyDataset):
		return http.StatusUnprocessableEntity, model.UserMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func (s *Server) writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed", "error", err)
	}
	render.Render(w, r, &ErrorResponse{Error: msg, Code: code})
}

// writeSVG writes an SVG document.
func writeSVG(w http.ResponseWriter, code int, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)
	w.Write([]byte(svg))
}

// writeSVGError renders the chart's placeholder with the user-visible
// message in place of the visualization.
func (s *Server) writeSVGError(w http.ResponseWriter, r *http.Request, chart string, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "render failed", "chart", chart, "error", err)
		msg = model.UserMessage(err)
	}

	var svg string
	switch chart {
	case "heatmap":
		svg = heatmap.RenderMessageSVG(s.layouts.Heatmap, msg)
	case "clock":
		svg = canvas.Message(s.layouts.Clock.Width, s.layouts.Clock.Height, msg)
	default:
		svg = speedsign.RenderMessageSVG(s.layouts.Speed, msg)
	}
	writeSVG(w, code, svg)
}
