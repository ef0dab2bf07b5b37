package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"

	"github.com/stsysd/collisionviz/config"
	"github.com/stsysd/collisionviz/store"
	"github.com/stsysd/collisionviz/viz"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router   chi.Router
	views    *viz.Views
	layouts  config.Layouts
	sessions *store.SessionStore
	metrics  *Metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader
	started  time.Time
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(views *viz.Views, layouts config.Layouts, sessions *store.SessionStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:   chi.NewRouter(),
		views:    views,
		layouts:  layouts,
		sessions: sessions,
		metrics:  NewMetrics(sessions.Len),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		started: time.Now(),
	}
	s.metrics.SetAvailable("heatmap", views.HeatmapErr)
	s.metrics.SetAvailable("clock", views.ClockErr)
	s.metrics.SetAvailable("speed", views.SpeedErr)
	s.routes()
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.handleHealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// SVG endpoints
	r.Get("/heatmap.svg", s.handleHeatmapSVG)
	r.Get("/heatmap/legend.svg", s.handleLegendSVG)
	r.Get("/heatmap/range.svg", s.handleRangeSVG)
	r.Get("/clock.svg", s.handleClockSVG)
	r.Get("/speed.svg", s.handleSpeedSVG)

	r.Route("/api/v0", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/heatmap/frame", s.handleGetFrame)
		r.Route("/heatmap/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{session_id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/brush", s.handleBrush)
				r.Post("/commit", s.handleCommit)
				r.Post("/select-all", s.handleSelectAll)
				r.Post("/reset", s.handleReset)
			})
		})

		r.Get("/clock", s.handleGetClock)
		r.Get("/speed", s.handleGetSpeed)
		r.Get("/speed/car", s.handleGetCar)
	})

	r.Get("/ws/heatmap", s.handleHeatmapWS)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HealthResponse reports which charts loaded.
type HealthResponse struct {
	Status string            `json:"status"`
	Charts map[string]string `json:"charts"`
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
// 一部の可視化が読み込めなくてもサーバー自体は正常とみなします。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Charts: map[string]string{}}
	for name, err := range map[string]error{
		"heatmap": s.views.HeatmapErr,
		"clock":   s.views.ClockErr,
		"speed":   s.views.SpeedErr,
	} {
		if err != nil {
			resp.Charts[name] = "unavailable"
		} else {
			resp.Charts[name] = "ok"
		}
	}
	render.JSON(w, r, resp)
}
