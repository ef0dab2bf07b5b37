// Package api は衝突データ可視化のHTTPサーバー実装を提供します。
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/stsysd/collisionviz/logging"
)

// requestLogger はリクエストごとにアクセスログを出力するミドルウェアです。
// ハンドラーは logging.FromContext でリクエスト用のロガーを取得します。
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With(
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))
		r = r.WithContext(logging.WithLogger(r.Context(), logger))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.InfoContext(r.Context(), "request",
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)))
	})
}
