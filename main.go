// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"

	"github.com/stsysd/collisionviz/api"
	"github.com/stsysd/collisionviz/config"
	"github.com/stsysd/collisionviz/db"
	"github.com/stsysd/collisionviz/logging"
	"github.com/stsysd/collisionviz/store"
	"github.com/stsysd/collisionviz/table"
	"github.com/stsysd/collisionviz/viz"
)

func main() {
	// .env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	layouts, err := config.LoadLayouts(cfg.LayoutFile)
	if err != nil {
		log.Fatalf("Failed to load layouts: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid timezone: %v", err)
	}

	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	slog.SetDefault(logger)

	// os.Exit は defer を実行しないため、ログは finish で閉じる
	os.Exit(finish(run(cfg, layouts, loc, logger), logger, logCloser))
}

// finish logs err, closes the log output and returns the process exit code.
func finish(err error, logger *slog.Logger, logCloser io.Closer) int {
	code := 0
	if err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		code = 1
	}
	if cerr := logCloser.Close(); cerr != nil {
		log.Printf("Failed to close log output: %v", cerr)
	}
	return code
}

func run(cfg *config.Config, layouts config.Layouts, loc *time.Location, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3つのデータセットを並行して読み込む。失敗した可視化はメッセージを表示する
	views, err := viz.LoadAll(ctx, viz.Options{
		Loader:   table.NewLoader(&http.Client{Timeout: cfg.Data.FetchTimeout}, logger),
		Sources:  viz.Sources{Heatmap: cfg.Data.Heatmap, Clock: cfg.Data.Clock, Speed: cfg.Data.Speed},
		Layouts:  layouts,
		NewStore: recordStore(cfg.Store),
		Location: loc,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer views.Close()

	if views.Clock != nil {
		if err := views.Clock.Start(); err != nil {
			return err
		}
	}

	sessions := store.NewSessionStore(cfg.Store.SessionTTL)
	sweeper := gocron.NewScheduler(loc)
	if _, err := sweeper.Every(1).Minute().Do(func() {
		if n := sessions.Sweep(); n > 0 {
			logger.Info("expired sessions removed", slog.Int("count", n))
		}
	}); err != nil {
		return err
	}
	sweeper.StartAsync()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewServer(views, layouts, sessions, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// recordStore はヒートマップのレコードを保持するストアを選択します。
func recordStore(cfg config.StoreConfig) viz.StoreFactory {
	if cfg.Backend != "sqlite" {
		return nil
	}
	return func() (store.RecordStore, error) {
		// SQLiteストアの初期化（マイグレーション関数を渡す）
		return store.NewSQLiteStore(cfg.DataDir, db.Migrate)
	}
}
