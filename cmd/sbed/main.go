// Command sbed serves the codec and frame archive over HTTP and WebSocket.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/uhyunpark/sbewire/params"
	"github.com/uhyunpark/sbewire/pkg/api"
	"github.com/uhyunpark/sbewire/pkg/storage"
	"github.com/uhyunpark/sbewire/pkg/util"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file (default ./.env)")
	memory := flag.Bool("memory", false, "keep archived frames in memory instead of DATA_DIR")
	noFrameLog := flag.Bool("no-frame-log", false, "do not append accepted frames to FRAME_LOG_FILE")
	flag.Parse()

	cfg, err := params.LoadFromEnv(*envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := util.NewLoggerWithFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()
	sugar.Infow("logger_initialized", "log_file", cfg.Log.File, "level", cfg.Log.Level)

	var archive storage.Archive
	if *memory || cfg.Storage.DataDir == "" {
		archive = storage.NewInMemoryArchive()
		sugar.Infow("archive_opened", "kind", "memory")
	} else {
		pa, err := storage.NewPebbleArchive(cfg.Storage.DataDir)
		if err != nil {
			sugar.Fatalw("archive_open_failed", "dir", cfg.Storage.DataDir, "err", err)
		}
		archive = pa
		sugar.Infow("archive_opened", "kind", "pebble", "dir", cfg.Storage.DataDir)
	}
	defer archive.Close()

	var frames storage.FrameLog = storage.NewNopLog()
	if !*noFrameLog && cfg.Storage.FrameLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.FrameLogFile), 0o755); err != nil {
			sugar.Fatalw("frame_log_dir_failed", "err", err)
		}
		fl, err := storage.NewFileLog(cfg.Storage.FrameLogFile)
		if err != nil {
			// keep serving without the log copy
			sugar.Warnw("frame_log_open_failed", "path", cfg.Storage.FrameLogFile, "err", err)
		} else {
			frames = fl
			sugar.Infow("frame_log_opened", "path", cfg.Storage.FrameLogFile)
		}
	}
	defer frames.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(cfg.API, archive, frames, logger)
	if err := server.Start(ctx, cfg.API.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Errorw("api_server_failed", "err", err)
		return
	}
	sugar.Infow("api_server_stopped")
}
