package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/config"
	"github.com/user/clip-trimmer/db"
	"github.com/user/clip-trimmer/ffmpeg"
	"github.com/user/clip-trimmer/logger"
)

// app bundles what every command needs: configuration, logging, the render
// history and the render pipeline.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *sql.DB
	encoder    *ffmpeg.Encoder
	dispatcher *clip.Dispatcher
}

// newApp loads configuration, applies the persistent flags on top and wires
// the render pipeline. console sends log output to stderr as well as the log
// file; the TUI owns the terminal so it passes false.
func newApp(cmd *cobra.Command, console bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	logCfg := logger.DefaultConfig(cfg.LogLevel, cfg.LogFile)
	logCfg.Console = console
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	a := &app{cfg: cfg, logger: log}

	a.encoder = ffmpeg.NewEncoder(cfg.FfmpegPath, cfg.FfprobePath, log.Named("ffmpeg"))
	a.dispatcher = clip.NewDispatcher(clip.NewRenderer(a.encoder, log.Named("render")), log.Named("dispatch"))

	// History is best effort: a broken database must not stop a render.
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Warn("render history disabled", zap.String("path", cfg.DBPath), zap.Error(err))
	} else {
		a.db = database
		a.dispatcher.SetRecorder(db.NewHistory(database))
	}

	return a, nil
}

// applyFlags copies explicitly set persistent flags into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
}

// Close flushes the logger and closes the history database.
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
	_ = a.logger.Sync()
}
