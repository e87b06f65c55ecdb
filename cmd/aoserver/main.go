package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/udisondev/aoserver/internal/config"
	"github.com/udisondev/aoserver/internal/courtroom"
	"github.com/udisondev/aoserver/internal/db"
	"github.com/udisondev/aoserver/internal/iclog"
	"github.com/udisondev/aoserver/internal/textproc"
)

const ConfigPath = "config/aoserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("AOSERVER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var out io.Writer = os.Stdout
	if cfg.Logging.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.Logging.File,
			MaxSize:    cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAge:     cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		}
		defer lj.Close()
		out = io.MultiWriter(os.Stdout, lj)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("aoserver starting",
		"log_level", cfg.LogLevel,
		"bind", cfg.BindAddress,
		"port", cfg.Port,
		"areas", len(cfg.Areas),
		"characters", len(cfg.Characters))

	var sinks iclog.MultiSink
	if cfg.Logging.ICFile != "" {
		fileSink := iclog.NewFileSink(cfg.Logging)
		defer fileSink.Close()
		sinks = append(sinks, fileSink)
	}

	if cfg.Database.Enabled {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		sinks = append(sinks, db.NewICLogRepository(database.Pool()))
	}

	pipeline, err := textproc.NewPipeline(textproc.Config{
		Filters:       cfg.IC.FilterList,
		GimpList:      cfg.IC.GimpList,
		MedievalWords: cfg.IC.MedievalWords,
	}, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
	if err != nil {
		return fmt.Errorf("building text pipeline: %w", err)
	}

	areas := courtroom.BuildAreas(cfg.Areas, cfg.IC.MaxStatements)
	clientManager := courtroom.NewClientManager(cfg.ServerName, areas)
	speak := courtroom.NewSpeakHandler(cfg.IC, cfg.Characters, clientManager, clientManager, sinks, pipeline)
	handler := courtroom.NewHandler(clientManager, speak, cfg.Characters)
	server := courtroom.NewServer(cfg, clientManager, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting courtroom server", "port", cfg.Port)
		if err := server.Run(gctx); err != nil {
			return fmt.Errorf("courtroom server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
