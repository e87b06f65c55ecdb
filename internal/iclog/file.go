package iclog

import (
	"context"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/udisondev/aoserver/internal/config"
)

// FileSink writes events as JSON lines.
type FileSink struct {
	handler slog.Handler
	closer  io.Closer
}

// NewFileSink writes to cfg.ICFile, rotated by size and age.
func NewFileSink(cfg config.LoggingConfig) *FileSink {
	lj := &lumberjack.Logger{
		Filename:   cfg.ICFile,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	s := NewWriterSink(lj)
	s.closer = lj
	return s
}

// NewWriterSink writes to w.
func NewWriterSink(w io.Writer) *FileSink {
	return &FileSink{
		handler: slog.NewJSONHandler(w, &slog.HandlerOptions{
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && a.Key == slog.LevelKey {
					return slog.Attr{}
				}
				return a
			},
		}),
	}
}

// LogIC implements Sink. The record carries the event time.
func (s *FileSink) LogIC(ctx context.Context, ev Event) error {
	r := slog.NewRecord(ev.Time, slog.LevelInfo, "ic", 0)
	r.AddAttrs(
		slog.String("speaker", ev.Speaker()),
		slog.String("ooc_name", ev.OOCName),
		slog.String("ipid", ev.IPID),
		slog.Int("area_id", ev.AreaID),
		slog.String("area", ev.AreaName),
		slog.String("message", ev.Message),
	)
	return s.handler.Handle(ctx, r)
}

// Close closes the underlying file, if any.
func (s *FileSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
