package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// hlogBridge routes Hertz framework logging into slog. Hertz's notice and
// trace levels have no slog counterpart; notice maps to info, trace to
// debug, and fatal to error since slog never exits the process.
type hlogBridge struct {
	logger *slog.Logger
}

// NewHertzSlogAdapter wraps logger as an hlog.FullLogger.
func NewHertzSlogAdapter(logger *slog.Logger) hlog.FullLogger {
	return &hlogBridge{logger: logger}
}

func (b *hlogBridge) Trace(v ...interface{})  { b.logger.Debug(fmt.Sprint(v...)) }
func (b *hlogBridge) Debug(v ...interface{})  { b.logger.Debug(fmt.Sprint(v...)) }
func (b *hlogBridge) Info(v ...interface{})   { b.logger.Info(fmt.Sprint(v...)) }
func (b *hlogBridge) Notice(v ...interface{}) { b.logger.Info(fmt.Sprint(v...)) }
func (b *hlogBridge) Warn(v ...interface{})   { b.logger.Warn(fmt.Sprint(v...)) }
func (b *hlogBridge) Error(v ...interface{})  { b.logger.Error(fmt.Sprint(v...)) }
func (b *hlogBridge) Fatal(v ...interface{})  { b.logger.Error(fmt.Sprint(v...)) }

func (b *hlogBridge) Tracef(format string, v ...interface{}) {
	b.logger.Debug(fmt.Sprintf(format, v...))
}

func (b *hlogBridge) Debugf(format string, v ...interface{}) {
	b.logger.Debug(fmt.Sprintf(format, v...))
}

func (b *hlogBridge) Infof(format string, v ...interface{}) {
	b.logger.Info(fmt.Sprintf(format, v...))
}

func (b *hlogBridge) Noticef(format string, v ...interface{}) {
	b.logger.Info(fmt.Sprintf(format, v...))
}

func (b *hlogBridge) Warnf(format string, v ...interface{}) {
	b.logger.Warn(fmt.Sprintf(format, v...))
}

func (b *hlogBridge) Errorf(format string, v ...interface{}) {
	b.logger.Error(fmt.Sprintf(format, v...))
}

func (b *hlogBridge) Fatalf(format string, v ...interface{}) {
	b.logger.Error(fmt.Sprintf(format, v...))
}

func (b *hlogBridge) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	b.logger.DebugContext(ctx, fmt.Sprintf(format, v...))
}

func (b *hlogBridge) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	b.logger.DebugContext(ctx, fmt.Sprintf(format, v...))
}

func (b *hlogBridge) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	b.logger.InfoContext(ctx, fmt.Sprintf(format, v...))
}

func (b *hlogBridge) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	b.logger.InfoContext(ctx, fmt.Sprintf(format, v...))
}

func (b *hlogBridge) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	b.logger.WarnContext(ctx, fmt.Sprintf(format, v...))
}

func (b *hlogBridge) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	b.logger.ErrorContext(ctx, fmt.Sprintf(format, v...))
}

func (b *hlogBridge) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	b.logger.ErrorContext(ctx, fmt.Sprintf(format, v...))
}

// SetLevel is a no-op; the slog level is fixed at setup time.
func (b *hlogBridge) SetLevel(level hlog.Level) {}

// SetOutput is a no-op; the slog output is fixed at setup time.
func (b *hlogBridge) SetOutput(writer io.Writer) {}
