package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Timestamps look like "14:32:01.45";
// cost and error values are colored so they stand out in debug traces.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	styles := log.DefaultStyles()
	styles.Keys["cost"] = lipgloss.NewStyle().Foreground(colorCyan)
	styles.Values["cost"] = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(colorRed)
	logger.SetStyles(styles)
	return logger
}

// progress times a command stage and reports it at debug level once done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing with the logger carried by ctx.
func newProgress(ctx context.Context) *progress {
	return &progress{logger: loggerFromContext(ctx), start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, e.g.
// "annealed nodes=12 cost=40 elapsed=1.234s".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Debug(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
