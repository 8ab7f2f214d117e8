// Package notify shows short-lived messages ("toasts") to the user.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// Duration is how long a notification stays on screen.
type Duration time.Duration

const (
	Short = Duration(2 * time.Second)
	Long  = Duration(3500 * time.Millisecond)
)

func (d Duration) String() string {
	switch d {
	case Short:
		return "short"
	case Long:
		return "long"
	default:
		return time.Duration(d).String()
	}
}

// Notifier displays a transient message. Implementations must not block
// for the display duration.
type Notifier interface {
	Show(ctx context.Context, message string, d Duration)
}

// ConsoleNotifier prints notifications to a writer, one per line, as
// "[toast:short] message" or "[toast:long] message".
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (c *ConsoleNotifier) Show(_ context.Context, message string, d Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[toast:%s] %s\n", d, message)
}

// LogNotifier records notifications as structured log lines.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Show(ctx context.Context, message string, d Duration) {
	l.log.Info(ctx, "notification", "message", message, "duration", d.String())
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Show(context.Context, string, Duration) {}
