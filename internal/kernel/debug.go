package kernel

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	debugMode atomic.Bool
	logger    atomic.Pointer[zap.Logger]
)

func init() {
	logger.Store(zap.NewNop())
}

// SetDebugPolicy turns debug mode on or off. In debug mode every error is
// logged the moment it is raised instead of only being retained as the
// handle's last message.
func SetDebugPolicy(on bool) {
	debugMode.Store(on)
}

// DebugPolicy reports whether debug mode is on.
func DebugPolicy() bool {
	return debugMode.Load()
}

// SetLogger sets the logger used in debug mode. A nil logger silences it.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func logRaised(code int, msg string) {
	if !debugMode.Load() {
		return
	}
	logger.Load().Error("kernel error",
		zap.Int("status", code),
		zap.String("message", msg),
	)
}
