// pattern: Imperative Shell

package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// recorder is a zapcore.WriteSyncer that keeps every JSON line zap writes as
// a parsed LogEntry.
type recorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (r *recorder) Write(p []byte) (int, error) {
	entry, err := parseEntry(p)
	if err != nil {
		return len(p), nil
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return len(p), nil
}

func (r *recorder) Sync() error { return nil }

// TestLogManager is a LoggerProvider that records entries in memory so tests
// can assert on what was logged. Every level is recorded.
type TestLogManager struct {
	rec     *recorder
	baseZap *zap.Logger
	loggers map[string]*ScopedLogger
	mu      sync.Mutex
}

// NewTestLogManager creates a recording LoggerProvider.
func NewTestLogManager() *TestLogManager {
	rec := &recorder{}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), rec, zapcore.DebugLevel)

	return &TestLogManager{
		rec:     rec,
		baseZap: zap.New(core),
		loggers: make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger for the given scope name.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}
	logger := newScopedLogger(m.baseZap.Named(scope), zapcore.DebugLevel)
	m.loggers[scope] = logger
	return logger
}

// Drain returns the entries recorded since the previous call, oldest first.
func (m *TestLogManager) Drain() []LogEntry {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	entries := m.rec.entries
	m.rec.entries = nil
	return entries
}

// Close flushes the underlying logger.
func (m *TestLogManager) Close() error {
	return m.baseZap.Sync()
}
