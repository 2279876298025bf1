package debug

import (
	"fmt"
	"sync"
	"time"
)

// Logger is the shared logging sink for the cassette and FDC peripherals.
// Both are driven synchronously from a single pulse-scheduler Advance
// call, so there is no producer/consumer concurrency to manage here — a
// mutex-guarded circular buffer, written to directly by the caller's
// goroutine, is enough (the same "no concurrency needed" reasoning
// internal/interrupts uses for its latches). Logging is opt-in per
// component so a host can enable only the subsystem it is debugging.
type Logger struct {
	mu         sync.Mutex
	entries    []LogEntry
	maxEntries int
	writeIndex int
	entryCount int

	componentEnabled map[Component]bool
	minLevel         LogLevel
}

// NewLogger creates a new logger instance.
func NewLogger(maxEntries int) *Logger {
	if maxEntries < 100 {
		maxEntries = 100 // Minimum buffer size
	}

	return &Logger{
		entries:    make([]LogEntry, maxEntries),
		maxEntries: maxEntries,
		minLevel:   LogLevelInfo, // Default to Info level
		componentEnabled: map[Component]bool{
			ComponentCassette: false,
			ComponentFDC:      false,
			ComponentClock:    false,
			ComponentSystem:   false,
		},
	}
}

// Log records a message for the given component and level, subject to
// that component being enabled and the level meeting the configured
// minimum.
func (l *Logger) Log(component Component, level LogLevel, message string, data map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.componentEnabled[component] {
		return
	}
	if level > l.minLevel {
		return
	}

	l.entries[l.writeIndex] = LogEntry{
		Timestamp: time.Now(),
		Component: component,
		Level:     level,
		Message:   message,
		Data:      data,
	}
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries
	if l.entryCount < l.maxEntries {
		l.entryCount++
	}
}

// Logf logs a formatted message.
func (l *Logger) Logf(component Component, level LogLevel, format string, args ...interface{}) {
	l.Log(component, level, fmt.Sprintf(format, args...), nil)
}

// LogCassette logs a cassette-subsystem event.
func (l *Logger) LogCassette(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentCassette, level, message, data)
}

// LogFDC logs an FDC event.
func (l *Logger) LogFDC(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentFDC, level, message, data)
}

// LogSystem logs a system-level event.
func (l *Logger) LogSystem(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentSystem, level, message, data)
}

// LogCassettef logs a formatted cassette-subsystem event.
func (l *Logger) LogCassettef(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentCassette, level, format, args...)
}

// LogFDCf logs a formatted FDC event.
func (l *Logger) LogFDCf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentFDC, level, format, args...)
}

// LogSystemf logs a formatted system-level event.
func (l *Logger) LogSystemf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentSystem, level, format, args...)
}

// GetEntries returns a copy of all log entries, oldest first.
func (l *Logger) GetEntries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entryCount == 0 {
		return []LogEntry{}
	}

	entries := make([]LogEntry, l.entryCount)
	if l.entryCount < l.maxEntries {
		copy(entries, l.entries[:l.entryCount])
	} else {
		for i := 0; i < l.entryCount; i++ {
			idx := (l.writeIndex + i) % l.maxEntries
			entries[i] = l.entries[idx]
		}
	}
	return entries
}

// GetRecentEntries returns the most recent count entries.
func (l *Logger) GetRecentEntries(count int) []LogEntry {
	allEntries := l.GetEntries()
	if count >= len(allEntries) {
		return allEntries
	}
	return allEntries[len(allEntries)-count:]
}

// Clear discards all buffered entries.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entryCount = 0
	l.writeIndex = 0
}

// SetComponentEnabled enables or disables logging for a component.
func (l *Logger) SetComponentEnabled(component Component, enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.componentEnabled[component] = enabled
}

// IsComponentEnabled reports whether a component is enabled.
func (l *Logger) IsComponentEnabled(component Component) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.componentEnabled[component]
}

// SetMinLevel sets the minimum log level that will be recorded.
func (l *Logger) SetMinLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// GetMinLevel returns the minimum log level.
func (l *Logger) GetMinLevel() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.minLevel
}
