package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level, falling back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a tagged logger. Every instance shares the process-wide sink.
type Logger struct {
	tag string
	id  string
}

var (
	mu       sync.RWMutex
	sink     = log.New(os.Stderr, "", log.LstdFlags)
	minLevel = LevelInfo
	logFile  *os.File
	once     sync.Once
)

// Init configures the shared sink from the environment. It is safe to call
// more than once; only the first call has an effect.
func Init() {
	once.Do(func() {
		cfg := LogConfig()

		writers := []io.Writer{os.Stderr}
		if cfg.LogDir != "" {
			name := fmt.Sprintf("aiweb_log_%s.log", time.Now().Format("20060102_150405"))
			file, err := os.OpenFile(filepath.Join(cfg.LogDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				log.Fatalf("failed to open log file: %s", err)
			}
			logFile = file
			writers = append(writers, file)
		}

		mu.Lock()
		sink = log.New(io.MultiWriter(writers...), "", log.LstdFlags)
		minLevel = ParseLevel(cfg.Level)
		mu.Unlock()
	})
}

// SetOutput redirects the shared sink. Mainly used by tests.
func SetOutput(w io.Writer, level Level) {
	mu.Lock()
	defer mu.Unlock()
	sink = log.New(w, "", 0)
	minLevel = level
}

// Close flushes and closes the log file, if any.
func Close() error {
	if logFile == nil {
		return nil
	}
	return logFile.Close()
}

func NewLogger(tag, id string) *Logger {
	return &Logger{tag: tag, id: id}
}

func (l *Logger) log(level Level, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if level < minLevel {
		return
	}
	sink.Printf("[%s] %s (%s): %s", level, l.tag, shortID(l.id), strings.TrimRight(msg, "\n"))
}

func (l *Logger) Debug(msg string) { l.log(LevelDebug, msg) }
func (l *Logger) Info(msg string)  { l.log(LevelInfo, msg) }
func (l *Logger) Warn(msg string)  { l.log(LevelWarn, msg) }
func (l *Logger) Error(msg string) { l.log(LevelError, msg) }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
