package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var logger = newMinerLogger()

type logLevel int

const (
	logLevelDebug logLevel = iota
	logLevelInfo
	logLevelWarn
	logLevelError
)

var levelNames = []string{
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
}

func parseLogLevel(s string) (logLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logLevelDebug, true
	case "info":
		return logLevelInfo, true
	case "warn", "warning":
		return logLevelWarn, true
	case "error":
		return logLevelError, true
	}
	return logLevelInfo, false
}

type logEvent struct {
	level logLevel
	msg   string
	attrs []any
}

// minerLogger queues entries and writes them from a single goroutine so the
// hot mining loop never blocks on terminal I/O. Stop drains the queue before
// returning.
type minerLogger struct {
	level    atomic.Int32
	queue    chan logEvent
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	closing  atomic.Bool

	mu     sync.Mutex
	out    io.Writer
	mirror io.WriteCloser
}

func newMinerLogger() *minerLogger {
	l := &minerLogger{
		queue: make(chan logEvent, 1024),
		done:  make(chan struct{}),
		out:   os.Stdout,
	}
	l.level.Store(int32(logLevelInfo))
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *minerLogger) run() {
	defer l.wg.Done()
	for {
		select {
		case evt := <-l.queue:
			l.writeEntry(evt)
		case <-l.done:
			for {
				select {
				case evt := <-l.queue:
					l.writeEntry(evt)
				default:
					return
				}
			}
		}
	}
}

func (l *minerLogger) setLevel(level logLevel) {
	l.level.Store(int32(level))
}

// setMirrorFile appends a copy of every entry to path. Pass "" to log only
// to stdout.
func (l *minerLogger) setMirrorFile(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	l.mu.Lock()
	if l.mirror != nil {
		_ = l.mirror.Close()
	}
	l.mirror = f
	l.mu.Unlock()
	return nil
}

func (l *minerLogger) log(level logLevel, msg string, attrs ...any) {
	if int32(level) < l.level.Load() {
		return
	}
	if l.closing.Load() {
		return
	}
	select {
	case l.queue <- logEvent{level: level, msg: msg, attrs: append([]any(nil), attrs...)}:
	case <-l.done:
	}
}

func (l *minerLogger) Debug(msg string, attrs ...any) { l.log(logLevelDebug, msg, attrs...) }
func (l *minerLogger) Info(msg string, attrs ...any)  { l.log(logLevelInfo, msg, attrs...) }
func (l *minerLogger) Warn(msg string, attrs ...any)  { l.log(logLevelWarn, msg, attrs...) }
func (l *minerLogger) Error(msg string, attrs ...any) { l.log(logLevelError, msg, attrs...) }

func (l *minerLogger) Stop() {
	l.stopOnce.Do(func() {
		l.closing.Store(true)
		close(l.done)
		l.wg.Wait()
		l.mu.Lock()
		if l.mirror != nil {
			_ = l.mirror.Close()
			l.mirror = nil
		}
		l.mu.Unlock()
	})
}

func (l *minerLogger) writeEntry(evt logEvent) {
	levelName := "UNKNOWN"
	if int(evt.level) >= 0 && int(evt.level) < len(levelNames) {
		levelName = levelNames[evt.level]
	}
	var entry strings.Builder
	entry.WriteString(time.Now().UTC().Format(time.RFC3339))
	entry.WriteString(" [")
	entry.WriteString(levelName)
	entry.WriteString("] ")
	entry.WriteString(evt.msg)
	if attrs := formatAttrs(evt.attrs); attrs != "" {
		entry.WriteByte(' ')
		entry.WriteString(attrs)
	}
	entry.WriteByte('\n')
	line := []byte(entry.String())

	l.mu.Lock()
	_, _ = l.out.Write(line)
	if l.mirror != nil {
		_, _ = l.mirror.Write(line)
	}
	l.mu.Unlock()
}

func formatAttrs(attrs []any) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(attrs); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		key := fmt.Sprint(attrs[i])
		if i+1 < len(attrs) {
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(fmt.Sprint(attrs[i+1]))
			i++
		} else {
			b.WriteString(key)
		}
	}
	return b.String()
}

// fatal logs msg with the error attached, flushes the logger and exits
// non-zero. Only for startup preconditions and unrecoverable runtime errors.
func fatal(msg string, err error, attrs ...any) {
	attrPairs := append(attrs, "error", err)
	logger.Error(msg, attrPairs...)
	logger.Stop()
	os.Exit(1)
}
