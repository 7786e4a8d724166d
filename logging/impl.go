package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// leveledLogger fans entries at or above its level out to every appender.
type leveledLogger struct {
	name      string
	level     AtomicLevel
	utc       bool
	appenders []Appender
}

func newLeveledLogger(name string, level Level, utc bool, appenders ...Appender) *leveledLogger {
	return &leveledLogger{
		name:      name,
		level:     NewAtomicLevelAt(level),
		utc:       utc,
		appenders: appenders,
	}
}

func (l *leveledLogger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *leveledLogger) GetLevel() Level {
	return l.level.Get()
}

func (l *leveledLogger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return newLeveledLogger(name, l.level.Get(), l.utc, l.appenders...)
}

func (l *leveledLogger) Sync() error {
	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

func (l *leveledLogger) enabled(level Level) bool {
	return level >= l.level.Get()
}

// callerSkip is the number of frames between runtime.Caller in emit and the code that logged:
// emit, then the exported level method.
const callerSkip = 2

// emit must be called directly from an exported level method so the caller lookup lands on the
// line that logged.
func (l *leveledLogger) emit(level Level, msg string, fields []zapcore.Field) {
	entry := zapcore.Entry{
		LoggerName: l.name,
		Level:      level.AsZap(),
		Message:    msg,
		Time:       time.Now(),
	}
	if l.utc {
		entry.Time = entry.Time.UTC()
	}
	if pc, file, line, ok := runtime.Caller(callerSkip); ok {
		entry.Caller = zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
		if fn := runtime.FuncForPC(pc); fn != nil {
			entry.Caller.Function = fn.Name()
		}
	}

	for _, appender := range l.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err) //nolint:errcheck
		}
	}
}

// errUnpairedKey is a plain error so zap encodes it as its message alone.
var errUnpairedKey = errors.New("unpaired log key")

// keysAndValuesToFields pairs up alternating keys and values. A trailing key with no value is kept
// with an error in its place.
func keysAndValuesToFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.Any(key, errUnpairedKey))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func (l *leveledLogger) Debug(args ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, fmt.Sprint(args...), nil)
	}
}

func (l *leveledLogger) Debugf(template string, args ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, fmt.Sprintf(template, args...), nil)
	}
}

func (l *leveledLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if l.enabled(DEBUG) {
		l.emit(DEBUG, msg, keysAndValuesToFields(keysAndValues))
	}
}

func (l *leveledLogger) Info(args ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, fmt.Sprint(args...), nil)
	}
}

func (l *leveledLogger) Infof(template string, args ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, fmt.Sprintf(template, args...), nil)
	}
}

func (l *leveledLogger) Infow(msg string, keysAndValues ...interface{}) {
	if l.enabled(INFO) {
		l.emit(INFO, msg, keysAndValuesToFields(keysAndValues))
	}
}

func (l *leveledLogger) Warn(args ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, fmt.Sprint(args...), nil)
	}
}

func (l *leveledLogger) Warnf(template string, args ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, fmt.Sprintf(template, args...), nil)
	}
}

func (l *leveledLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if l.enabled(WARN) {
		l.emit(WARN, msg, keysAndValuesToFields(keysAndValues))
	}
}

func (l *leveledLogger) Error(args ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, fmt.Sprint(args...), nil)
	}
}

func (l *leveledLogger) Errorf(template string, args ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, fmt.Sprintf(template, args...), nil)
	}
}

func (l *leveledLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if l.enabled(ERROR) {
		l.emit(ERROR, msg, keysAndValuesToFields(keysAndValues))
	}
}
