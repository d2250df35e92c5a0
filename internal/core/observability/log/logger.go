package log

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Log = (*Logger)(nil)

// Options configures New.
type Options struct {
	Level Level
	// Console switches from JSON lines to the human readable encoder.
	Console bool
}

// Logger is the zap backed Log.
type Logger struct {
	zap   *zap.Logger
	level zap.AtomicLevel
}

// New builds a logger writing to stderr.
func New(opts Options) (*Logger, error) {
	atom := zap.NewAtomicLevelAt(toZapLevel(opts.Level))
	encoding, enc := "json", zap.NewProductionEncoderConfig()
	if opts.Console {
		encoding, enc = "console", zap.NewDevelopmentEncoderConfig()
	}
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := zap.Config{
		Level:            atom,
		Encoding:         encoding,
		EncoderConfig:    enc,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zap: z, level: atom}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop(), level: zap.NewAtomicLevelAt(silentLevel)}
}

// NewWithCore wraps an existing zap core, for zaptest/observer in tests.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{zap: zap.New(core), level: zap.NewAtomicLevelAt(zap.DebugLevel)}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.write(zap.DebugLevel, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.write(zap.InfoLevel, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.write(zap.WarnLevel, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.write(zap.ErrorLevel, msg, fields) }

func (l *Logger) write(level zapcore.Level, msg string, fields []Field) {
	// Field conversion allocates; skip it for disabled levels.
	if !l.level.Enabled(level) {
		return
	}
	if ce := l.zap.Check(level, msg); ce != nil {
		ce.Write(toZapFields(fields)...)
	}
}

func (l *Logger) With(fields ...Field) Log {
	return &Logger{zap: l.zap.With(toZapFields(fields)...), level: l.level}
}

func (l *Logger) Named(name string) Log {
	return &Logger{zap: l.zap.Named(name), level: l.level}
}

// SetLevel changes the level of l and of every logger derived from it.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(toZapLevel(level))
}

func (l *Logger) Level() Level {
	return fromZapLevel(l.level.Level())
}

func (l *Logger) Sync() error {
	return l.zap.Sync()
}

const silentLevel = zapcore.FatalLevel + 1

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	case LevelSilent:
		return silentLevel
	default:
		return zap.InfoLevel
	}
}

func fromZapLevel(level zapcore.Level) Level {
	switch {
	case level <= zap.DebugLevel:
		return LevelDebug
	case level == zap.InfoLevel:
		return LevelInfo
	case level == zap.WarnLevel:
		return LevelWarn
	case level < silentLevel:
		return LevelError
	default:
		return LevelSilent
	}
}

func toZapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch f.Kind {
		case BoolKind:
			out[i] = zap.Bool(f.Key, f.Value.(bool))
		case DurationKind:
			out[i] = zap.Duration(f.Key, f.Value.(time.Duration))
		case Float64Kind:
			out[i] = zap.Float64(f.Key, f.Value.(float64))
		case IntKind:
			out[i] = zap.Int(f.Key, f.Value.(int))
		case StringKind:
			out[i] = zap.String(f.Key, f.Value.(string))
		case Uint64Kind:
			out[i] = zap.Uint64(f.Key, f.Value.(uint64))
		case ErrorKind:
			err, _ := f.Value.(error)
			out[i] = zap.NamedError(f.Key, err)
		default:
			out[i] = zap.Any(f.Key, f.Value)
		}
	}
	return out
}
