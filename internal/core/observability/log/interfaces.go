// Package log is the structured logging facade of the simulation core.
// Behaviors, states and the bridge log through Log and never import zap.
package log

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownLevel = errors.New("unknown log level")

type Log interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger that stamps fields on every entry.
	With(fields ...Field) Log
	// Named returns a child logger under the dotted name name.
	Named(name string) Log

	SetLevel(level Level)
	Level() Level
	Sync() error
}

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelSilent drops every entry.
	LevelSilent
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"":        LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
	"silent":  LevelSilent,
	"off":     LevelSilent,
}

// ParseLevel maps a config string onto a Level. The empty string means info.
func ParseLevel(s string) (Level, error) {
	if l, ok := levelNames[s]; ok {
		return l, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return fmt.Sprintf("Level(%d)", uint8(l))
	}
}

// Field is one key/value pair of a log entry. Kind selects how Value is
// encoded.
type Field struct {
	Key   string
	Kind  FieldKind
	Value any
}

type FieldKind uint8

const (
	AnyKind FieldKind = iota
	BoolKind
	DurationKind
	Float64Kind
	IntKind
	StringKind
	Uint64Kind
	ErrorKind
)

func Any(key string, val any) Field {
	return Field{Key: key, Kind: AnyKind, Value: val}
}

func Bool(key string, val bool) Field {
	return Field{Key: key, Kind: BoolKind, Value: val}
}

func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Kind: DurationKind, Value: val}
}

func Float64(key string, val float64) Field {
	return Field{Key: key, Kind: Float64Kind, Value: val}
}

func Int(key string, val int) Field {
	return Field{Key: key, Kind: IntKind, Value: val}
}

func String(key string, val string) Field {
	return Field{Key: key, Kind: StringKind, Value: val}
}

func Uint64(key string, val uint64) Field {
	return Field{Key: key, Kind: Uint64Kind, Value: val}
}

func Error(err error) Field {
	return Field{Key: "error", Kind: ErrorKind, Value: err}
}

// Entity, Tick and Event use the keys shared by every package so entries can
// be correlated across behaviors, states and the bridge.

func Entity(id uint64) Field { return Uint64("entity", id) }

func Tick(tick uint64) Field { return Uint64("tick", tick) }

func Event(typ string) Field { return String("event", typ) }
