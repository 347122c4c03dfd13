package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event types recorded by the interpreter.
const (
	EventLine              = "line"
	EventBuiltin           = "builtin"
	EventInvalidInvocation = "invalid_invocation"
	EventSpawn             = "spawn"
	EventExit              = "exit"
	EventUnknownCommand    = "unknown_command"
	EventSpawnFailure      = "spawn_failure"
)

// Well known fields of an entry.
const (
	FieldEvent           = "event"
	FieldSessionID       = "session_id"
	FieldTimestampMicros = "timestamp_micros"
	FieldCommand         = "command"
	FieldPath            = "path"
	FieldStatus          = "status"
	FieldError           = "error"
	FieldLine            = "line"
)

// Fields holds the payload of an event.
type Fields map[string]interface{}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *structpb.Struct) error

// Logger captures interaction event logs for the interpreter.
type Logger struct {
	Record LogRecorder
}

// NewJSONLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. It is safe for concurrent use.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *structpb.Struct) error {
			entry, err := protojson.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*structpb.Struct) error {
			return nil
		},
	}
}

func (l *Logger) recordEvent(sessionID, event string, fields Fields) error {
	raw := map[string]interface{}{}
	for k, v := range fields {
		raw[k] = normalize(v)
	}
	raw[FieldEvent] = event
	raw[FieldSessionID] = sessionID
	raw[FieldTimestampMicros] = time.Now().UnixMicro()

	le, err := structpb.NewStruct(raw)
	if err != nil {
		return err
	}

	return l.Record(le)
}

// normalize converts values structpb can't represent directly.
func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case error:
		return v.Error()
	default:
		return v
	}
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record stores an event of the given type.
func (l *SessionLogger) Record(event string, fields Fields) error {
	return l.recordEvent(l.sessionID, event, fields)
}
