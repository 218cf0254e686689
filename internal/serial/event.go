package serial

import (
	"strings"
	"time"
)

// NotifyLevel classifies a Notification event, mirroring
// original_source/src/notify.rs's NotifyLevel.
type NotifyLevel int

const (
	LevelInfo NotifyLevel = iota
	LevelWarn
	LevelError
)

func (l NotifyLevel) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Event is the tagged union emitted by reader/writer tasks onto the hub's
// outbound channel. Exactly one of Data or Notify is set.
type Event struct {
	Kind EventKind

	// Data fields, valid when Kind == EventData.
	Port      PortName
	Payload   []byte
	Timestamp time.Time

	// Notification fields, valid when Kind == EventNotification.
	Level   NotifyLevel
	Message string
}

type EventKind int

const (
	EventData EventKind = iota
	EventNotification
)

// DataEvent constructs a Data-kind Event.
func DataEvent(port PortName, payload []byte, ts time.Time) Event {
	return Event{Kind: EventData, Port: port, Payload: payload, Timestamp: ts}
}

// NotificationEvent constructs a Notification-kind Event.
func NotificationEvent(port PortName, level NotifyLevel, message string) Event {
	return Event{Kind: EventNotification, Port: port, Level: level, Message: message}
}

// Text renders Payload as display/log-ready text: invalid UTF-8 bytes are
// replaced with the Unicode replacement character, and any trailing line
// ending the device sent is trimmed since both the display buffer and the
// logger add their own.
func (e Event) Text() string {
	return strings.TrimRight(strings.ToValidUTF8(string(e.Payload), "�"), "\r\n")
}
