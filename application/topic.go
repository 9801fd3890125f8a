package application

import (
	"fmt"
	"strings"
)

type TopicKind int

const (
	TopicOther TopicKind = iota
	TopicDeviceInfo
	TopicEvent
)

const (
	segmentDeviceInfo = "deviceInfo"
	segmentEvent      = "event"
)

// DeviceInfoTopic is the per-device topic full device state documents are
// published on.
func DeviceInfoTopic(deviceID string) string {
	return fmt.Sprintf("%s/%s/%s", AppID, segmentDeviceInfo, deviceID)
}

// EventTopicFilter matches every named event the device publishes; the
// wildcard segment is the event name.
func EventTopicFilter(deviceID string) string {
	return fmt.Sprintf("%s/%s/+/%s", AppID, segmentEvent, deviceID)
}

// Topic is the parsed shape of an incoming message topic:
// fully/deviceInfo/{deviceID} carries a device state document,
// fully/event/{event}/{deviceID} a named event.
type Topic struct {
	Kind     TopicKind
	Type     string
	DeviceID string
	Event    string
}

// EventName is the name handed to the caller's event callback: "deviceInfo"
// for state documents, the specific event name for events, and the raw type
// segment for anything else.
func (t Topic) EventName() string {
	if t.Kind == TopicEvent {
		return t.Event
	}
	return t.Type
}

func ParseTopic(topic string) (Topic, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 {
		return Topic{}, fmt.Errorf("topic %q has no type segment", topic)
	}

	t := Topic{Type: parts[1]}
	switch parts[1] {
	case segmentDeviceInfo:
		t.Kind = TopicDeviceInfo
		if len(parts) > 2 {
			t.DeviceID = parts[2]
		}
	case segmentEvent:
		if len(parts) < 4 {
			return Topic{}, fmt.Errorf("event topic %q is missing segments", topic)
		}
		t.Kind = TopicEvent
		t.Event = parts[2]
		t.DeviceID = parts[3]
	default:
		t.Kind = TopicOther
	}
	return t, nil
}
