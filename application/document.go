package application

import (
	"fmt"
	"strconv"
)

// Fields the client reads out of deviceInfo and listSettings responses.
const (
	KeyDeviceID = "deviceID"
	KeyIP4      = "ip4"

	KeyMQTTEnabled         = "mqttEnabled"
	KeyMQTTBrokerURL       = "mqttBrokerUrl"
	KeyMQTTBrokerUsername  = "mqttBrokerUsername"
	KeyMQTTBrokerPassword  = "mqttBrokerPassword"
	KeyMQTTClientID        = "mqttClientId"
	KeyMQTTDeviceInfoTopic = "mqttDeviceInfoTopic"
	KeyMQTTEventTopic      = "mqttEventTopic"
)

const (
	ResponseStatus      = "status"
	ResponseStatusText  = "statustext"
	ResponseErrorStatus = "Error"
)

// Document is a decoded JSON object returned by the device. The deviceInfo
// and settings documents are kept opaque; the typed accessors coerce the
// handful of fields the client needs, since firmware versions disagree on
// whether values arrive as bools, numbers or strings.
type Document map[string]any

func (d Document) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (d Document) Bool(key string) bool {
	switch v := d[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

func (d Document) Int(key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ErrorStatus returns the CommandError carried by a response document, or nil
// when the response does not report the error status.
func ErrorStatus(doc Document) error {
	if doc.String(ResponseStatus) == ResponseErrorStatus {
		return &CommandError{Status: ResponseErrorStatus, Text: doc.String(ResponseStatusText)}
	}
	return nil
}
