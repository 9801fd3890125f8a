package application

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// AppID is the fixed namespace Fully Kiosk publishes its MQTT topics under.
const AppID = "fully"

// clientIDPrefix distinguishes this listener from the device's own identity
// on the broker.
const clientIDPrefix = "ha-"

// BrokerConfig is an immutable snapshot of the MQTT connection parameters,
// resolved once from a just-fetched settings document. A restarted client
// recomputes it from fresh settings.
type BrokerConfig struct {
	Host     string
	Port     int
	ClientID string
	Username string
	Password string

	DeviceInfoTopic string
	EventTopic      string
}

// ResolveBrokerConfig extracts broker connection parameters from the device
// settings. The device reports the broker URL as scheme://host:port; the URL
// must carry an explicit numeric port. Topics are built from the fixed app
// namespace and the device id rather than the settings templates, which
// contain placeholder tokens for the same values.
func ResolveBrokerConfig(settings Document, deviceID string) (BrokerConfig, error) {
	raw := settings.String(KeyMQTTBrokerURL)

	host, portPart, ok := strings.Cut(strings.TrimPrefix(raw, "http://"), ":")
	if !ok || host == "" {
		return BrokerConfig{}, &ConfigError{Value: raw, Reason: "missing port"}
	}
	port, err := strconv.Atoi(portPart)
	if err != nil {
		return BrokerConfig{}, &ConfigError{Value: raw, Reason: "port is not a number"}
	}

	clientID := settings.String(KeyMQTTClientID)
	if clientID == "" {
		clientID = uuid.NewString()
	}

	return BrokerConfig{
		Host:            host,
		Port:            port,
		ClientID:        clientIDPrefix + clientID,
		Username:        settings.String(KeyMQTTBrokerUsername),
		Password:        settings.String(KeyMQTTBrokerPassword),
		DeviceInfoTopic: DeviceInfoTopic(deviceID),
		EventTopic:      EventTopicFilter(deviceID),
	}, nil
}
