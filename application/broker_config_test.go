package application

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBrokerConfig(t *testing.T) {
	settings := Document{
		"mqttBrokerUrl":      "http://10.0.0.5:1883",
		"mqttBrokerUsername": "fully",
		"mqttBrokerPassword": "secret",
		"mqttClientId":       "device-1",
	}

	cfg, err := ResolveBrokerConfig(settings, "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, 1883, cfg.Port)
	assert.Equal(t, "ha-device-1", cfg.ClientID)
	assert.Equal(t, "fully", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "fully/deviceInfo/ABC123", cfg.DeviceInfoTopic)
	assert.Equal(t, "fully/event/+/ABC123", cfg.EventTopic)
}

func TestResolveBrokerConfig_NoScheme(t *testing.T) {
	settings := Document{"mqttBrokerUrl": "10.0.0.5:1884"}

	cfg, err := ResolveBrokerConfig(settings, "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, 1884, cfg.Port)
}

func TestResolveBrokerConfig_MissingPort(t *testing.T) {
	settings := Document{"mqttBrokerUrl": "10.0.0.5"}

	_, err := ResolveBrokerConfig(settings, "ABC123")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "10.0.0.5", cfgErr.Value)
}

func TestResolveBrokerConfig_BadPort(t *testing.T) {
	settings := Document{"mqttBrokerUrl": "http://10.0.0.5:mqtt"}

	_, err := ResolveBrokerConfig(settings, "ABC123")
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestResolveBrokerConfig_GeneratedClientID(t *testing.T) {
	settings := Document{"mqttBrokerUrl": "http://10.0.0.5:1883"}

	cfg, err := ResolveBrokerConfig(settings, "ABC123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cfg.ClientID, "ha-"))
	assert.Greater(t, len(cfg.ClientID), len("ha-"))
}
