package application

import "time"

type MQTTStatus struct {
	MessageCount     uint64
	LastTimeReceived time.Time
	Connected        bool
}

// MQTTMessage is one message delivered by the broker.
type MQTTMessage interface {
	Topic() string
	Payload() []byte
}

type MQTTMessageHandler func(msg MQTTMessage)

// MQTTClient is one connection to the device's broker. A client is built per
// session and discarded on reconnect.
type MQTTClient interface {
	Connect() error
	Disconnect()
	IsConnected() bool
	Status() MQTTStatus

	// AddRoute attaches a handler for a topic filter without touching the
	// broker. Routes must be in place before Subscribe is issued, otherwise
	// a retained message delivered right after the subscribe ack is lost.
	AddRoute(filter string, handler MQTTMessageHandler)

	// SetCatchAll registers the handler for messages that match no route.
	// Must be called before Connect.
	SetCatchAll(handler MQTTMessageHandler)

	Subscribe(filter string, qos byte) error

	// ConnectionLost reports an asynchronous transport failure.
	ConnectionLost() <-chan error
}

// MQTTClientFactory builds a fresh client for one listener session.
type MQTTClientFactory func(cfg BrokerConfig) MQTTClient
