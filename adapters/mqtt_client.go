package adapters

import (
	"fmt"
	"sync/atomic"
	"time"

	"go-fullykiosk/application"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

const (
	MQTTDefaultConnectTimeout    = 30 * time.Second
	MQTTDefaultDisconnectQuiesce = 250 * time.Millisecond
)

var (
	ErrMQTTNotConnected   = fmt.Errorf("not connected")
	ErrMQTTConnectTimeout = fmt.Errorf("connect timeout")
)

type MQTTClientParams struct {
	ClientID  string
	Username  string
	Password  string
	BrokerURL string

	ConnectTimeout time.Duration

	NewClientFunc func(options *mqtt.ClientOptions) mqtt.Client

	Log zerolog.Logger
}

func (m *MQTTClientParams) EnsureDefaults() {
	if m.ConnectTimeout == 0 {
		m.ConnectTimeout = MQTTDefaultConnectTimeout
	}

	if m.NewClientFunc == nil {
		m.NewClientFunc = mqtt.NewClient
	}
}

// MQTTClient wraps one paho connection. Reconnecting is the listener
// service's job, so paho's own retry machinery is disabled and a lost
// connection is surfaced on the ConnectionLost channel instead.
type MQTTClient struct {
	params MQTTClientParams

	client mqtt.Client

	connected          uint64
	msgCount           uint64
	msgCountUpdateTime atomic.Pointer[time.Time]

	catchAll atomic.Pointer[application.MQTTMessageHandler]
	connLost chan error

	log zerolog.Logger
}

func NewMQTTClient(params MQTTClientParams) *MQTTClient {
	params.EnsureDefaults()

	m := &MQTTClient{params: params, log: params.Log, connLost: make(chan error, 1)}
	m.client = m.newMqttClient()

	t := time.Unix(0, 0)
	m.msgCountUpdateTime.Store(&t)

	return m
}

func (m *MQTTClient) Connect() error {
	if atomic.LoadUint64(&m.connected) == 1 {
		return nil
	}

	tc := time.NewTimer(m.params.ConnectTimeout)
	defer tc.Stop()

	token := m.client.Connect()
	select {
	case <-tc.C:
		return ErrMQTTConnectTimeout
	case <-token.Done():
		if token.Error() != nil {
			return token.Error()
		}
	}

	atomic.StoreUint64(&m.connected, 1)
	return nil
}

func (m *MQTTClient) Disconnect() {
	m.client.Disconnect(uint(MQTTDefaultDisconnectQuiesce.Milliseconds()))
	atomic.StoreUint64(&m.connected, 0)
}

func (m *MQTTClient) IsConnected() bool {
	if atomic.LoadUint64(&m.connected) == 0 {
		return false
	}
	return true
}

func (m *MQTTClient) Status() application.MQTTStatus {
	return application.MQTTStatus{
		MessageCount:     atomic.LoadUint64(&m.msgCount),
		LastTimeReceived: *m.msgCountUpdateTime.Load(),
		Connected:        m.IsConnected(),
	}
}

func (m *MQTTClient) AddRoute(filter string, handler application.MQTTMessageHandler) {
	m.client.AddRoute(filter, func(client mqtt.Client, msg mqtt.Message) {
		m.markReceived()
		handler(msg)
	})
}

func (m *MQTTClient) SetCatchAll(handler application.MQTTMessageHandler) {
	m.catchAll.Store(&handler)
}

func (m *MQTTClient) Subscribe(filter string, qos byte) error {
	if !m.IsConnected() {
		return ErrMQTTNotConnected
	}

	token := m.client.Subscribe(filter, qos, nil)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (m *MQTTClient) ConnectionLost() <-chan error {
	return m.connLost
}

// PublishHandler receives every message that matches no registered route.
func (m *MQTTClient) PublishHandler(client mqtt.Client, msg mqtt.Message) {
	m.markReceived()
	if h := m.catchAll.Load(); h != nil {
		(*h)(msg)
	}
}

func (m *MQTTClient) OnConnect(client mqtt.Client) {
	m.log.Info().Msgf("connected")
	atomic.StoreUint64(&m.connected, 1)
}

func (m *MQTTClient) OnConnectionLost(client mqtt.Client, err error) {
	m.log.Info().Msgf("connection lost: %v", err)
	atomic.StoreUint64(&m.connected, 0)

	select {
	case m.connLost <- err:
	default:
	}
}

func (m *MQTTClient) markReceived() {
	t := time.Now()
	m.msgCountUpdateTime.Store(&t)
	atomic.AddUint64(&m.msgCount, 1)
}

func (m *MQTTClient) newMqttClient() mqtt.Client {
	opts := mqtt.NewClientOptions()

	opts.AddBroker(m.params.BrokerURL)
	opts.SetClientID(m.params.ClientID)
	opts.SetUsername(m.params.Username)
	opts.SetPassword(m.params.Password)

	// The listener service owns the reconnect loop.
	opts.SetAutoReconnect(false)
	opts.SetConnectRetry(false)

	opts.SetDefaultPublishHandler(m.PublishHandler)
	opts.OnConnect = m.OnConnect
	opts.OnConnectionLost = m.OnConnectionLost

	return m.params.NewClientFunc(opts)
}

// NewMQTTClientFactory is the production client factory for the listener
// service.
func NewMQTTClientFactory(log zerolog.Logger) application.MQTTClientFactory {
	return func(cfg application.BrokerConfig) application.MQTTClient {
		return NewMQTTClient(MQTTClientParams{
			ClientID:  cfg.ClientID,
			Username:  cfg.Username,
			Password:  cfg.Password,
			BrokerURL: fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port),
			Log:       log,
		})
	}
}

var _ application.MQTTClient = &MQTTClient{}
