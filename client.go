// Package fullykiosk is a client for the Fully Kiosk Browser remote admin
// REST API with an optional MQTT event listener. REST commands always work
// against the device directly; when the device reports an enabled MQTT
// integration, Start brings up a broker session that pushes deviceInfo
// updates and named events instead of polling.
package fullykiosk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-fullykiosk/adapters"
	"go-fullykiosk/application"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ClientParams struct {
	Host     string
	Port     int
	Password string

	// UseMQTT enables the broker listener when the device settings report an
	// enabled MQTT integration.
	UseMQTT bool

	// OnEvent receives the event name for every dispatched broker message.
	OnEvent application.EventFunc

	Transport         application.CommandTransport
	NewMQTTClientFunc application.MQTTClientFactory
	ReconnectInterval time.Duration

	Log zerolog.Logger
}

func (p *ClientParams) EnsureDefaults() {
	if p.Transport == nil {
		p.Transport = adapters.NewRESTClient(adapters.RESTClientParams{
			Host: p.Host,
			Port: p.Port,
			Log:  p.Log.With().Str("module", "rest-client").Logger(),
		})
	}

	if p.NewMQTTClientFunc == nil {
		p.NewMQTTClientFunc = adapters.NewMQTTClientFactory(
			p.Log.With().Str("module", "mqtt-client").Logger())
	}
}

// Client controls one kiosk device.
type Client struct {
	params ClientParams

	transport application.CommandTransport
	cache     *application.DeviceCache

	mu    sync.Mutex
	stop  context.CancelFunc
	group *errgroup.Group

	log zerolog.Logger
}

func NewClient(params ClientParams) (*Client, error) {
	if params.Host == "" {
		return nil, fmt.Errorf("Host is empty")
	}
	params.EnsureDefaults()

	return &Client{
		params:    params,
		transport: params.Transport,
		cache:     application.NewDeviceCache(),
		log:       params.Log,
	}, nil
}

// Start fetches the device state and settings and, when the device has its
// MQTT integration enabled and UseMQTT is set, brings up the background
// listener. A broker URL that cannot be resolved is fatal to the MQTT path
// and returned here; REST commands remain usable either way. The listener
// runs until Stop, independent of ctx, which only governs the two fetches.
func (c *Client) Start(ctx context.Context) error {
	info, err := c.GetDeviceInfo(ctx)
	if err != nil {
		return err
	}
	settings, err := c.GetSettings(ctx)
	if err != nil {
		return err
	}

	if !c.params.UseMQTT || !settings.Bool(application.KeyMQTTEnabled) {
		c.log.Debug().Msg("mqtt listener disabled")
		return nil
	}

	broker, err := application.ResolveBrokerConfig(settings, info.String(application.KeyDeviceID))
	if err != nil {
		return err
	}

	dispatcher := application.NewDispatcher(c.cache, c.params.OnEvent,
		c.log.With().Str("module", "dispatcher").Logger())

	listener, err := application.NewListenerService(application.ListenerServiceParams{
		Broker:            broker,
		Dispatcher:        dispatcher,
		NewMQTTClientFunc: c.params.NewMQTTClientFunc,
		ReconnectInterval: c.params.ReconnectInterval,
		Log:               c.log.With().Str("module", "listener").Logger(),
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return fmt.Errorf("already started")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	g := &errgroup.Group{}
	g.Go(func() error { return listener.Run(runCtx) })

	c.stop = cancel
	c.group = g

	c.log.Debug().Str("host", broker.Host).Int("port", broker.Port).Msg("mqtt listener started")
	return nil
}

// Stop tears the listener down and returns once every listener task has
// completed. Calling Stop twice is safe; the second call is a no-op.
func (c *Client) Stop() error {
	c.mu.Lock()
	stop, g := c.stop, c.group
	c.stop, c.group = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return nil
	}

	stop()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// SendCommand performs one REST round trip. Most callers want the named
// wrappers in commands.go; this is the escape hatch for commands the library
// does not cover.
func (c *Client) SendCommand(ctx context.Context, cmd string, params map[string]any) (application.Document, error) {
	doc, err := c.transport.Execute(ctx, cmd, c.withPassword(params))
	if err != nil {
		return nil, err
	}
	if err := application.ErrorStatus(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) sendBinary(ctx context.Context, cmd string, params map[string]any) ([]byte, error) {
	return c.transport.ExecuteBinary(ctx, cmd, c.withPassword(params))
}

func (c *Client) withPassword(params map[string]any) map[string]any {
	merged := map[string]any{"password": c.params.Password}
	for key, value := range params {
		merged[key] = value
	}
	return merged
}

// GetDeviceInfo refreshes the cached device state. When the device reports an
// ip4 that differs from the transport's current host, the transport is
// repointed so later requests survive a DHCP address change.
func (c *Client) GetDeviceInfo(ctx context.Context) (application.Document, error) {
	doc, err := c.SendCommand(ctx, "deviceInfo", nil)
	if err != nil {
		return nil, err
	}
	c.cache.SetDeviceInfo(doc)

	if ip := doc.String(application.KeyIP4); ip != "" && ip != c.transport.Host() {
		c.log.Info().Str("old", c.transport.Host()).Str("new", ip).Msg("device ip changed")
		c.transport.SetHost(ip)
	}
	return doc, nil
}

// GetSettings refreshes the cached settings document.
func (c *Client) GetSettings(ctx context.Context) (application.Document, error) {
	doc, err := c.SendCommand(ctx, "listSettings", nil)
	if err != nil {
		return nil, err
	}
	c.cache.SetSettings(doc)
	return doc, nil
}

// DeviceInfo is the most recently seen device state document, updated by
// GetDeviceInfo and by incoming deviceInfo broker messages. Read-only.
func (c *Client) DeviceInfo() application.Document {
	return c.cache.DeviceInfo()
}

// Settings is the most recently fetched settings document. Read-only.
func (c *Client) Settings() application.Document {
	return c.cache.Settings()
}
