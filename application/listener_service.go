package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

const (
	DefaultReconnectInterval = 3 * time.Second

	subscribeQOS         = byte(0)
	messageBuffer        = 16
	statusReportInterval = 30 * time.Second
)

// ListenerService owns the MQTT side of the client: one live broker session
// at a time, a listener task per topic filter, and an unbounded reconnect
// loop. Only cancellation of the Run context ends the loop.
type ListenerService interface {
	Run(ctx context.Context) error
}

type ListenerServiceParams struct {
	Broker     BrokerConfig
	Dispatcher *Dispatcher

	NewMQTTClientFunc MQTTClientFactory

	ReconnectInterval time.Duration

	Log zerolog.Logger
}

func (p *ListenerServiceParams) EnsureDefaults() {
	if p.ReconnectInterval == 0 {
		p.ReconnectInterval = DefaultReconnectInterval
	}
}

type listenerService struct {
	params ListenerServiceParams

	log zerolog.Logger
}

func NewListenerService(params ListenerServiceParams) (ListenerService, error) {
	if params.Dispatcher == nil {
		return nil, fmt.Errorf("Dispatcher is nil")
	}
	if params.NewMQTTClientFunc == nil {
		return nil, fmt.Errorf("NewMQTTClientFunc is nil")
	}
	params.EnsureDefaults()
	return &listenerService{params: params, log: params.Log}, nil
}

// Run keeps a session against the broker until ctx is canceled. A failed or
// dropped session is logged and retried after the reconnect interval; the
// loop never gives up on its own.
func (s *listenerService) Run(ctx context.Context) error {
	for {
		err := s.session(ctx)

		if ctx.Err() != nil {
			// Shutdown path: cancellation is expected, anything else from
			// session teardown surfaces to the caller of stop.
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}

		s.log.Error().Err(err).
			Msgf("mqtt session failed, reconnecting in %s", s.params.ReconnectInterval)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.params.ReconnectInterval):
		}
	}
}

// session runs one broker connection from Connecting to teardown. It returns
// once the connection fails or ctx is canceled; teardown has fully completed
// by the time it returns, so the caller may start the next session.
func (s *listenerService) session(ctx context.Context) error {
	client := s.params.NewMQTTClientFunc(s.params.Broker)

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg := conc.NewWaitGroup()
	teardown := func() {
		cancel()
		wg.Wait()
		s.params.Dispatcher.Wait()
		if client.IsConnected() {
			client.Disconnect()
		}
	}

	// Listener tasks and routes are attached before the broker subscribe
	// calls go out; a retained message can arrive the moment a subscribe is
	// acknowledged.
	filters := []string{s.params.Broker.DeviceInfoTopic, s.params.Broker.EventTopic}
	for _, filter := range filters {
		filter := filter
		messages := make(chan MQTTMessage, messageBuffer)
		client.AddRoute(filter, func(msg MQTTMessage) {
			select {
			case messages <- msg:
			default:
				s.log.Warn().Str("filter", filter).Msg("listener backlog full, dropping message")
			}
		})
		wg.Go(func() { s.listen(sessionCtx, filter, messages) })
	}

	unmatched := make(chan MQTTMessage, messageBuffer)
	client.SetCatchAll(func(msg MQTTMessage) {
		select {
		case unmatched <- msg:
		default:
		}
	})
	wg.Go(func() { s.logUnmatched(sessionCtx, unmatched) })

	if err := client.Connect(); err != nil {
		teardown()
		return err
	}

	for _, filter := range filters {
		if err := client.Subscribe(filter, subscribeQOS); err != nil {
			teardown()
			return fmt.Errorf("subscribe %s: %w", filter, err)
		}
	}

	s.log.Info().
		Str("host", s.params.Broker.Host).
		Int("port", s.params.Broker.Port).
		Msg("listening")

	ticker := time.NewTicker(statusReportInterval)
	defer ticker.Stop()

	var err error
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		case cerr := <-client.ConnectionLost():
			err = cerr
			break Loop
		case <-ticker.C:
			status := client.Status()
			s.log.Info().
				Uint64("messages", status.MessageCount).
				Bool("is_connected", status.Connected).
				Time("last_time_received", status.LastTimeReceived).
				Msg("listener report")
		}
	}

	teardown()
	return err
}

func (s *listenerService) listen(ctx context.Context, filter string, messages <-chan MQTTMessage) {
	log := s.log.With().Str("filter", filter).Logger()
	log.Debug().Msg("listener started")
	defer log.Debug().Msg("listener stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-messages:
			if err := s.params.Dispatcher.Dispatch(msg.Topic(), msg.Payload()); err != nil {
				log.Warn().Err(err).Msg("message dropped")
			}
		}
	}
}

func (s *listenerService) logUnmatched(ctx context.Context, messages <-chan MQTTMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-messages:
			s.log.Debug().Str("topic", msg.Topic()).Msg("unmatched message")
		}
	}
}
