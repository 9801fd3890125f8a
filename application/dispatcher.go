package application

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// EventFunc receives the event name computed from an incoming message topic.
type EventFunc func(event string)

// Dispatcher classifies incoming broker messages by topic shape and fans them
// out to the device cache and the caller's callback.
type Dispatcher struct {
	cache    *DeviceCache
	callback EventFunc

	wg conc.WaitGroup

	log zerolog.Logger
}

func NewDispatcher(cache *DeviceCache, callback EventFunc, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{cache: cache, callback: callback, log: log}
}

// Dispatch handles one message. A malformed payload or topic is returned as
// an error so the listener can report it; it never tears the session down.
func (d *Dispatcher) Dispatch(topic string, payload []byte) error {
	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("malformed payload on %s: %w", topic, err)
	}

	parsed, err := ParseTopic(topic)
	if err != nil {
		return err
	}

	if parsed.Kind == TopicDeviceInfo {
		d.cache.SetDeviceInfo(doc)
	}

	d.invoke(parsed.EventName())
	return nil
}

// invoke shields the listener task from the caller's callback: a slow or
// panicking callback must not block or kill processing of later messages.
func (d *Dispatcher) invoke(event string) {
	if d.callback == nil {
		return
	}
	d.wg.Go(func() {
		var c panics.Catcher
		c.Try(func() { d.callback(event) })
		if r := c.Recovered(); r != nil {
			d.log.Error().Str("event", event).Msgf("event callback panicked: %v", r.Value)
		}
	})
}

// Wait blocks until in-flight callback invocations have finished. Called on
// session teardown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
