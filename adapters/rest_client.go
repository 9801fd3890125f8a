package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go-fullykiosk/application"

	"github.com/rs/zerolog"
)

const RESTDefaultRequestTimeout = 10 * time.Second

type RESTClientParams struct {
	Host string
	Port int

	RequestTimeout time.Duration

	HTTPClient *http.Client

	Log zerolog.Logger
}

func (r *RESTClientParams) EnsureDefaults() {
	if r.RequestTimeout == 0 {
		r.RequestTimeout = RESTDefaultRequestTimeout
	}

	if r.HTTPClient == nil {
		r.HTTPClient = &http.Client{Timeout: r.RequestTimeout}
	}
}

// RESTClient is the command transport against the device's remote admin API:
// one HTTP GET per command, parameters in the query string.
type RESTClient struct {
	params RESTClientParams

	mu   sync.RWMutex
	host string

	log zerolog.Logger
}

func NewRESTClient(params RESTClientParams) *RESTClient {
	params.EnsureDefaults()
	return &RESTClient{params: params, host: params.Host, log: params.Log}
}

func (r *RESTClient) Host() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.host
}

// SetHost repoints subsequent requests, typically after the device reports a
// new ip4 following a DHCP change.
func (r *RESTClient) SetHost(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.host = host
}

func (r *RESTClient) Execute(ctx context.Context, cmd string, params map[string]any) (application.Document, error) {
	body, _, err := r.fetch(ctx, cmd, params)
	if err != nil {
		return nil, err
	}

	// The device labels some JSON bodies as text/html, so the content type
	// is not to be trusted here.
	var doc application.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", cmd, err)
	}
	return doc, nil
}

func (r *RESTClient) ExecuteBinary(ctx context.Context, cmd string, params map[string]any) ([]byte, error) {
	body, contentType, err := r.fetch(ctx, cmd, params)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "application/octet-stream") {
		return body, nil
	}

	// Failures for image commands come back as a regular JSON status
	// document.
	var doc application.Document
	if err := json.Unmarshal(body, &doc); err == nil {
		if serr := application.ErrorStatus(doc); serr != nil {
			return nil, serr
		}
	}
	return nil, fmt.Errorf("unexpected %s response content type %q", cmd, contentType)
}

func (r *RESTClient) fetch(ctx context.Context, cmd string, params map[string]any) ([]byte, string, error) {
	base := fmt.Sprintf("http://%s:%d/", r.Host(), r.params.Port)

	values := url.Values{}
	values.Set("cmd", cmd)
	values.Set("type", "json")
	for key, value := range params {
		if value == nil {
			continue
		}
		values.Set(key, fmt.Sprint(value))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+values.Encode(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json")

	r.log.Debug().Str("cmd", cmd).Str("host", r.Host()).Msg("sending request")

	resp, err := r.params.HTTPClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode != http.StatusOK {
		r.log.Warn().Int("status", resp.StatusCode).Msg("invalid response from fully kiosk api")
		return nil, "", &application.TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, resp.Header.Get("Content-Type"), nil
}

var _ application.CommandTransport = &RESTClient{}
