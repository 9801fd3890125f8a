package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"go-fullykiosk/application"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRESTClient points a client at an httptest server.
func newTestRESTClient(t *testing.T, handler http.HandlerFunc) (*RESTClient, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(serverURL.Port())
	require.NoError(t, err)

	client := NewRESTClient(RESTClientParams{
		Host:       serverURL.Hostname(),
		Port:       port,
		HTTPClient: server.Client(),
	})
	return client, server
}

func TestRESTClient_Execute(t *testing.T) {
	var query url.Values
	client, _ := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"deviceID":"ABC123","ip4":"10.0.0.9"}`))
	})

	doc, err := client.Execute(context.Background(), "deviceInfo", map[string]any{
		"password": "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC123", doc.String("deviceID"))
	assert.Equal(t, "deviceInfo", query.Get("cmd"))
	assert.Equal(t, "json", query.Get("type"))
	assert.Equal(t, "secret", query.Get("password"))
}

func TestRESTClient_Execute_OmitsNilParams(t *testing.T) {
	var query url.Values
	client, _ := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{}`))
	})

	_, err := client.Execute(context.Background(), "setAudioVolume", map[string]any{
		"level":  11,
		"stream": nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "11", query.Get("level"))
	assert.False(t, query.Has("stream"))
}

func TestRESTClient_Execute_MislabeledJSON(t *testing.T) {
	client, _ := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		// some firmware labels JSON bodies as html
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`{"deviceID":"ABC123"}`))
	})

	doc, err := client.Execute(context.Background(), "deviceInfo", nil)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", doc.String("deviceID"))
}

func TestRESTClient_Execute_TransportError(t *testing.T) {
	client, _ := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("denied"))
	})

	_, err := client.Execute(context.Background(), "deviceInfo", nil)
	require.Error(t, err)

	var terr *application.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusForbidden, terr.StatusCode)
	assert.Equal(t, "denied", terr.Body)
}

func TestRESTClient_Execute_MalformedBody(t *testing.T) {
	client, _ := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.Execute(context.Background(), "deviceInfo", nil)
	require.Error(t, err)
}

func TestRESTClient_ExecuteBinary(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G'}
	client, _ := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(image)
	})

	data, err := client.ExecuteBinary(context.Background(), "getScreenshot", nil)
	require.NoError(t, err)
	assert.Equal(t, image, data)
}

func TestRESTClient_ExecuteBinary_ErrorDocument(t *testing.T) {
	client, _ := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"Error","statustext":"Please login"}`))
	})

	_, err := client.ExecuteBinary(context.Background(), "getScreenshot", nil)
	require.Error(t, err)

	var cerr *application.CommandError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "Please login", cerr.Text)
}

func TestRESTClient_SetHost(t *testing.T) {
	var hosts []string
	client, server := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
		hosts = append(hosts, r.Host)
		w.Write([]byte(`{}`))
	})

	_, err := client.Execute(context.Background(), "deviceInfo", nil)
	require.NoError(t, err)

	// repoint to the same server under its alternative name; subsequent
	// requests carry the new host
	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	alias := "localhost"
	if serverURL.Hostname() == "localhost" {
		alias = "127.0.0.1"
	}
	client.SetHost(alias)
	assert.Equal(t, alias, client.Host())

	_, err = client.Execute(context.Background(), "deviceInfo", nil)
	require.NoError(t, err)

	require.Len(t, hosts, 2)
	assert.True(t, strings.HasPrefix(hosts[1], alias))
}
