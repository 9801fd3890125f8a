package application

import "context"

// CommandTransport performs one REST round trip against the device. Parameter
// values that are nil are omitted from the request entirely; everything else
// is coerced to its string form.
type CommandTransport interface {
	// Execute sends a named command and returns the decoded JSON document.
	Execute(ctx context.Context, cmd string, params map[string]any) (Document, error)

	// ExecuteBinary sends a named command whose response is an image or an
	// opaque byte stream, e.g. getScreenshot.
	ExecuteBinary(ctx context.Context, cmd string, params map[string]any) ([]byte, error)

	// Host and SetHost expose the transport's target so the client can
	// repoint it when the device reports a new ip4.
	Host() string
	SetHost(host string)
}
