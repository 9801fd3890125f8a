package fullykiosk

import (
	"context"

	"go-fullykiosk/application"

	"github.com/stretchr/testify/mock"
)

type MockCommandTransport struct {
	mock.Mock

	host string
}

func (m *MockCommandTransport) Execute(ctx context.Context, cmd string, params map[string]any) (application.Document, error) {
	args := m.Called(ctx, cmd, params)

	var doc application.Document
	if docInt := args.Get(0); docInt != nil {
		doc = docInt.(application.Document)
	}
	return doc, args.Error(1)
}

func (m *MockCommandTransport) ExecuteBinary(ctx context.Context, cmd string, params map[string]any) ([]byte, error) {
	args := m.Called(ctx, cmd, params)

	var data []byte
	if dataInt := args.Get(0); dataInt != nil {
		data = dataInt.([]byte)
	}
	return data, args.Error(1)
}

func (m *MockCommandTransport) Host() string {
	return m.host
}

func (m *MockCommandTransport) SetHost(host string) {
	m.Called(host)
	m.host = host
}

var _ application.CommandTransport = &MockCommandTransport{}
