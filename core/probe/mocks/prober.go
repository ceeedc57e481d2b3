package mocks

import (
	"context"
	"io"

	"masterdata-monitor/core/probe"

	"github.com/stretchr/testify/mock"
)

// Prober is a mock implementation of probe.Prober
type Prober struct {
	mock.Mock
}

func (m *Prober) Probe(ctx context.Context, req probe.Request) (*probe.Response, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*probe.Response); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Prober) Stream(ctx context.Context, req probe.Request, w io.Writer) (int64, error) {
	args := m.Called(ctx, req, w)
	if body, ok := args.Get(0).(string); ok && args.Error(1) == nil {
		n, err := io.WriteString(w, body)
		return int64(n), err
	}
	return 0, args.Error(1)
}
