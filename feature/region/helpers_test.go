package region_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"masterdata-monitor/core/probe"
)

// scriptedProber answers from a URL keyed table and 404s everything else.
type scriptedProber struct {
	mu        sync.Mutex
	responses map[string]*probe.Response
	calls     []probe.Request
}

func newScripted() *scriptedProber {
	return &scriptedProber{responses: make(map[string]*probe.Response)}
}

func (s *scriptedProber) ok(url string) *scriptedProber {
	return s.body(url, "")
}

func (s *scriptedProber) body(url, body string) *scriptedProber {
	s.responses[url] = &probe.Response{StatusCode: http.StatusOK, Body: []byte(body)}
	return s
}

func (s *scriptedProber) status(url string, code int) *scriptedProber {
	s.responses[url] = &probe.Response{StatusCode: code}
	return s
}

func (s *scriptedProber) Probe(_ context.Context, req probe.Request) (*probe.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if res, ok := s.responses[req.URL()]; ok {
		return res, nil
	}
	return &probe.Response{StatusCode: http.StatusNotFound}, nil
}

func (s *scriptedProber) Stream(context.Context, probe.Request, io.Writer) (int64, error) {
	return 0, errors.New("stream not scripted")
}

func (s *scriptedProber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
