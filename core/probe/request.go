package probe

import (
	"net/http"
	"net/url"
)

// Request describes one outbound call.
type Request struct {
	Scheme string
	Host   string
	Path   string
	Method string
	Header map[string]string
	// Download asks for the response body to be read and returned.
	Download bool
}

// Response is the outcome of a Probe.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response status is 200.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// Get builds a status-only GET request.
func Get(scheme, host, path string) Request {
	return Request{Scheme: scheme, Host: host, Path: path, Method: http.MethodGet}
}

// Fetch builds a GET request that reads the body.
func Fetch(scheme, host, path string) Request {
	r := Get(scheme, host, path)
	r.Download = true
	return r
}

// FromURL builds a body-reading GET request from an absolute URL.
func FromURL(raw string) (Request, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Request{}, err
	}
	return Fetch(u.Scheme, u.Host, u.RequestURI()), nil
}

// URL returns the absolute URL of the request.
func (r Request) URL() string {
	scheme := r.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.Path
}
