// Package proxy forwards portfolio content requests (projects, experiences,
// certifications) to a pool of backends in round-robin order.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync/atomic"

	Logger "portfolio-api/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// strippedHeaders never reach a backend.
var strippedHeaders = []string{
	"Cookie",
	"Pragma",
	"Referer",
	"User-Agent",
	"X-Forwarded-For",
	"X-Forwarded-Host",
	"X-Forwarded-Port",
	"X-Forwarded-Proto",
	"Sec-Fetch-Site",
	"Sec-Fetch-Mode",
	"Sec-Fetch-Dest",
	"Sec-Ch-Ua",
	"Sec-Ch-Ua-Mobile",
	"Sec-Ch-Ua-Platform",
}

// Balancer picks backends in turn.
type Balancer struct {
	targets []*url.URL
	next    uint64
	proxy   *httputil.ReverseProxy
}

// New parses backends. At least one is required.
func New(backends []string) (*Balancer, error) {
	if len(backends) == 0 {
		return nil, errors.New("proxy: no backends configured")
	}
	b := &Balancer{}
	for _, raw := range backends {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.Errorf("proxy: invalid backend %q", raw)
		}
		b.targets = append(b.targets, u)
	}
	b.proxy = &httputil.ReverseProxy{
		Rewrite:      b.rewrite,
		ErrorHandler: errorHandler,
	}
	return b, nil
}

// Next returns the backend for the next request.
func (b *Balancer) Next() *url.URL {
	n := atomic.AddUint64(&b.next, 1) - 1
	return b.targets[n%uint64(len(b.targets))]
}

func (b *Balancer) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(b.Next())
	pr.Out.Host = pr.Out.URL.Host
	for _, h := range strippedHeaders {
		pr.Out.Header.Del(h)
	}
}

// Handler serves /api/proxy/*path by forwarding to /api/<path> on the next
// backend, keeping the query string.
func (b *Balancer) Handler(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request.Clone(c.Request.Context())
		req.URL.Path = "/api/" + strings.TrimPrefix(c.Param(param), "/")
		req.URL.RawPath = ""
		b.proxy.ServeHTTP(c.Writer, req)
	}
}

func errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	Logger.Log.WithError(err).WithField("path", r.URL.Path).Error("proxy request")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte(`{"success":false,"error":"Failed to reach backend"}`))
}
