package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// Upstream forwards requests for one backend service.
type Upstream struct {
	name  string
	proxy *httputil.ReverseProxy
}

func NewUpstream(name, baseURL string) *Upstream {
	target, err := url.Parse(baseURL)
	if err != nil {
		log.Fatalf("[gateway] bad %s url %q: %v", name, baseURL, err)
	}
	p := httputil.NewSingleHostReverseProxy(target)
	p.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("[gateway] %s: %v", name, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, `{"error":"upstream unavailable"}`)
	}
	return &Upstream{name: name, proxy: p}
}

// Handler relays the incoming request to the upstream unchanged.
func (u *Upstream) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u.proxy.ServeHTTP(c.Writer, c.Request)
	}
}

// CountClient pulls numeric counters from backend count endpoints.
type CountClient struct {
	hc *http.Client
}

func NewCountClient(timeout time.Duration) *CountClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CountClient{hc: &http.Client{Timeout: timeout}}
}

// Count fetches a {"count": n} payload. Failures come back as errors so the
// caller can decide the fallback.
func (c *CountClient) Count(url string) (int64, error) {
	resp, err := c.hc.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	var body struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Count, nil
}
