package mw

import (
	"bytes"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "hotel_http_cache_lookups_total",
	Help: "Response cache lookups by result.",
}, []string{"result"})

type snapshotEntry struct {
	status int
	header http.Header
	body   []byte
}

// captureWriter tees the response body so it can be stored after the handler ran.
type captureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache keeps recent GET responses in memory. Any store write flushes
// it, so a cached listing is never older than the last change.
type ResponseCache struct {
	entries *cache.Cache
	ttl     time.Duration
	// generation moves on every flush; a response computed under an older
	// generation is served but not stored.
	generation atomic.Uint64
}

// NewResponseCache creates a cache whose entries live for ttl.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		entries: cache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// Changed implements store.ChangeListener.
func (rc *ResponseCache) Changed(string) {
	rc.generation.Add(1)
	rc.entries.Flush()
}

// Middleware caches successful GET responses by request URI.
func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if v, ok := rc.entries.Get(key); ok {
			cacheLookups.WithLabelValues("hit").Inc()
			rc.replay(c, v.(snapshotEntry))
			return
		}
		cacheLookups.WithLabelValues("miss").Inc()

		gen := rc.generation.Load()
		cw := &captureWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = cw
		c.Next()

		status := cw.Status()
		if status < 200 || status >= 300 || rc.generation.Load() != gen {
			return
		}
		rc.entries.Set(key, snapshotEntry{
			status: status,
			header: cw.Header().Clone(),
			body:   cw.buf.Bytes(),
		}, rc.ttl)
	}
}

func (rc *ResponseCache) replay(c *gin.Context, e snapshotEntry) {
	h := c.Writer.Header()
	for k, v := range e.header {
		h[k] = v
	}
	h.Set("X-Cache", "HIT")
	c.Writer.WriteHeader(e.status)
	_, _ = c.Writer.Write(e.body)
	c.Abort()
}
