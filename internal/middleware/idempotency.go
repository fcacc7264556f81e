package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-registry/internal/handler"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type IdempotencyConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

type storedResponse struct {
	status      int
	contentType string
	body        []byte
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first response to a POST carrying an
// Idempotency-Key. Keys are scoped by method and path. Concurrent requests
// with the same key are serialized so only one reaches the handler.
type Idempotency struct {
	responses *cache.Cache
	mu        sync.Mutex
	locks     *cache.Cache
}

func NewIdempotency(config IdempotencyConfig) *Idempotency {
	if config.TTL <= 0 {
		config.TTL = 24 * time.Hour
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Hour
	}
	return &Idempotency{
		responses: cache.New(config.TTL, config.CleanupInterval),
		locks:     cache.New(config.TTL, config.CleanupInterval),
	}
}

func (i *Idempotency) lockFor(key string) *sync.Mutex {
	i.mu.Lock()
	defer i.mu.Unlock()
	if l, ok := i.locks.Get(key); ok {
		return l.(*sync.Mutex)
	}
	l := &sync.Mutex{}
	i.locks.Set(key, l, cache.DefaultExpiration)
	return l
}

func (i *Idempotency) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		key = c.Request.Method + " " + c.Request.URL.Path + " " + key

		mu := i.lockFor(key)
		mu.Lock()
		defer mu.Unlock()

		if cached, ok := i.responses.Get(key); ok {
			resp := cached.(*storedResponse)
			c.Header("Idempotent-Replayed", "true")
			c.Data(resp.status, resp.contentType, resp.body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		// Render pending handler errors here so the stored body is complete.
		if len(c.Errors) > 0 && !w.Written() {
			handler.RespondError(c, c.Errors.Last().Err)
		}

		// Server errors are not remembered so the client can retry.
		if w.Status() >= http.StatusInternalServerError {
			return
		}
		i.responses.Set(key, &storedResponse{
			status:      w.Status(),
			contentType: w.Header().Get("Content-Type"),
			body:        w.body.Bytes(),
		}, cache.DefaultExpiration)
	}
}
