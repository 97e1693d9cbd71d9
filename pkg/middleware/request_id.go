package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sweet-shop/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the gin context key for request ID
	RequestIDContextKey = "request_id"
	// requestIDProvidedKey marks ids supplied by the client rather than generated
	requestIDProvidedKey = "request_id_provided"
)

var ErrRequestIDNotFound = errors.New("request ID not found")

// StoredResponse is a replayable API response
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// RequestIDStore stores responses of processed requests for idempotency
type RequestIDStore interface {
	Store(ctx context.Context, requestID string, response StoredResponse, ttl time.Duration) error
	Get(ctx context.Context, requestID string) (StoredResponse, error)
}

// CacheRequestIDStore keeps responses in a cache.Cache, so replays survive
// across instances when the cache is Redis
type CacheRequestIDStore struct {
	cache cache.Cache
}

func NewCacheRequestIDStore(c cache.Cache) *CacheRequestIDStore {
	return &CacheRequestIDStore{cache: c}
}

func (s *CacheRequestIDStore) Store(ctx context.Context, requestID string, response StoredResponse, ttl time.Duration) error {
	return cache.SetJSON(ctx, s.cache, cache.RequestKey(requestID), response, ttl)
}

func (s *CacheRequestIDStore) Get(ctx context.Context, requestID string) (StoredResponse, error) {
	var response StoredResponse
	err := cache.GetJSON(ctx, s.cache, cache.RequestKey(requestID), &response)
	if errors.Is(err, cache.ErrCacheMiss) {
		return StoredResponse{}, ErrRequestIDNotFound
	}
	return response, err
}

// RequestIDMiddleware extracts or generates X-Request-ID header
func RequestIDMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		provided := requestID != ""
		if !provided {
			requestID = uuid.New().String()
			logger.Debug("Generated new request ID",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
			)
		}

		c.Set(RequestIDContextKey, requestID)
		c.Set(requestIDProvidedKey, provided)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}

// RequestIDFromContext retrieves the request ID from a request context
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// IdempotencyMiddleware replays the stored response when a write request
// repeats a client supplied X-Request-ID, and stores 2xx responses of new
// ones for ttl. Store failures never fail the request.
func IdempotencyMiddleware(store RequestIDStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) || !c.GetBool(requestIDProvidedKey) {
			c.Next()
			return
		}

		requestID := GetRequestID(c)
		key := idempotencyKey(c.Request.Method, c.Request.URL.Path, requestID)
		cached, err := store.Get(c.Request.Context(), key)
		switch {
		case err == nil:
			logger.Info("Duplicate request detected, returning cached response",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.Status, cached.ContentType, cached.Body)
			c.Abort()
			return
		case !errors.Is(err, ErrRequestIDNotFound):
			logger.Warn("Error reading stored response",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}

		writer := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices || len(writer.body) == 0 {
			return
		}

		response := StoredResponse{
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body,
		}
		if err := store.Store(c.Request.Context(), key, response, ttl); err != nil {
			logger.Warn("Failed to store response for idempotency",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
	}
}

// idempotencyKey scopes a request id to one endpoint, so reusing an id on
// another route runs that route
func idempotencyKey(method, path, requestID string) string {
	return method + " " + path + " " + requestID
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
