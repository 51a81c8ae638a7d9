package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/internal/interfaces/http/response"
	"startup-directory.backend/pkg/logger"
	"startup-directory.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayHeader      = "X-Idempotency-Replayed"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
	maxKeyLength     = 128
)

var (
	redisReady = func() bool { return redis.GetClient() != nil }
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware makes a retried POST with the same Idempotency-Key run once.
// A request arriving while the first is still running gets 409; after it completes
// the stored response is replayed. Failed requests release the key.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || !redisReady() {
			c.Next()
			return
		}
		if len(key) > maxKeyLength {
			response.Abort(c, domainerrors.BadRequest(fmt.Sprintf("%s must be at most %d characters", IdempotencyHeader, maxKeyLength)))
			return
		}

		ctx := c.Request.Context()
		storageKey := idempotencyStorageKey(c, key)

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency store unavailable, processing without it", zap.Error(err))
			c.Next()
			return
		}

		if !acquired {
			replay(c, storageKey)
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			_ = redisDel(ctx, storageKey)
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        w.body.String(),
		})
		if err == nil {
			err = redisSet(ctx, storageKey, string(payload), RetentionDuration)
		}
		if err != nil {
			logger.Warn(ctx, "Failed to store idempotent response", zap.String("key", storageKey), zap.Error(err))
		}
	}
}

func replay(c *gin.Context, storageKey string) {
	val, err := redisGet(c.Request.Context(), storageKey)
	if err != nil && !redis.IsNil(err) {
		logger.Warn(c.Request.Context(), "Failed to read idempotent response", zap.Error(err))
	}
	if err != nil || val == processingMarker {
		response.Abort(c, domainerrors.Conflict("a request with this idempotency key is already in progress"))
		return
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		response.Abort(c, domainerrors.Conflict("a request with this idempotency key is already in progress"))
		return
	}

	contentType := stored.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Header(ReplayHeader, "true")
	c.Data(stored.Status, contentType, []byte(stored.Body))
	c.Abort()
}

// idempotencyStorageKey scopes the key to the caller so two clients cannot
// collide on the same header value.
func idempotencyStorageKey(c *gin.Context, key string) string {
	scope := c.ClientIP()
	if auth := GetAuthContext(c); auth.Authenticated {
		scope = auth.UserID.String()
	}
	return fmt.Sprintf("idempotency:%s:%s:%s", c.FullPath(), scope, key)
}
