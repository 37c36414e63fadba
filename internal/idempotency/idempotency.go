// Package idempotency makes retried POST requests safe by replaying the first response.
package idempotency

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chris7683/CAEAPP/pkg/errorspkg"
	"github.com/chris7683/CAEAPP/pkg/web"
)

// Header names.
const (
	HeaderKey = "Idempotency-Key"
	HeaderHit = "X-Idempotency-Hit"
)

const (
	keyPrefix    = "idempotency:"
	pending      = "pending"
	maxKeyLength = 255

	// pendingTTL bounds how long a claim outlives a crashed process.
	pendingTTL = time.Minute
)

// Errors returned to clients.
var (
	ErrInProgress = errors.New("a request with the same idempotency key is in progress")
	ErrKeyTooLong = errors.New("idempotency key is too long")
)

type record struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store keeps responses of idempotent requests in redis.
type Store struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// New returns a Store keeping responses for ttl.
func New(rdb redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) claimTTL() time.Duration {
	return min(s.ttl, pendingTTL)
}

func (s *Store) release(ctx context.Context, redisKey string) {
	if err := s.rdb.Del(context.WithoutCancel(ctx), redisKey).Err(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("release idempotency key")
	}
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware handles requests carrying the Idempotency-Key header.
//
// The first request with a key claims it and runs the handler. Its response is stored unless
// it is a server error, so that a later retry can succeed. Repeated requests get the stored
// response with X-Idempotency-Hit set, or 409 while the first one is still running.
// A claim expires after a minute if the process dies, and is released at once if the
// handler panics.
// scope namespaces keys, normally by the requesting user.
func (s *Store) Middleware(scope func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderKey)
		if key == "" {
			c.Next()
			return
		}

		if len(key) > maxKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, web.Error(ErrKeyTooLong))
			return
		}

		ctx := c.Request.Context()
		l := zerolog.Ctx(ctx)
		redisKey := keyPrefix + scope(c) + ":" + key

		claimed, err := s.rdb.SetNX(ctx, redisKey, pending, s.claimTTL()).Result()
		if err != nil {
			l.Error().Err(err).Msg("claim idempotency key")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, web.Error(errorspkg.ErrUnavailable))

			return
		}

		if !claimed {
			s.replay(c, redisKey)
			return
		}

		w := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = w

		defer func() {
			if r := recover(); r != nil {
				s.release(ctx, redisKey)
				panic(r)
			}
		}()

		c.Next()

		// the response is already sent, keep the key bookkeeping alive
		ctx = context.WithoutCancel(ctx)

		if w.Status() >= http.StatusInternalServerError {
			s.release(ctx, redisKey)
			return
		}

		rec, err := json.Marshal(record{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		})
		if err != nil {
			l.Error().Err(err).Msg("encode idempotent response")
			return
		}

		if err := s.rdb.Set(ctx, redisKey, rec, s.ttl).Err(); err != nil {
			l.Error().Err(err).Msg("store idempotent response")
		}
	}
}

func (s *Store) replay(c *gin.Context, redisKey string) {
	ctx := c.Request.Context()
	l := zerolog.Ctx(ctx)

	val, err := s.rdb.Get(ctx, redisKey).Bytes()

	switch {
	case errors.Is(err, redis.Nil), err == nil && string(val) == pending:
		c.AbortWithStatusJSON(http.StatusConflict, web.Error(ErrInProgress))
		return
	case err != nil:
		l.Error().Err(err).Msg("load idempotent response")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, web.Error(errorspkg.ErrUnavailable))

		return
	}

	var rec record
	if err := json.Unmarshal(val, &rec); err != nil {
		l.Error().Err(err).Msg("decode idempotent response")
		c.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	c.Header(HeaderHit, "true")
	c.Data(rec.Status, rec.ContentType, rec.Body)
	c.Abort()
}
