package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/context_manager"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderRequestID = "X-Request-ID"

	requestIDKey = "request_id"
)

// requestID tags every request so log lines and error bodies line up.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(context_manager.SetRequestContext(c.Request.Context(), id))
		c.Next()
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if uid := context_manager.GetUserContext(c.Request.Context()); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("http request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// authenticate trusts the identity headers set by the auth proxy and makes
// sure a profile exists for the caller.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.Next()
			return
		}
		ctx := context_manager.SetUserContext(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)

		if _, err := h.users.EnsureProfile(ctx, context_manager.GetUserContext(ctx), c.GetHeader(HeaderUserEmail)); err != nil {
			h.fail(c, err)
			return
		}
		c.Next()
	}
}

func (h *Handler) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == "" {
			h.fail(c, errs.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// rateLimit caps requests per caller on a route group. Limiter errors fail open.
func (h *Handler) rateLimit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := currentUser(c)
		if subject == "" {
			subject = c.ClientIP()
		}
		d, err := h.limiter.Allow(c.Request.Context(), scope, subject)
		if err != nil {
			h.log.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if d.Remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		}
		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(d.ResetIn.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{
				Error:     "too many requests",
				RequestID: c.GetString(requestIDKey),
			})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return context_manager.GetUserContext(c.Request.Context())
}
