package httpapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/hertz-contrib/cors"

	"github.com/akarpov/miniblog/internal/common"
	"github.com/akarpov/miniblog/internal/server/models"
)

// identityKey is the request-context key under which the Basic auth
// middleware stores the authenticated identity.
const identityKey = "identity"

// requestLogMiddleware logs one structured line per handled request.
func (s *Server) requestLogMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		s.logger.Info(ctx, "request",
			"status", c.Response.StatusCode(),
			"latency", time.Since(start).String(),
			"method", string(c.Method()),
			"path", string(c.Path()),
		)
	}
}

// recoveryMiddleware converts handler panics into generic 500 responses.
// The panic and stack are logged server-side only.
func (s *Server) recoveryMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(ctx, "panic recovered",
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(500, utils.H{"error": "internal server error"})
			}
		}()
		c.Next(ctx)
	}
}

func corsMiddleware() app.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	})
}

// basicAuthMiddleware resolves the Authorization header to an identity via
// the auth gate. Unknown username and wrong password produce an identical
// 401 so usernames cannot be enumerated; the internal reason is not even
// logged at error level.
func (s *Server) basicAuthMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		username, password, ok := parseBasicAuth(string(c.GetHeader("Authorization")))
		if !ok {
			unauthorized(c)
			return
		}

		ident, err := s.users.Authenticate(ctx, username, password)
		if err != nil {
			if errors.Is(err, common.ErrIncorrectUsername) || errors.Is(err, common.ErrIncorrectPassword) {
				unauthorized(c)
				return
			}
			s.logger.Error(ctx, "auth gate failure", "error", err.Error())
			c.AbortWithStatusJSON(500, utils.H{"error": "internal server error"})
			return
		}

		c.Set(identityKey, ident)
		c.Next(ctx)
	}
}

func unauthorized(c *app.RequestContext) {
	c.Header("WWW-Authenticate", `Basic realm="posts"`)
	c.AbortWithStatusJSON(401, utils.H{"error": "unauthorized"})
}

func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	return strings.Cut(string(decoded), ":")
}

// identityFromContext returns the identity stored by basicAuthMiddleware.
func identityFromContext(c *app.RequestContext) (*models.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	ident, ok := v.(*models.Identity)
	return ident, ok
}
