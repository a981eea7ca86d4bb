package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"Foodgram/pkg/errs"
	"Foodgram/pkg/jwt"
	"Foodgram/pkg/log"
	"Foodgram/pkg/response"

	pkgctx "Foodgram/pkg/context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator 解析 token 并校验是否已注销
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// Auth 必须登录
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}

		claims, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortAuth(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth 匿名请求直接放行；带了 token 就必须有效
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := bearer(header)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortAuth(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// bearer 支持 "Bearer <jwt>" 与 "Token <jwt>"
func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || token == "" {
		return "", false
	}
	if scheme != "Bearer" && scheme != "Token" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(pkgctx.CtxUserID, claims.UserID)
	c.Set(pkgctx.CtxTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(pkgctx.CtxTokenExpiresAt, claims.ExpiresAt.Time)
	}
}

func abortAuth(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) && e.Kind == errs.KindUnauthorized {
		response.Abort(c, http.StatusUnauthorized, e.Message)
		return
	}
	log.L.Error("authenticate failed", zap.Error(err))
	response.Abort(c, http.StatusInternalServerError, "internal server error")
}
