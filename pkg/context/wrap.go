package context

import (
	"errors"
	"net/http"

	"Foodgram/pkg/errs"
	"Foodgram/pkg/log"
	"Foodgram/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID         = "user_id"
	CtxTokenID        = "token_id"
	CtxTokenExpiresAt = "token_expires_at"
)

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var se *errs.Error
			if errors.As(err, &se) {
				status := response.StatusOf(se.Kind)
				if status == http.StatusInternalServerError {
					log.L.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
				}
				c.JSON(status, response.Response{
					Code: status,
					Msg:  se.Message,
					Data: response.FieldError{Field: se.Field, Kind: se.Kind.String()},
				})
				return
			}

			log.L.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: http.StatusInternalServerError,
				Msg:  "internal server error",
			})
		}
	}
}

// GetUserID returns the authenticated caller. Handlers behind middleware.Auth can rely on it.
func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errs.Unauthorized("authentication credentials were not provided")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errs.Unauthorized("invalid user_id in context")
	}

	return uid, nil
}

// ViewerID returns the caller id or 0 for anonymous requests.
func ViewerID(c *gin.Context) uint64 {
	uid, err := GetUserID(c)
	if err != nil {
		return 0
	}
	return uid
}
