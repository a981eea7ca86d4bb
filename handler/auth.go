package handler

import (
	"time"

	"Foodgram/middleware"
	"Foodgram/pkg/context"
	"Foodgram/pkg/errs"
	"Foodgram/pkg/response"
	"Foodgram/service"
	"Foodgram/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	AuthService service.IAuthService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(u.AuthService)
	auth := r.Group("/auth/token")
	auth.POST("/login", context.Wrap(u.Login))              // 登录
	auth.POST("/logout", authorize, context.Wrap(u.Logout)) // 注销
}

func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	token, err := u.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, token)
	return nil
}

func (u *Auth) Logout(c *gin.Context) error {
	tokenID := c.GetString(context.CtxTokenID)
	expiresAt := c.GetTime(context.CtxTokenExpiresAt)
	if tokenID == "" {
		return errs.Unauthorized("authentication credentials were not provided")
	}
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(24 * time.Hour)
	}

	if err := u.AuthService.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}
