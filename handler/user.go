package handler

import (
	"Foodgram/middleware"
	"Foodgram/pkg/context"
	"Foodgram/pkg/response"
	"Foodgram/service"
	"Foodgram/types"

	"github.com/gin-gonic/gin"
)

type User struct {
	AuthService     service.IAuthService
	UserService     service.IUserService
	RelationService service.IRelationService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(u.AuthService)
	optional := middleware.OptionalAuth(u.AuthService)

	g := r.Group("/users")
	g.POST("", context.Wrap(u.Register))                               // 注册
	g.GET("", optional, context.Wrap(u.List))                          // 用户列表
	g.GET("/me", authorize, context.Wrap(u.Me))                        // 当前用户
	g.PATCH("/me", authorize, context.Wrap(u.UpdateMe))                // 修改资料
	g.POST("/set_password", authorize, context.Wrap(u.SetPassword))    // 修改密码
	g.GET("/subscriptions", authorize, context.Wrap(u.Subscriptions))  // 我的订阅
	g.GET("/:id", optional, context.Wrap(u.Get))                       // 用户详情
	g.POST("/:id/subscribe", authorize, context.Wrap(u.Subscribe))     // 订阅作者
	g.DELETE("/:id/subscribe", authorize, context.Wrap(u.Unsubscribe)) // 取消订阅
}

func (u *User) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	created, err := u.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, created)
	return nil
}

func (u *User) List(c *gin.Context) error {
	var q types.PageQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	items, total, err := u.UserService.List(c.Request.Context(), context.ViewerID(c), &q)
	if err != nil {
		return err
	}
	response.Success(c, newPage(c, q, total, items))
	return nil
}

func (u *User) Me(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	me, err := u.UserService.Get(c.Request.Context(), uid, uid)
	if err != nil {
		return err
	}
	response.Success(c, me)
	return nil
}

func (u *User) UpdateMe(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.UpdateMeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	me, err := u.UserService.UpdateMe(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Success(c, me)
	return nil
}

func (u *User) Get(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := u.UserService.Get(c.Request.Context(), context.ViewerID(c), id)
	if err != nil {
		return err
	}
	response.Success(c, user)
	return nil
}

func (u *User) SetPassword(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.SetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := u.UserService.SetPassword(c.Request.Context(), uid, &req); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}

func (u *User) Subscriptions(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var q types.SubscriptionQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	items, total, err := u.UserService.Subscriptions(c.Request.Context(), uid, &q)
	if err != nil {
		return err
	}
	response.Success(c, newPage(c, q.PageQuery, total, items))
	return nil
}

func (u *User) Subscribe(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	authorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var q types.RecipesLimitQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	ctx := c.Request.Context()
	if err := u.RelationService.Add(ctx, service.RelationFollow, uid, authorID); err != nil {
		return err
	}
	sub, err := u.UserService.Subscription(ctx, uid, authorID, q.RecipesLimit)
	if err != nil {
		return err
	}
	response.Created(c, sub)
	return nil
}

func (u *User) Unsubscribe(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	authorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := u.RelationService.Remove(c.Request.Context(), service.RelationFollow, uid, authorID); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}
