package handler

import (
	"bytes"
	"net/http"

	"Foodgram/middleware"
	"Foodgram/pkg/context"
	"Foodgram/pkg/response"
	"Foodgram/service"
	"Foodgram/types"

	"github.com/gin-gonic/gin"
)

type Recipe struct {
	AuthService     service.IAuthService
	RecipeService   service.IRecipeService
	RelationService service.IRelationService
	ShoppingService service.IShoppingService
}

func (h *Recipe) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(h.AuthService)
	optional := middleware.OptionalAuth(h.AuthService)

	g := r.Group("/recipes")
	g.GET("", optional, context.Wrap(h.List))
	g.POST("", authorize, context.Wrap(h.Create))
	g.GET("/download_shopping_cart", authorize, context.Wrap(h.DownloadShoppingCart))
	g.GET("/:id", optional, context.Wrap(h.Get))
	g.PATCH("/:id", authorize, context.Wrap(h.Update))
	g.DELETE("/:id", authorize, context.Wrap(h.Delete))

	g.POST("/:id/favorite", authorize, context.Wrap(h.toggle(service.RelationFavorite, true)))
	g.DELETE("/:id/favorite", authorize, context.Wrap(h.toggle(service.RelationFavorite, false)))
	g.POST("/:id/shopping_cart", authorize, context.Wrap(h.toggle(service.RelationShoppingCart, true)))
	g.DELETE("/:id/shopping_cart", authorize, context.Wrap(h.toggle(service.RelationShoppingCart, false)))
}

// List 菜谱列表，支持 tags / author / is_favorited / is_in_shopping_cart 过滤
func (h *Recipe) List(c *gin.Context) error {
	var q types.RecipeListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	items, total, err := h.RecipeService.List(c.Request.Context(), context.ViewerID(c), &q)
	if err != nil {
		return err
	}
	response.Success(c, newPage(c, q.PageQuery, total, items))
	return nil
}

func (h *Recipe) Get(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	recipe, err := h.RecipeService.Get(c.Request.Context(), context.ViewerID(c), id)
	if err != nil {
		return err
	}
	response.Success(c, recipe)
	return nil
}

func (h *Recipe) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.RecipeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	recipe, err := h.RecipeService.Create(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Created(c, recipe)
	return nil
}

func (h *Recipe) Update(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req types.RecipeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	recipe, err := h.RecipeService.Update(c.Request.Context(), uid, id, &req)
	if err != nil {
		return err
	}
	response.Success(c, recipe)
	return nil
}

func (h *Recipe) Delete(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.RecipeService.Delete(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}

// toggle 收藏 / 购物车的加入与移除
func (h *Recipe) toggle(kind service.RelationKind, add bool) func(*gin.Context) error {
	return func(c *gin.Context) error {
		uid, err := context.GetUserID(c)
		if err != nil {
			return err
		}
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request.Context()
		if !add {
			if err := h.RelationService.Remove(ctx, kind, uid, id); err != nil {
				return err
			}
			response.NoContent(c)
			return nil
		}

		if err := h.RelationService.Add(ctx, kind, uid, id); err != nil {
			return err
		}
		short, err := h.RecipeService.Short(ctx, id)
		if err != nil {
			return err
		}
		response.Created(c, short)
		return nil
	}
}

// DownloadShoppingCart 下载购物清单，?format=pdf 输出 PDF，默认纯文本
func (h *Recipe) DownloadShoppingCart(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	contentType, filename, err := h.ShoppingService.Download(c.Request.Context(), uid, c.Query("format"), &buf)
	if err != nil {
		return err
	}
	c.Header("Content-Disposition", attachment(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
	return nil
}
