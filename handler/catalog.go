package handler

import (
	"Foodgram/pkg/context"
	"Foodgram/pkg/response"
	"Foodgram/service"
	"Foodgram/types"

	"github.com/gin-gonic/gin"
)

type Tag struct {
	TagService service.ITagService
}

func (h *Tag) RegisterRouter(r gin.IRouter) {
	g := r.Group("/tags")
	g.GET("", context.Wrap(h.List))
	g.GET("/:id", context.Wrap(h.Get))
}

func (h *Tag) List(c *gin.Context) error {
	tags, err := h.TagService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, tags)
	return nil
}

func (h *Tag) Get(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tag, err := h.TagService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, tag)
	return nil
}

type Ingredient struct {
	IngredientService service.IIngredientService
}

func (h *Ingredient) RegisterRouter(r gin.IRouter) {
	g := r.Group("/ingredients")
	g.GET("", context.Wrap(h.List))
	g.GET("/:id", context.Wrap(h.Get))
}

// List ?name= 按名称前缀搜索，不分页
func (h *Ingredient) List(c *gin.Context) error {
	var q types.IngredientQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	items, err := h.IngredientService.Search(c.Request.Context(), q.Name)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *Ingredient) Get(c *gin.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ingredient, err := h.IngredientService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, ingredient)
	return nil
}
