package service

import (
	"context"
	"errors"
	"strings"

	"Foodgram/dao"
	"Foodgram/pkg/errs"
	"Foodgram/types"

	"gorm.io/gorm"
)

var _ ITagService = (*TagService)(nil)

type ITagService interface {
	List(ctx context.Context) ([]types.TagResponse, error)
	Get(ctx context.Context, id uint64) (*types.TagResponse, error)
}

type TagService struct {
	TagDAO *dao.TagDAO
}

func (s *TagService) List(ctx context.Context) ([]types.TagResponse, error) {
	tags, err := s.TagDAO.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.TagResponse, 0, len(tags))
	for _, t := range tags {
		items = append(items, toTagResponse(t))
	}
	return items, nil
}

func (s *TagService) Get(ctx context.Context, id uint64) (*types.TagResponse, error) {
	tag, err := s.TagDAO.FindById(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("tag %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	resp := toTagResponse(tag)
	return &resp, nil
}

var _ IIngredientService = (*IngredientService)(nil)

type IIngredientService interface {
	// Search 名称前缀匹配，不区分大小写
	Search(ctx context.Context, name string) ([]types.IngredientResponse, error)
	Get(ctx context.Context, id uint64) (*types.IngredientResponse, error)
}

type IngredientService struct {
	IngredientDAO *dao.IngredientDAO
}

func (s *IngredientService) Search(ctx context.Context, name string) ([]types.IngredientResponse, error) {
	ingredients, err := s.IngredientDAO.Search(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	items := make([]types.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		items = append(items, toIngredientResponse(i))
	}
	return items, nil
}

func (s *IngredientService) Get(ctx context.Context, id uint64) (*types.IngredientResponse, error) {
	ingredient, err := s.IngredientDAO.FindById(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("ingredient %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	resp := toIngredientResponse(ingredient)
	return &resp, nil
}
