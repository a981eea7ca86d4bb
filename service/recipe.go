package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"Foodgram/config"
	"Foodgram/dao"
	"Foodgram/models"
	"Foodgram/pkg/errs"
	"Foodgram/types"

	"gorm.io/gorm"
)

const maxRecipeNameLength = 200

var _ IRecipeService = (*RecipeService)(nil)

type IRecipeService interface {
	// Create 在一个事务中写入菜谱、食材用量与标签
	Create(ctx context.Context, authorID uint64, req *types.RecipeRequest) (*types.RecipeResponse, error)
	// Update 整体替换食材与标签，只有作者可以修改
	Update(ctx context.Context, userID, recipeID uint64, req *types.RecipeRequest) (*types.RecipeResponse, error)
	Delete(ctx context.Context, userID, recipeID uint64) error
	Get(ctx context.Context, viewerID, recipeID uint64) (*types.RecipeResponse, error)
	List(ctx context.Context, viewerID uint64, q *types.RecipeListQuery) ([]types.RecipeResponse, int64, error)
	Short(ctx context.Context, recipeID uint64) (*types.RecipeShort, error)
}

type RecipeService struct {
	Config          *config.Recipe
	RecipeDAO       *dao.RecipeDAO
	TagDAO          *dao.TagDAO
	IngredientDAO   *dao.IngredientDAO
	ImageService    IImageService
	RelationService IRelationService
}

// composition 通过校验、尚未落库的菜谱内容
type composition struct {
	ingredients []models.RecipeIngredient
	tags        []models.RecipeTag
	image       *DecodedImage
}

// validate 在任何写入之前完成全部校验；去重集合每次调用单独分配
func (s *RecipeService) validate(ctx context.Context, req *types.RecipeRequest, requireImage bool) (*composition, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.Validation("name", "this field is required")
	}
	if utf8.RuneCountInString(name) > maxRecipeNameLength {
		return nil, errs.Validation("name", "ensure this field has no more than %d characters", maxRecipeNameLength)
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, errs.Validation("text", "this field is required")
	}
	if req.CookingTime < s.Config.MinCookingTime {
		return nil, errs.Validation("cooking_time", "cooking time must be at least %d", s.Config.MinCookingTime)
	}

	if len(req.Ingredients) == 0 {
		return nil, errs.Validation("ingredients", "at least one ingredient is required")
	}
	seenIngredients := make(map[uint64]struct{}, len(req.Ingredients))
	ingredientIDs := make([]uint64, 0, len(req.Ingredients))
	links := make([]models.RecipeIngredient, 0, len(req.Ingredients))
	for _, item := range req.Ingredients {
		if _, dup := seenIngredients[item.ID]; dup {
			return nil, errs.Validation("ingredients", "ingredient %d is listed more than once", item.ID)
		}
		seenIngredients[item.ID] = struct{}{}
		if item.Amount < s.Config.MinAmount {
			return nil, errs.Validation("ingredients", "amount of ingredient %d must be at least %d", item.ID, s.Config.MinAmount)
		}
		ingredientIDs = append(ingredientIDs, item.ID)
		links = append(links, models.RecipeIngredient{IngredientID: item.ID, Amount: item.Amount})
	}

	if len(req.Tags) == 0 {
		return nil, errs.Validation("tags", "at least one tag is required")
	}
	seenTags := make(map[uint64]struct{}, len(req.Tags))
	tags := make([]models.RecipeTag, 0, len(req.Tags))
	for _, id := range req.Tags {
		if _, dup := seenTags[id]; dup {
			return nil, errs.Validation("tags", "tag %d is listed more than once", id)
		}
		seenTags[id] = struct{}{}
		tags = append(tags, models.RecipeTag{TagID: id})
	}

	if err := s.ensureIngredients(ctx, ingredientIDs); err != nil {
		return nil, err
	}
	if err := s.ensureTags(ctx, req.Tags); err != nil {
		return nil, err
	}

	c := &composition{ingredients: links, tags: tags}
	switch {
	case req.Image != "":
		img, err := s.ImageService.Decode(req.Image)
		if err != nil {
			return nil, err
		}
		c.image = img
	case requireImage:
		return nil, errs.Validation("image", "this field is required")
	}
	return c, nil
}

func (s *RecipeService) ensureIngredients(ctx context.Context, ids []uint64) error {
	found, err := s.IngredientDAO.FindByIds(ctx, ids)
	if err != nil {
		return err
	}
	if id, missing := firstMissing(ids, len(found), func(i int) uint64 { return found[i].ID }); missing {
		return errs.Validation("ingredients", "ingredient %d does not exist", id)
	}
	return nil
}

func (s *RecipeService) ensureTags(ctx context.Context, ids []uint64) error {
	found, err := s.TagDAO.FindByIds(ctx, ids)
	if err != nil {
		return err
	}
	if id, missing := firstMissing(ids, len(found), func(i int) uint64 { return found[i].ID }); missing {
		return errs.Validation("tags", "tag %d does not exist", id)
	}
	return nil
}

// firstMissing 返回 want 中第一个不在查询结果里的 id
func firstMissing(want []uint64, n int, idAt func(int) uint64) (uint64, bool) {
	got := make(map[uint64]struct{}, n)
	for i := 0; i < n; i++ {
		got[idAt(i)] = struct{}{}
	}
	for _, id := range want {
		if _, ok := got[id]; !ok {
			return id, true
		}
	}
	return 0, false
}

func (s *RecipeService) Create(ctx context.Context, authorID uint64, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	c, err := s.validate(ctx, req, true)
	if err != nil {
		return nil, err
	}

	url, err := s.ImageService.Store(ctx, c.image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		Image:       url,
		CookingTime: req.CookingTime,
	}
	if err := s.RecipeDAO.CreateWithAssociations(ctx, recipe, c.ingredients, c.tags); err != nil {
		s.ImageService.Remove(ctx, url)
		return nil, err
	}

	return s.Get(ctx, authorID, recipe.ID)
}

func (s *RecipeService) Update(ctx context.Context, userID, recipeID uint64, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	recipe, err := s.owned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	c, err := s.validate(ctx, req, false)
	if err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	if c.image != nil {
		url, err := s.ImageService.Store(ctx, c.image)
		if err != nil {
			return nil, err
		}
		recipe.Image = url
	}
	recipe.Name = strings.TrimSpace(req.Name)
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	if err := s.RecipeDAO.UpdateWithAssociations(ctx, recipe, c.ingredients, c.tags); err != nil {
		if c.image != nil {
			s.ImageService.Remove(ctx, recipe.Image)
		}
		return nil, err
	}
	if c.image != nil {
		s.ImageService.Remove(ctx, oldImage)
	}

	return s.Get(ctx, userID, recipe.ID)
}

func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint64) error {
	recipe, err := s.owned(ctx, userID, recipeID)
	if err != nil {
		return err
	}

	n, err := s.RecipeDAO.DeleteWithDependents(ctx, recipe.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("recipe %d not found", recipeID)
	}
	s.ImageService.Remove(ctx, recipe.Image)
	return nil
}

// owned 查询菜谱并校验调用者是作者
func (s *RecipeService) owned(ctx context.Context, userID, recipeID uint64) (*models.Recipe, error) {
	recipe, err := s.RecipeDAO.FindById(ctx, recipeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("recipe %d not found", recipeID)
	}
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, errs.Forbidden("only the author can change this recipe")
	}
	return recipe, nil
}

func (s *RecipeService) Get(ctx context.Context, viewerID, recipeID uint64) (*types.RecipeResponse, error) {
	recipe, err := s.RecipeDAO.FindDetail(ctx, recipeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("recipe %d not found", recipeID)
	}
	if err != nil {
		return nil, err
	}

	flags, err := loadViewerFlags(ctx, s.RelationService, viewerID)
	if err != nil {
		return nil, err
	}
	resp := toRecipeResponse(recipe, flags)
	return &resp, nil
}

func (s *RecipeService) List(ctx context.Context, viewerID uint64, q *types.RecipeListQuery) ([]types.RecipeResponse, int64, error) {
	q.Normalize(s.Config.PageSize)

	filter := dao.RecipeFilter{
		TagSlugs: q.Tags,
		AuthorID: q.Author,
	}
	if q.IsFavorited == 1 || q.IsInShoppingCart == 1 {
		if viewerID == 0 {
			return []types.RecipeResponse{}, 0, nil
		}
		if q.IsFavorited == 1 {
			filter.FavoritedBy = viewerID
		}
		if q.IsInShoppingCart == 1 {
			filter.InCartOf = viewerID
		}
	}

	recipes, total, err := s.RecipeDAO.List(ctx, filter, q.Offset(), q.Limit)
	if err != nil {
		return nil, 0, err
	}

	flags, err := loadViewerFlags(ctx, s.RelationService, viewerID)
	if err != nil {
		return nil, 0, err
	}
	items := make([]types.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, toRecipeResponse(r, flags))
	}
	return items, total, nil
}

func (s *RecipeService) Short(ctx context.Context, recipeID uint64) (*types.RecipeShort, error) {
	recipe, err := s.RecipeDAO.FindById(ctx, recipeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("recipe %d not found", recipeID)
	}
	if err != nil {
		return nil, err
	}
	short := toRecipeShort(recipe)
	return &short, nil
}
