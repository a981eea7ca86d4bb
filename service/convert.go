package service

import (
	"context"

	"Foodgram/models"
	"Foodgram/types"
)

// viewerFlags 当前用户的收藏、购物车、关注集合，匿名用户全部为空
type viewerFlags struct {
	favorites map[uint64]struct{}
	cart      map[uint64]struct{}
	follows   map[uint64]struct{}
}

func loadViewerFlags(ctx context.Context, rel IRelationService, viewerID uint64) (*viewerFlags, error) {
	favorites, err := rel.TargetSet(ctx, RelationFavorite, viewerID)
	if err != nil {
		return nil, err
	}
	cart, err := rel.TargetSet(ctx, RelationShoppingCart, viewerID)
	if err != nil {
		return nil, err
	}
	follows, err := rel.TargetSet(ctx, RelationFollow, viewerID)
	if err != nil {
		return nil, err
	}
	return &viewerFlags{favorites: favorites, cart: cart, follows: follows}, nil
}

func (f *viewerFlags) following(authorID uint64) bool {
	_, ok := f.follows[authorID]
	return ok
}

func toUserResponse(u *models.User, subscribed bool) types.UserResponse {
	return types.UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func toTagResponse(t *models.Tag) types.TagResponse {
	return types.TagResponse{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

func toIngredientResponse(i *models.Ingredient) types.IngredientResponse {
	return types.IngredientResponse{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

func toRecipeShort(r *models.Recipe) types.RecipeShort {
	return types.RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// toRecipeResponse 需要 Author、Ingredients.Ingredient、Tags.Tag 已预加载
func toRecipeResponse(r *models.Recipe, flags *viewerFlags) types.RecipeResponse {
	resp := types.RecipeResponse{
		ID:          r.ID,
		Tags:        make([]types.TagResponse, 0, len(r.Tags)),
		Ingredients: make([]types.RecipeIngredientResponse, 0, len(r.Ingredients)),
		Name:        r.Name,
		Image:       r.Image,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		PubDate:     r.PubDate,
	}
	if r.Author != nil {
		resp.Author = toUserResponse(r.Author, flags.following(r.AuthorID))
	}
	for _, link := range r.Tags {
		if link.Tag != nil {
			resp.Tags = append(resp.Tags, toTagResponse(link.Tag))
		}
	}
	for _, link := range r.Ingredients {
		if link.Ingredient == nil {
			continue
		}
		resp.Ingredients = append(resp.Ingredients, types.RecipeIngredientResponse{
			ID:              link.Ingredient.ID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}
	_, resp.IsFavorited = flags.favorites[r.ID]
	_, resp.IsInShoppingCart = flags.cart[r.ID]
	return resp
}
