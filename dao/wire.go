//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewTagDAO,
	NewIngredientDAO,
	NewRecipeDAO,
	NewFavoriteDAO,
	NewShoppingCartDAO,
	NewFollowDAO,
)
