package types

import "time"

type RecipeIngredientInput struct {
	ID     uint64 `json:"id"`
	Amount int    `json:"amount"`
}

// RecipeRequest 创建与修改菜谱共用；修改时 image 为空表示保留原图
type RecipeRequest struct {
	Ingredients []RecipeIngredientInput `json:"ingredients"`
	Tags        []uint64                `json:"tags"`
	Image       string                  `json:"image"`
	Name        string                  `json:"name"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time"`
}

type RecipeIngredientResponse struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               uint64                     `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	PubDate          time.Time                  `json:"pub_date"`
}

// RecipeShort 收藏、购物车、订阅列表中的简略菜谱
type RecipeShort struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeListQuery 列表过滤：tags 为 slug，可多选
type RecipeListQuery struct {
	PageQuery
	Tags             []string `form:"tags"`
	Author           uint64   `form:"author"`
	IsFavorited      int      `form:"is_favorited" binding:"oneof=0 1"`
	IsInShoppingCart int      `form:"is_in_shopping_cart" binding:"oneof=0 1"`
}

// ShoppingItem 购物清单的一行
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}
