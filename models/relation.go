package models

import "time"

// Favorite 收藏记录
// 唯一键: user_id + recipe_id
type Favorite struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_favorite_pair,priority:1" json:"user_id"`
	RecipeID  uint64    `gorm:"column:recipe_id;not null;uniqueIndex:uk_favorite_pair,priority:2;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCart 购物车记录
// 唯一键: user_id + recipe_id
type ShoppingCart struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_shopping_cart_pair,priority:1" json:"user_id"`
	RecipeID  uint64    `gorm:"column:recipe_id;not null;uniqueIndex:uk_shopping_cart_pair,priority:2;index" json:"recipe_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// All lists every table in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeTag{},
		&Favorite{},
		&ShoppingCart{},
		&Follow{},
	}
}
