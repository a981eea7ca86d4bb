package models

import "time"

type Recipe struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorID    uint64    `gorm:"column:author_id;not null;index:idx_recipes_author" json:"author_id"`
	Name        string    `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Text        string    `gorm:"column:text;type:text;not null" json:"text"`
	Image       string    `gorm:"column:image;type:varchar(512);not null;default:''" json:"image"`
	CookingTime int       `gorm:"column:cooking_time;not null" json:"cooking_time"`
	PubDate     time.Time `gorm:"column:pub_date;not null;autoCreateTime;index:idx_recipes_pub_date" json:"pub_date"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	Author      *User              `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient 菜谱与食材的关联，同一食材在一个菜谱里只能出现一次
type RecipeIngredient struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RecipeID     uint64 `gorm:"column:recipe_id;not null;uniqueIndex:uk_recipe_ingredient,priority:1" json:"recipe_id"`
	IngredientID uint64 `gorm:"column:ingredient_id;not null;uniqueIndex:uk_recipe_ingredient,priority:2;index" json:"ingredient_id"`
	Amount       int    `gorm:"column:amount;not null;check:chk_recipe_ingredient_amount,amount > 0" json:"amount"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type RecipeTag struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RecipeID uint64 `gorm:"column:recipe_id;not null;uniqueIndex:uk_recipe_tag,priority:1" json:"recipe_id"`
	TagID    uint64 `gorm:"column:tag_id;not null;uniqueIndex:uk_recipe_tag,priority:2;index" json:"tag_id"`

	Tag *Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
