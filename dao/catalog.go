package dao

import (
	"context"
	"strings"

	"Foodgram/models"

	"gorm.io/gorm"
)

type TagDAO struct {
	Repo[models.Tag]
}

func NewTagDAO(db *gorm.DB) *TagDAO {
	return &TagDAO{
		Repo: NewRepo[models.Tag](db),
	}
}

func (d *TagDAO) List(ctx context.Context) ([]*models.Tag, error) {
	return d.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

type IngredientDAO struct {
	Repo[models.Ingredient]
}

func NewIngredientDAO(db *gorm.DB) *IngredientDAO {
	return &IngredientDAO{
		Repo: NewRepo[models.Ingredient](db),
	}
}

// 三种方言默认转义符不一致，统一显式使用 '!'
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search 名称前缀匹配（不区分大小写），按名称排序
func (d *IngredientDAO) Search(ctx context.Context, prefix string) ([]*models.Ingredient, error) {
	return d.FindAll(ctx, func(db *gorm.DB) *gorm.DB {
		if prefix != "" {
			db = db.Where("LOWER(name) LIKE ? ESCAPE '!'", likeEscaper.Replace(strings.ToLower(prefix))+"%")
		}
		return db.Order("name ASC").Order("id ASC")
	})
}
