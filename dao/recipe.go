package dao

import (
	"context"
	"strings"
	"time"

	"Foodgram/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecipeDAO struct {
	Repo[models.Recipe]
}

func NewRecipeDAO(db *gorm.DB) *RecipeDAO {
	return &RecipeDAO{
		Repo: NewRepo[models.Recipe](db),
	}
}

// RecipeFilter 列表过滤条件，零值表示不过滤
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    uint64
	FavoritedBy uint64
	InCartOf    uint64
}

// CreateWithAssociations 在一个事务中写入菜谱及其食材、标签关联
func (d *RecipeDAO) CreateWithAssociations(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error {
	return d.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertLinks(tx, recipe.ID, ingredients, tags)
	})
}

// UpdateWithAssociations 更新菜谱字段并整体替换关联；pub_date 与 author 不会被修改
func (d *RecipeDAO) UpdateWithAssociations(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error {
	return d.Transaction(ctx, func(tx *gorm.DB) error {
		recipe.UpdatedAt = time.Now()
		err := tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"name":         recipe.Name,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
				"image":        recipe.Image,
				"updated_at":   recipe.UpdatedAt,
			}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return insertLinks(tx, recipe.ID, ingredients, tags)
	})
}

func insertLinks(tx *gorm.DB, recipeID uint64, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error {
	for i := range ingredients {
		ingredients[i].ID = 0
		ingredients[i].RecipeID = recipeID
	}
	for i := range tags {
		tags[i].ID = 0
		tags[i].RecipeID = recipeID
	}
	if len(ingredients) > 0 {
		if err := tx.Omit(clause.Associations).Create(&ingredients).Error; err != nil {
			return err
		}
	}
	if len(tags) > 0 {
		if err := tx.Omit(clause.Associations).Create(&tags).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeleteWithDependents 删除菜谱以及所有引用它的行，返回删除的菜谱行数
func (d *RecipeDAO) DeleteWithDependents(ctx context.Context, recipeID uint64) (int64, error) {
	var affected int64
	err := d.Transaction(ctx, func(tx *gorm.DB) error {
		for _, dep := range []any{
			&models.RecipeIngredient{},
			&models.RecipeTag{},
			&models.Favorite{},
			&models.ShoppingCart{},
		} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(dep).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", recipeID).Delete(&models.Recipe{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (d *RecipeDAO) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_tags.id ASC") }).
		Preload("Tags.Tag")
}

// FindDetail 查询菜谱及作者、食材、标签
func (d *RecipeDAO) FindDetail(ctx context.Context, recipeID uint64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := d.preload(d.Db.WithContext(ctx)).First(&recipe, recipeID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List 按 id 倒序分页查询
func (d *RecipeDAO) List(ctx context.Context, filter RecipeFilter, offset, limit int) ([]*models.Recipe, int64, error) {
	var (
		recipes []*models.Recipe
		total   int64
	)

	query := d.filtered(d.Db.WithContext(ctx).Model(&models.Recipe{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := d.preload(d.filtered(d.Db.WithContext(ctx), filter)).
		Order("recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	return recipes, total, err
}

func (d *RecipeDAO) filtered(db *gorm.DB, filter RecipeFilter) *gorm.DB {
	if len(filter.TagSlugs) > 0 {
		slugs := make([]string, 0, len(filter.TagSlugs))
		for _, s := range filter.TagSlugs {
			slugs = append(slugs, strings.ToLower(s))
		}
		tagged := d.Db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("LOWER(tags.slug) IN ?", slugs)
		db = db.Where("recipes.id IN (?)", tagged)
	}
	if filter.AuthorID != 0 {
		db = db.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.FavoritedBy != 0 {
		db = db.Where("recipes.id IN (?)",
			d.Db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", filter.FavoritedBy))
	}
	if filter.InCartOf != 0 {
		db = db.Where("recipes.id IN (?)",
			d.Db.Model(&models.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", filter.InCartOf))
	}
	return db
}

// ListByAuthor 作者最新的 limit 条菜谱，limit <= 0 表示不限
func (d *RecipeDAO) ListByAuthor(ctx context.Context, authorID uint64, limit int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	query := d.Db.WithContext(ctx).Where("author_id = ?", authorID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&recipes).Error
	return recipes, err
}

func (d *RecipeDAO) CountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	return d.FindCount(ctx, "author_id = ?", authorID)
}

type authorCount struct {
	AuthorID uint64
	Total    int64
}

// CountByAuthors 一次查询多位作者的菜谱数，没有菜谱的作者不在结果中
func (d *RecipeDAO) CountByAuthors(ctx context.Context, authorIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []authorCount
	err := d.Model(ctx).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.AuthorID] = r.Total
	}
	return counts, nil
}
