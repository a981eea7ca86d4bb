package dao

import (
	"context"

	"Foodgram/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PairDAO 维护 (owner, target) 唯一的关系表：收藏、购物车、关注
type PairDAO[T any] struct {
	Repo[T]
	owner  string
	target string
	build  func(owner, target uint64) *T
}

func newPairDAO[T any](db *gorm.DB, owner, target string, build func(owner, target uint64) *T) PairDAO[T] {
	return PairDAO[T]{
		Repo:   NewRepo[T](db),
		owner:  owner,
		target: target,
		build:  build,
	}
}

func (d *PairDAO[T]) Exists(ctx context.Context, owner, target uint64) (bool, error) {
	return d.IsExist(ctx, d.owner+" = ? AND "+d.target+" = ?", owner, target)
}

// Insert 写入一条关系；重复时返回 gorm.ErrDuplicatedKey
func (d *PairDAO[T]) Insert(ctx context.Context, owner, target uint64) error {
	return d.Db.WithContext(ctx).Omit(clause.Associations).Create(d.build(owner, target)).Error
}

// Delete 返回删除的行数，0 表示关系不存在
func (d *PairDAO[T]) Delete(ctx context.Context, owner, target uint64) (int64, error) {
	res := d.Db.WithContext(ctx).
		Where(d.owner+" = ? AND "+d.target+" = ?", owner, target).
		Delete(new(T))
	return res.RowsAffected, res.Error
}

func (d *PairDAO[T]) TargetIDs(ctx context.Context, owner uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).
		Where(d.owner+" = ?", owner).
		Order(d.target + " ASC").
		Pluck(d.target, &ids).Error
	return ids, err
}

type FavoriteDAO struct {
	PairDAO[models.Favorite]
}

func NewFavoriteDAO(db *gorm.DB) *FavoriteDAO {
	return &FavoriteDAO{
		PairDAO: newPairDAO(db, "user_id", "recipe_id", func(owner, target uint64) *models.Favorite {
			return &models.Favorite{UserID: owner, RecipeID: target}
		}),
	}
}

type ShoppingCartDAO struct {
	PairDAO[models.ShoppingCart]
}

func NewShoppingCartDAO(db *gorm.DB) *ShoppingCartDAO {
	return &ShoppingCartDAO{
		PairDAO: newPairDAO(db, "user_id", "recipe_id", func(owner, target uint64) *models.ShoppingCart {
			return &models.ShoppingCart{UserID: owner, RecipeID: target}
		}),
	}
}

// IngredientTotal 购物清单的一行：同名同单位的用量合计
type IngredientTotal struct {
	Name            string `gorm:"column:name"`
	MeasurementUnit string `gorm:"column:measurement_unit"`
	TotalAmount     int64  `gorm:"column:total_amount"`
}

// SumIngredients 汇总用户购物车中所有菜谱的食材用量，按 (name, unit) 分组，未排序
func (d *ShoppingCartDAO) SumIngredients(ctx context.Context, userID uint64) ([]IngredientTotal, error) {
	cart := d.Db.Model(&models.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", userID)

	var rows []IngredientTotal
	err := d.Db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN (?)", cart).
		Group("ingredients.name, ingredients.measurement_unit").
		Scan(&rows).Error
	return rows, err
}

type FollowDAO struct {
	PairDAO[models.Follow]
}

func NewFollowDAO(db *gorm.DB) *FollowDAO {
	return &FollowDAO{
		PairDAO: newPairDAO(db, "follower_id", "author_id", func(owner, target uint64) *models.Follow {
			return &models.Follow{FollowerID: owner, AuthorID: target}
		}),
	}
}
