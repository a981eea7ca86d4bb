package service

import (
	"context"
	"errors"

	"Foodgram/dao"
	"Foodgram/dao/cache"
	"Foodgram/pkg/errs"
	"Foodgram/pkg/log"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RelationKind 用户与菜谱或作者之间的关系类型
type RelationKind int

const (
	RelationFavorite RelationKind = iota + 1
	RelationShoppingCart
	RelationFollow
)

func (k RelationKind) String() string {
	switch k {
	case RelationFavorite:
		return "favorite"
	case RelationShoppingCart:
		return "shopping_cart"
	case RelationFollow:
		return "follow"
	default:
		return "unknown"
	}
}

var _ IRelationService = (*RelationService)(nil)

type IRelationService interface {
	// Add 建立关系；已存在返回 Conflict，目标不存在返回 NotFound
	Add(ctx context.Context, kind RelationKind, ownerID, targetID uint64) error
	// Remove 解除关系；不存在返回 NotFound
	Remove(ctx context.Context, kind RelationKind, ownerID, targetID uint64) error
	Has(ctx context.Context, kind RelationKind, ownerID, targetID uint64) (bool, error)
	// TargetSet 用户在该关系下的全部目标 id，匿名用户为空
	TargetSet(ctx context.Context, kind RelationKind, ownerID uint64) (map[uint64]struct{}, error)
}

type pairStore interface {
	Exists(ctx context.Context, owner, target uint64) (bool, error)
	Insert(ctx context.Context, owner, target uint64) error
	Delete(ctx context.Context, owner, target uint64) (int64, error)
	TargetIDs(ctx context.Context, owner uint64) ([]uint64, error)
}

type RelationService struct {
	FavoriteDAO     *dao.FavoriteDAO
	ShoppingCartDAO *dao.ShoppingCartDAO
	FollowDAO       *dao.FollowDAO
	RecipeDAO       *dao.RecipeDAO
	UserDAO         *dao.Users
	Cache           *cache.RelationStorage
}

type relationRule struct {
	store        pairStore
	targetExists func(ctx context.Context, id uint64) (bool, error)
	target       string
	duplicate    string
	missing      string
}

func (s *RelationService) rule(kind RelationKind) (relationRule, error) {
	recipeExists := func(ctx context.Context, id uint64) (bool, error) {
		return s.RecipeDAO.IsExist(ctx, "id = ?", id)
	}
	switch kind {
	case RelationFavorite:
		return relationRule{
			store:        s.FavoriteDAO,
			targetExists: recipeExists,
			target:       "recipe",
			duplicate:    "recipe is already in favorites",
			missing:      "recipe is not in favorites",
		}, nil
	case RelationShoppingCart:
		return relationRule{
			store:        s.ShoppingCartDAO,
			targetExists: recipeExists,
			target:       "recipe",
			duplicate:    "recipe is already in the shopping list",
			missing:      "recipe is not in the shopping list",
		}, nil
	case RelationFollow:
		return relationRule{
			store: s.FollowDAO,
			targetExists: func(ctx context.Context, id uint64) (bool, error) {
				return s.UserDAO.IsExist(ctx, "id = ?", id)
			},
			target:    "author",
			duplicate: "already subscribed to this author",
			missing:   "not subscribed to this author",
		}, nil
	default:
		return relationRule{}, errors.New("unknown relation kind")
	}
}

func (s *RelationService) Add(ctx context.Context, kind RelationKind, ownerID, targetID uint64) error {
	if kind == RelationFollow && ownerID == targetID {
		return errs.Validation("author", "cannot follow self")
	}
	r, err := s.rule(kind)
	if err != nil {
		return err
	}

	ok, err := r.targetExists(ctx, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("%s %d not found", r.target, targetID)
	}

	exists, err := r.store.Exists(ctx, ownerID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return errs.Conflict("%s", r.duplicate)
	}

	if err := r.store.Insert(ctx, ownerID, targetID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Conflict("%s", r.duplicate).Wrap(err)
		}
		// 并发写入时部分驱动不返回 ErrDuplicatedKey，以库中状态为准
		if exists, checkErr := r.store.Exists(ctx, ownerID, targetID); checkErr == nil && exists {
			return errs.Conflict("%s", r.duplicate).Wrap(err)
		}
		return err
	}

	s.invalidate(ctx, kind, ownerID)
	return nil
}

func (s *RelationService) Remove(ctx context.Context, kind RelationKind, ownerID, targetID uint64) error {
	r, err := s.rule(kind)
	if err != nil {
		return err
	}

	ok, err := r.targetExists(ctx, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("%s %d not found", r.target, targetID)
	}

	n, err := r.store.Delete(ctx, ownerID, targetID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("%s", r.missing)
	}

	s.invalidate(ctx, kind, ownerID)
	return nil
}

func (s *RelationService) Has(ctx context.Context, kind RelationKind, ownerID, targetID uint64) (bool, error) {
	set, err := s.TargetSet(ctx, kind, ownerID)
	if err != nil {
		return false, err
	}
	_, ok := set[targetID]
	return ok, nil
}

func (s *RelationService) TargetSet(ctx context.Context, kind RelationKind, ownerID uint64) (map[uint64]struct{}, error) {
	if ownerID == 0 {
		return map[uint64]struct{}{}, nil
	}
	r, err := s.rule(kind)
	if err != nil {
		return nil, err
	}

	ids, ok, err := s.Cache.Members(ctx, kind.String(), ownerID)
	if err != nil {
		log.L.Warn("relation cache read failed", zap.String("kind", kind.String()), zap.Uint64("user_id", ownerID), zap.Error(err))
	}
	if err != nil || !ok {
		// 版本号必须在读库之前取得
		version, verErr := s.Cache.Version(ctx, kind.String(), ownerID)
		ids, err = r.store.TargetIDs(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if verErr == nil {
			if _, fillErr := s.Cache.Fill(ctx, kind.String(), ownerID, version, ids); fillErr != nil {
				log.L.Warn("relation cache fill failed", zap.String("kind", kind.String()), zap.Uint64("user_id", ownerID), zap.Error(fillErr))
			}
		}
	}

	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *RelationService) invalidate(ctx context.Context, kind RelationKind, ownerID uint64) {
	if err := s.Cache.Invalidate(ctx, kind.String(), ownerID); err != nil {
		log.L.Warn("relation cache invalidate failed", zap.String("kind", kind.String()), zap.Uint64("user_id", ownerID), zap.Error(err))
	}
}
