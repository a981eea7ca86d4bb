package service

import (
	"context"
	"errors"
	"strings"

	"Foodgram/dao"
	"Foodgram/models"
	"Foodgram/pkg/encrypt"
	"Foodgram/pkg/errs"
	"Foodgram/types"

	"gorm.io/gorm"
)

const defaultPageSize = 6

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.UserCreated, error)
	// UpdateMe 部分更新个人资料，邮箱与用户名仍需唯一
	UpdateMe(ctx context.Context, userID uint64, req *types.UpdateMeRequest) (*types.UserResponse, error)
	SetPassword(ctx context.Context, userID uint64, req *types.SetPasswordRequest) error
	Get(ctx context.Context, viewerID, userID uint64) (*types.UserResponse, error)
	List(ctx context.Context, viewerID uint64, q *types.PageQuery) ([]types.UserResponse, int64, error)
	// Subscriptions 当前用户关注的作者，每位作者附带最新 recipes_limit 条菜谱
	Subscriptions(ctx context.Context, userID uint64, q *types.SubscriptionQuery) ([]types.SubscriptionResponse, int64, error)
	Subscription(ctx context.Context, viewerID, authorID uint64, recipesLimit int) (*types.SubscriptionResponse, error)
}

type UserService struct {
	UsersRepo       *dao.Users
	RecipeDAO       *dao.RecipeDAO
	RelationService IRelationService
}

// Register 注册用户
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.UserCreated, error) {
	email := strings.TrimSpace(req.Email)
	exist, err := s.UsersRepo.IsEmailExist(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, errs.Validation("email", "a user with that email already exists")
	}
	exist, err = s.UsersRepo.IsUsernameExist(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, errs.Validation("username", "a user with that username already exists")
	}

	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
	}
	if err := s.UsersRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("user already exists").Wrap(err)
		}
		return nil, err
	}

	return &types.UserCreated{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *UserService) UpdateMe(ctx context.Context, userID uint64, req *types.UpdateMeRequest) (*types.UserResponse, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != user.Email {
			exist, err := s.UsersRepo.IsEmailExist(ctx, email)
			if err != nil {
				return nil, err
			}
			if exist {
				return nil, errs.Validation("email", "a user with that email already exists")
			}
			fields["email"] = email
			user.Email = email
		}
	}
	if req.Username != nil && *req.Username != user.Username {
		exist, err := s.UsersRepo.IsUsernameExist(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if exist {
			return nil, errs.Validation("username", "a user with that username already exists")
		}
		fields["username"] = *req.Username
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
		user.LastName = *req.LastName
	}

	if len(fields) > 0 {
		if _, err := s.UsersRepo.UpdateById(ctx, userID, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errs.Conflict("user already exists").Wrap(err)
			}
			return nil, err
		}
	}
	resp := toUserResponse(user, false)
	return &resp, nil
}

func (s *UserService) SetPassword(ctx context.Context, userID uint64, req *types.SetPasswordRequest) error {
	user, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	if !encrypt.VerifyPassword(user.Password, req.CurrentPassword) {
		return errs.Validation("current_password", "invalid password")
	}

	hash, err := encrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.UsersRepo.UpdatePassword(ctx, userID, hash)
}

func (s *UserService) find(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.UsersRepo.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("user %d not found", userID)
	}
	return user, err
}

func (s *UserService) Get(ctx context.Context, viewerID, userID uint64) (*types.UserResponse, error) {
	user, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.RelationService.Has(ctx, RelationFollow, viewerID, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user, subscribed)
	return &resp, nil
}

func (s *UserService) List(ctx context.Context, viewerID uint64, q *types.PageQuery) ([]types.UserResponse, int64, error) {
	q.Normalize(defaultPageSize)
	users, total, err := s.UsersRepo.List(ctx, q.Offset(), q.Limit)
	if err != nil {
		return nil, 0, err
	}

	follows, err := s.RelationService.TargetSet(ctx, RelationFollow, viewerID)
	if err != nil {
		return nil, 0, err
	}
	items := make([]types.UserResponse, 0, len(users))
	for _, u := range users {
		_, subscribed := follows[u.ID]
		items = append(items, toUserResponse(u, subscribed))
	}
	return items, total, nil
}

func (s *UserService) Subscriptions(ctx context.Context, userID uint64, q *types.SubscriptionQuery) ([]types.SubscriptionResponse, int64, error) {
	q.Normalize(defaultPageSize)
	authors, total, err := s.UsersRepo.ListFollowedBy(ctx, userID, q.Offset(), q.Limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(authors))
	for _, author := range authors {
		ids = append(ids, author.ID)
	}
	counts, err := s.RecipeDAO.CountByAuthors(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]types.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		item, err := s.subscription(ctx, author, true, q.RecipesLimit, counts[author.ID])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, nil
}

func (s *UserService) Subscription(ctx context.Context, viewerID, authorID uint64, recipesLimit int) (*types.SubscriptionResponse, error) {
	author, err := s.find(ctx, authorID)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.RelationService.Has(ctx, RelationFollow, viewerID, authorID)
	if err != nil {
		return nil, err
	}
	count, err := s.RecipeDAO.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.subscription(ctx, author, subscribed, recipesLimit, count)
}

func (s *UserService) subscription(ctx context.Context, author *models.User, subscribed bool, recipesLimit int, count int64) (*types.SubscriptionResponse, error) {
	recipes, err := s.RecipeDAO.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	shorts := make([]types.RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		shorts = append(shorts, toRecipeShort(r))
	}
	return &types.SubscriptionResponse{
		UserResponse: toUserResponse(author, subscribed),
		Recipes:      shorts,
		RecipesCount: count,
	}, nil
}
