package dao

import (
	"context"
	"fmt"

	"Foodgram/models"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByEmail 邮箱查询
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ?", email)
}

// IsEmailExist 判断邮箱是否存在
func (u *Users) IsEmailExist(ctx context.Context, email string) (bool, error) {
	return u.Repo.IsExist(ctx, "email = ?", email)
}

// IsUsernameExist 判断用户名是否存在
func (u *Users) IsUsernameExist(ctx context.Context, username string) (bool, error) {
	return u.Repo.IsExist(ctx, "username = ?", username)
}

func (u *Users) UpdatePassword(ctx context.Context, userID uint64, hash string) error {
	_, err := u.Repo.UpdateById(ctx, userID, map[string]any{"password": hash})
	if err != nil {
		return fmt.Errorf("dao.Users.UpdatePassword error: %w", err)
	}
	return nil
}

// List 按 id 升序分页
func (u *Users) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var (
		users []*models.User
		total int64
	)
	if err := u.Model(ctx).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := u.Db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

// ListFollowedBy 返回 followerID 关注的作者，按关注时间倒序
func (u *Users) ListFollowedBy(ctx context.Context, followerID uint64, offset, limit int) ([]*models.User, int64, error) {
	var (
		users []*models.User
		total int64
	)
	err := u.Db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = u.Db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}
