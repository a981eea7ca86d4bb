package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Foodgram/config"
	"Foodgram/dao"
	"Foodgram/dao/cache"
	"Foodgram/pkg/encrypt"
	"Foodgram/pkg/errs"
	"Foodgram/pkg/jwt"
	"Foodgram/pkg/log"
	"Foodgram/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	// Login 校验邮箱密码并签发 access token
	Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error)
	// Logout 注销 token，直到其过期前都不可再用
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	// Authenticate 解析 token 并检查是否已注销
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

type AuthService struct {
	Config       *config.Config
	UsersRepo    *dao.Users
	TokenStorage *cache.TokenStorage
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error) {
	user, err := s.UsersRepo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if user == nil || !encrypt.VerifyPassword(user.Password, req.Password) {
		return nil, errs.Validation("", "unable to log in with provided credentials")
	}

	token, _, err := jwt.GenerateToken(
		[]byte(s.Config.Jwt.Secret),
		user.ID,
		jwt.TypeAccess,
		time.Duration(s.Config.Jwt.ExpiresIn)*time.Second,
	)
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{AuthToken: token}, nil
}

func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.TokenStorage.Revoke(ctx, tokenID, expiresAt)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.ParseToken([]byte(s.Config.Jwt.Secret), jwt.TypeAccess, token)
	if err != nil {
		return nil, errs.Unauthorized("invalid token").Wrap(err)
	}

	revoked, err := s.TokenStorage.IsRevoked(ctx, claims.ID)
	if err != nil {
		log.L.Warn("token revocation check failed", zap.String("jti", claims.ID), zap.Error(err))
		return claims, nil
	}
	if revoked {
		return nil, errs.Unauthorized("token has been revoked")
	}
	return claims, nil
}
