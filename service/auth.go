package service

import (
	"Pawmate/config"
	"Pawmate/dao"
	"Pawmate/models"
	"Pawmate/pkg/jwt"
	"Pawmate/pkg/snowflake"
	"Pawmate/types"
	"context"
	"time"
)

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	// Login 按昵称登录，首次登录时建号
	Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error)
}

type AuthService struct {
	Config  *config.Config
	UserDAO *dao.UserDAO
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	user, err := s.UserDAO.GetByNickname(ctx, req.Nickname)
	if err != nil {
		return nil, err
	}
	if user == nil {
		now := time.Now()
		user = &models.User{
			ID:        uint64(snowflake.GenUserID()),
			Nickname:  req.Nickname,
			City:      req.City,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.UserDAO.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	secret := []byte(s.Config.Jwt.Secret)
	access, err := jwt.GenerateToken(secret, user.ID, "access", time.Duration(s.Config.Jwt.AccessExpire)*time.Second)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateToken(secret, user.ID, "refresh", time.Duration(s.Config.Jwt.RefreshExpire)*time.Second)
	if err != nil {
		return nil, err
	}
	return &types.LoginResponse{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
