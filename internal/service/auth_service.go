package service

import (
	"Quill/internal/api/config"
	"Quill/internal/api/dto"
	"Quill/internal/pkg/redis"
	"Quill/internal/pkg/security"
	"context"
	"errors"
	log "log/slog"
	"time"
)

type AuthService interface {
	Enabled() bool
	Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*security.AdminClaims, error)
}

type authServiceImpl struct {
	cfg       config.AuthConfig
	tokens    *security.TokenManager
	blacklist redis.TokenBlacklist
}

// NewAuthService blacklist 为 nil 时注销只能由客户端丢弃 token
func NewAuthService(cfg config.AuthConfig, blacklist redis.TokenBlacklist) AuthService {
	return &authServiceImpl{
		cfg:       cfg,
		tokens:    security.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Hour),
		blacklist: blacklist,
	}
}

func (s *authServiceImpl) Enabled() bool {
	return s.cfg.Enabled
}

// Login 单管理员账号，密码以 bcrypt 哈希形式保存在配置中
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (*dto.TokenDTO, error) {
	if !s.cfg.Enabled {
		return nil, ErrFeatureDisabled
	}
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingLoginCredentials
	}

	if err := security.CheckPasswordHash(req.Password, s.cfg.AdminPasswordHash); err != nil {
		if !errors.Is(err, security.ErrInvalidCredentials) {
			log.ErrorContext(ctx, "check password failed", "err", err)
		}
		return nil, ErrPasswordIncorrect
	}
	if req.Username != s.cfg.AdminUsername {
		return nil, ErrPasswordIncorrect
	}

	token, expiresAt, err := s.tokens.GenerateToken(req.Username)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return ErrTokenInvalid
	}
	if s.blacklist == nil {
		return nil
	}

	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	return s.blacklist.Revoke(ctx, signature, time.Until(claims.ExpiresAt.Time))
}

func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (*security.AdminClaims, error) {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, signature)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenInvalid
		}
	}

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
