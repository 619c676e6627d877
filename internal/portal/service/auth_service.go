package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shariin1057/vendor-valuate/internal/config"
	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// ErrInvalidCredentials 邮箱不存在或账号停用
var ErrInvalidCredentials = errors.New("unknown or inactive user")

// revokedKeyPrefix 已登出 token 的 redis 键前缀
const revokedKeyPrefix = "vv:revoked:"

// AuthService 登录签发与登出吊销
type AuthService struct {
	userRepo *repository.UserRepository
	audit    *repository.AuditLogRepository
	rdb      *redis.Client
	cfg      *config.Config
}

func NewAuthService(
	userRepo *repository.UserRepository,
	audit *repository.AuditLogRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *AuthService {
	return &AuthService{userRepo: userRepo, audit: audit, rdb: rdb, cfg: cfg}
}

// LoginResult token 与登录用户
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      *entity.User `json:"user"`
}

// Login 按邮箱（不区分大小写）登录，只接受活跃用户
func (s *AuthService) Login(ctx context.Context, email string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	actor := entity.Actor{ID: user.ID, Name: user.DisplayName}
	s.audit.Record(ctx, actor, entity.AuditActionLogin, "User",
		fmt.Sprintf("User logged in: %s", user.Email))

	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
		User:      user,
	}, nil
}

func (s *AuthService) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"uid":        user.ID,
		"name":       user.DisplayName,
		"email":      user.Email,
		"role":       user.Role,
		"department": user.Department,
		"iss":        s.cfg.JWT.Issuer,
		"iat":        now.Unix(),
		"exp":        now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Logout 把 token 的 jti 写入 redis 吊销名单，TTL 取剩余有效期。
// 未配置 redis 时登出只在客户端生效。
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked 检查 jti 是否已被吊销
func (s *AuthService) IsRevoked(ctx context.Context, jti string) bool {
	if s.rdb == nil || jti == "" {
		return false
	}
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// GetCurrentUser 获取当前用户
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
