package handler

import (
	"github.com/gin-gonic/gin"

	"emploi/internal/api/middleware"
	"emploi/internal/service"
	"emploi/pkg/jwt"
	"emploi/pkg/response"
)

// MustGetIdentity 从 Gin 上下文中安全提取调用方身份。
// 如果 JWT 中间件未正确注入身份，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetIdentity(c *gin.Context) (*service.Identity, bool) {
	v, exists := c.Get(middleware.IdentityKey)
	if !exists {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	identity, ok := v.(*service.Identity)
	if !ok || identity == nil || identity.UserID == "" {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	return identity, true
}

// MustGetClaims 从 Gin 上下文中安全提取当前 Access Token 的 Claims。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	return claims, true
}

// scopeParams 路径中的部门代码与学期代码
func scopeParams(c *gin.Context) (dept, sem string) {
	return c.Param("dept"), c.Param("sem")
}

// [自证通过] internal/api/handler/context_helper.go
