package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsAreDistinguishable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validationf("周次 %d 非法", 0), ErrValidation},
		{"not found", NotFoundf("课程 %s 不存在", "IRT31"), ErrNotFound},
		{"permission", Permissionf("仅部门主任可操作"), ErrPermission},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.kind) {
				t.Errorf("期望 %v 属于 %v", tc.err, tc.kind)
			}
			if !IsKnown(tc.err) {
				t.Error("期望 IsKnown=true")
			}
		})
	}
}

func TestWrappedKindSurvives(t *testing.T) {
	base := NotFoundf("时间段不存在")
	wrapped := fmt.Errorf("删除失败: %w", base)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("包装后仍应识别为 ErrNotFound")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Error("不应识别为 ErrValidation")
	}
}

func TestMessageIsPreserved(t *testing.T) {
	err := Validationf("已完成学时 (%.1f) 不能超过计划学时 (%d)", 25.0, 20)
	if err.Error() != "已完成学时 (25.0) 不能超过计划学时 (20)" {
		t.Errorf("消息不符: %s", err.Error())
	}
}

func TestUnknownError(t *testing.T) {
	if IsKnown(errors.New("connection refused")) {
		t.Error("普通错误不应被识别为业务错误")
	}
}
