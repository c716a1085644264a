package model

import "testing"

func strPtr(s string) *string { return &s }

// ── Role 测试 ──

func TestParseRole_Student(t *testing.T) {
	r, err := ParseRole("STUDENT", nil)
	if err != nil {
		t.Fatalf("解析 STUDENT 应成功: %v", err)
	}
	if !r.IsStudent() || r.IsChief() {
		t.Errorf("期望学生角色，实际=%+v", r)
	}
}

func TestParseRole_Chief(t *testing.T) {
	r, err := ParseRole("CHEF_IRT", strPtr("IRT"))
	if err != nil {
		t.Fatalf("解析 CHEF_IRT 应成功: %v", err)
	}
	if !r.IsChief() {
		t.Fatal("期望部门主任角色")
	}
	if !r.ChiefOf("IRT") {
		t.Error("期望为 IRT 主任")
	}
	if r.ChiefOf("GM") {
		t.Error("不应为 GM 主任")
	}
}

func TestParseRole_ChiefWithoutDepartment(t *testing.T) {
	r, err := ParseRole("CHEF_GM", nil)
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if !r.IsChief() {
		t.Error("未绑定部门仍属于主任角色")
	}
	if r.ChiefOf("GM") {
		t.Error("未绑定部门时不应通过部门匹配")
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, tag := range []string{"", "ADMIN", "CHEF_", "CHEF_XYZ", "chef_irt", "student"} {
		if _, err := ParseRole(tag, nil); err == nil {
			t.Errorf("标签 %q 应解析失败", tag)
		}
	}
}

func TestChiefRoleTag_RoundTrip(t *testing.T) {
	for _, d := range ChiefDepartments {
		r, err := ParseRole(ChiefRoleTag(d), strPtr(d))
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if !r.ChiefOf(d) {
			t.Errorf("期望为 %s 主任", d)
		}
	}
}

// ── 枚举测试 ──

func TestParseAssignmentType(t *testing.T) {
	cases := map[string]AssignmentType{
		"cm": TypeCM, "TD": TypeTD, " tp ": TypeTP, "ds": TypeDS,
		"exam": TypeExam, "Special": TypeSpecial,
	}
	for in, want := range cases {
		got, ok := ParseAssignmentType(in)
		if !ok || got != want {
			t.Errorf("ParseAssignmentType(%q)=%q,%v，期望 %q", in, got, ok, want)
		}
	}
	if _, ok := ParseAssignmentType("TPX"); ok {
		t.Error("TPX 不应解析成功")
	}
}

func TestDayAndPeriod(t *testing.T) {
	if !DayMonday.Valid() || Day("DIM").Valid() {
		t.Error("Day.Valid 结果不符")
	}
	if DaySaturday.Offset() != 5 {
		t.Errorf("期望 SAM 偏移 5，实际 %d", DaySaturday.Offset())
	}
	if !PeriodP5.Valid() || Period("P6").Valid() {
		t.Error("Period.Valid 结果不符")
	}
	if PeriodP1.Label() != "08h30 à 10h00" {
		t.Errorf("P1 展示名不符: %s", PeriodP1.Label())
	}
}

// ── CourseAssignment 一致性 ──

func TestCourseAssignment_Validate(t *testing.T) {
	cases := []struct {
		name    string
		a       CourseAssignment
		wantErr bool
	}{
		{"regular ok", CourseAssignment{Type: TypeCM, CourseCode: strPtr("IRT31")}, false},
		{"regular without course", CourseAssignment{Type: TypeCM}, true},
		{"special ok", CourseAssignment{Type: TypeSpecial, IsSpecial: true, Description: strPtr("Forum")}, false},
		{"special with course", CourseAssignment{Type: TypeSpecial, IsSpecial: true, CourseCode: strPtr("IRT31"), Description: strPtr("x")}, true},
		{"special without description", CourseAssignment{Type: TypeSpecial, IsSpecial: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.a.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate()=%v，wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestCourse_HoursAccessors(t *testing.T) {
	c := &Course{CMHours: 20, TDHours: 10, TPHours: 6}
	c.SetCompletedHours(TypeTD, 4.5)
	if c.CompletedHours(TypeTD) != 4.5 {
		t.Errorf("期望 TD 完成 4.5，实际 %v", c.CompletedHours(TypeTD))
	}
	if c.PlannedHours(TypeCM) != 20 || c.PlannedHours(TypeExam) != 0 {
		t.Error("PlannedHours 结果不符")
	}
	c.SetCompletedHours(TypeExam, 3)
	if c.CMCompleted+c.TDCompleted+c.TPCompleted != 4.5 {
		t.Error("非 CM/TD/TP 类型不应修改完成学时")
	}
}
