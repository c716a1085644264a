package model

import (
	"fmt"
	"strings"
)

// ── 星期 ──

// Day 上课日（周一至周六）
type Day string

const (
	DayMonday    Day = "LUN"
	DayTuesday   Day = "MAR"
	DayWednesday Day = "MER"
	DayThursday  Day = "JEU"
	DayFriday    Day = "VEN"
	DaySaturday  Day = "SAM"
)

// Days 按一周顺序排列的上课日
var Days = []Day{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday}

var dayLabels = map[Day]string{
	DayMonday:    "Lundi",
	DayTuesday:   "Mardi",
	DayWednesday: "Mercredi",
	DayThursday:  "Jeudi",
	DayFriday:    "Vendredi",
	DaySaturday:  "Samedi",
}

// Valid 是否为合法的上课日
func (d Day) Valid() bool {
	_, ok := dayLabels[d]
	return ok
}

// Label 展示名称
func (d Day) Label() string { return dayLabels[d] }

// Offset 距周一的天数（LUN=0）
func (d Day) Offset() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// ── 节次 ──

// Period 固定节次
type Period string

const (
	PeriodP1 Period = "P1"
	PeriodP2 Period = "P2"
	PeriodP3 Period = "P3"
	PeriodP4 Period = "P4"
	PeriodP5 Period = "P5"
)

// Periods 按时间顺序排列的节次
var Periods = []Period{PeriodP1, PeriodP2, PeriodP3, PeriodP4, PeriodP5}

// PeriodRange 节次起止时间（"08:30"）
type PeriodRange struct {
	Start string
	End   string
}

var periodRanges = map[Period]PeriodRange{
	PeriodP1: {Start: "08:30", End: "10:00"},
	PeriodP2: {Start: "10:10", End: "11:40"},
	PeriodP3: {Start: "13:30", End: "15:00"},
	PeriodP4: {Start: "15:10", End: "16:40"},
	PeriodP5: {Start: "16:50", End: "18:20"},
}

// Valid 是否为合法节次
func (p Period) Valid() bool {
	_, ok := periodRanges[p]
	return ok
}

// Range 节次起止时间
func (p Period) Range() PeriodRange { return periodRanges[p] }

// Label 展示名称，如 "08h30 à 10h00"
func (p Period) Label() string {
	r := periodRanges[p]
	return strings.Replace(r.Start, ":", "h", 1) + " à " + strings.Replace(r.End, ":", "h", 1)
}

// ── 教学活动类型 ──

// AssignmentType 课程分配类型
type AssignmentType string

const (
	TypeCM      AssignmentType = "CM"      // Cours Magistral
	TypeTD      AssignmentType = "TD"      // Travaux Dirigés
	TypeTP      AssignmentType = "TP"      // Travaux Pratiques
	TypeDS      AssignmentType = "DS"      // Devoir Surveillé
	TypeExam    AssignmentType = "EXAM"    // Examen
	TypeSpecial AssignmentType = "SPECIAL" // Cours Spécial
)

// RegularTypes 计入学时进度的三类教学活动
var RegularTypes = []AssignmentType{TypeCM, TypeTD, TypeTP}

// ParseAssignmentType 解析类型（大小写不敏感）
func ParseAssignmentType(s string) (AssignmentType, bool) {
	t := AssignmentType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeCM, TypeTD, TypeTP, TypeDS, TypeExam, TypeSpecial:
		return t, true
	}
	return "", false
}

// ── 学期编号 ──

// SemesterCode 学期编号 S1-S4
type SemesterCode string

const (
	SemesterS1 SemesterCode = "S1"
	SemesterS2 SemesterCode = "S2"
	SemesterS3 SemesterCode = "S3"
	SemesterS4 SemesterCode = "S4"
)

// SemesterCodes 全部学期编号
var SemesterCodes = []SemesterCode{SemesterS1, SemesterS2, SemesterS3, SemesterS4}

// Valid 是否为合法学期编号
func (c SemesterCode) Valid() bool {
	switch c {
	case SemesterS1, SemesterS2, SemesterS3, SemesterS4:
		return true
	}
	return false
}

// ── 角色 ──

// RoleKind 角色种类
type RoleKind int

const (
	RoleStudent RoleKind = iota + 1
	RoleDepartmentChief
)

const (
	roleTagStudent   = "STUDENT"
	roleTagChiefPref = "CHEF_"
)

// ChiefDepartments 可设置部门主任的部门代码
var ChiefDepartments = []string{"IRT", "GC", "GE", "GM", "MPG", "SUD"}

// Role 用户角色
// 部门主任管辖的部门以 Profile 的部门引用为准，标签后缀仅用于展示
type Role struct {
	Kind       RoleKind
	Department string // 仅 RoleDepartmentChief 有意义，可能为空（未绑定部门）
}

// ParseRole 将存储的角色标签与部门引用解析为 Role
func ParseRole(tag string, departmentCode *string) (Role, error) {
	if tag == roleTagStudent {
		return Role{Kind: RoleStudent}, nil
	}
	if strings.HasPrefix(tag, roleTagChiefPref) {
		suffix := strings.TrimPrefix(tag, roleTagChiefPref)
		for _, d := range ChiefDepartments {
			if d == suffix {
				r := Role{Kind: RoleDepartmentChief}
				if departmentCode != nil {
					r.Department = *departmentCode
				}
				return r, nil
			}
		}
	}
	return Role{}, fmt.Errorf("未知角色 %q", tag)
}

// ChiefRoleTag 返回指定部门主任的角色标签
func ChiefRoleTag(departmentCode string) string {
	return roleTagChiefPref + departmentCode
}

// StudentRoleTag 学生角色标签
func StudentRoleTag() string { return roleTagStudent }

// IsChief 是否为部门主任
func (r Role) IsChief() bool { return r.Kind == RoleDepartmentChief }

// IsStudent 是否为学生
func (r Role) IsStudent() bool { return r.Kind == RoleStudent }

// ChiefOf 是否为指定部门的主任
func (r Role) ChiefOf(departmentCode string) bool {
	return r.Kind == RoleDepartmentChief && r.Department != "" && r.Department == departmentCode
}

// [自证通过] internal/model/enums.go
