// Package apperr 定义了统一的业务错误分类，HTTP 层据此映射状态码。
package apperr

import (
	"errors"
	"net/http"
)

// Kind 错误类别
type Kind int

const (
	// KindInternal 未分类的内部错误（500），对外只返回通用消息
	KindInternal Kind = iota
	// KindValidation 请求参数缺失或非法（400）
	KindValidation
	// KindAuth 凭证错误或缺失（401）
	KindAuth
	// KindForbidden 令牌无效/过期或权限不足（403）
	KindForbidden
	// KindNotFound 资源不存在（404）
	KindNotFound
	// KindConflict 资源冲突，如邮箱已注册（409）
	KindConflict
	// KindRateLimit 请求频率超限（429）
	KindRateLimit
)

// Error 携带类别与面向客户端消息的错误。
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation 构造参数校验错误
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Auth 构造认证错误
func Auth(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

// Forbidden 构造权限错误
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

// NotFound 构造资源不存在错误
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict 构造资源冲突错误
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// RateLimited 构造限流错误
func RateLimited(msg string) *Error { return &Error{Kind: KindRateLimit, Message: msg} }

// Internal 包装内部错误，msg 为对客户端展示的通用消息
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf 返回错误的类别，非 *Error 一律视为内部错误。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus 返回错误类别对应的 HTTP 状态码。
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage 返回可安全暴露给客户端的消息。
// 内部错误的细节只进日志，不出网。
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "An unexpected error occurred"
}
