package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位即HTTP状态码（40402 → 404）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露实现细节）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 从业务错误码导出HTTP状态码
// 约定：错误码前三位即HTTP状态码（40001 → 400，50001 → 500）
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 100 || status > 599 {
		return 500
	}
	return status
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如网络错误、Redis错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// WrapWithCode 以指定错误码包装底层错误
// 典型场景：目录拉取失败（传输层错误），对外是500，但日志里必须能看到根因，
// 不能与"图书不存在"（业务层404）混为一种错误
func WrapWithCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 参数错误
// - 401xx: 凭证错误
// - 403xx: 未登录
// - 404xx: 资源不存在
// - 409xx: 重复记录
// - 500xx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal    = 50000 // 内部错误
	ErrCodeFetchFailed = 50001 // 目录拉取失败（传输层错误，区别于404）
	ErrCodeRedisError  = 50002 // Redis错误

	// 参数错误（40000-40099）
	ErrCodeInvalidParams  = 40000 // 参数错误(通用)
	ErrCodeReviewRequired = 40001 // 缺少书评内容
	ErrCodeBindError      = 40002 // 参数绑定失败

	// 凭证错误（40100-40199）
	ErrCodeInvalidCredentials = 40100 // 用户名或密码错误

	// 认证授权错误（40300-40399）
	ErrCodeUnauthenticated = 40300 // 未登录

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound   = 40401 // 用户不存在
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeReviewNotFound = 40403 // 书评不存在
	ErrCodeNoMatch        = 40404 // 检索无结果

	// 业务规则错误（40900-40999）
	ErrCodeUserDuplicate = 40900 // 用户名已存在
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal     = New(ErrCodeInternal, "系统内部错误")
	ErrCatalogFetch = New(ErrCodeFetchFailed, "获取图书目录失败")
	ErrRedisError   = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthenticated    = New(ErrCodeUnauthenticated, "用户未登录")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "用户名或密码错误")

	// 资源不存在
	ErrUserNotFound   = New(ErrCodeUserNotFound, "用户不存在")
	ErrBookNotFound   = New(ErrCodeBookNotFound, "图书不存在")
	ErrReviewNotFound = New(ErrCodeReviewNotFound, "该用户的书评不存在")

	// 业务规则
	ErrUserDuplicate  = New(ErrCodeUserDuplicate, "用户名已被注册")
	ErrReviewRequired = New(ErrCodeReviewRequired, "书评内容不能为空")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
