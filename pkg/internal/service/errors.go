// Package service 实现目录、评分、分享与会话的业务逻辑.
package service

import (
	"errors"
	"fmt"
)

// 业务错误哨兵，handle 层据此映射 HTTP 状态码.
var (
	// ErrNotFound 游戏或分享码不存在.
	ErrNotFound = errors.New("not found")
	// ErrExpired 分享码已过期，与 ErrNotFound 区分以便提示"链接曾经有效".
	ErrExpired = errors.New("expired")
	// ErrUnauthorized 凭证或会话无效.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError 输入校验失败，操作中止且无部分状态变更.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError 创建字段级校验错误.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation 判断错误是否为校验错误.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
