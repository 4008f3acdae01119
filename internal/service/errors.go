package service

import (
	"errors"
	"fmt"
)

// Kind 错误分类，HTTP 层据此映射状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error 服务层错误。Message 面向调用方，Err 保留底层原因但不对外暴露
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is 同 Kind 同 Message 视为同一错误，便于 errors.Is 比对哨兵
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrSelfFollow             = &Error{Kind: KindValidation, Message: "cannot follow yourself"}
	ErrEmptyContent           = &Error{Kind: KindValidation, Message: "content must not be empty"}
	ErrInvalidID              = &Error{Kind: KindValidation, Message: "id must be a positive integer"}
	ErrEmptySearchTerm        = &Error{Kind: KindValidation, Message: "search term must not be empty"}
	ErrUserExists             = &Error{Kind: KindValidation, Message: "username or email already taken"}
	ErrPostNotFound           = &Error{Kind: KindNotFound, Message: "post not found"}
	ErrUserNotFound           = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrNotFoundOrUnauthorized = &Error{Kind: KindNotFound, Message: "not found or not owned by you"}
	ErrCommentsDisabled       = &Error{Kind: KindForbidden, Message: "comments are disabled for this post"}
	ErrLikeOwnPost            = &Error{Kind: KindForbidden, Message: "cannot like or unlike your own post"}
)

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// storeError 存储层失败统一包成 internal，对外只暴露固定文案
func storeError(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal store error", Err: err}
}

// KindOf 对任意错误分类；非 *Error 一律视为 internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf 返回可对外展示的文案
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}
