package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在或已软删除
	ErrNotFound = errors.New("record not found")
	// ErrNotFoundOrUnauthorized 条件更新/删除未命中：记录不存在、已删除或不属于操作者，三者不区分
	ErrNotFoundOrUnauthorized = errors.New("record not found or not owned by actor")
	// ErrDuplicate 唯一约束冲突（非幂等写入路径，例如注册重名）
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenceNotFound 外键指向的记录不存在
	ErrReferenceNotFound = errors.New("referenced record not found")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isUniqueViolation gorm TranslateError 会转成 ErrDuplicatedKey；未开启时兜底识别驱动原始错误
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translate 把驱动错误归一成本包的哨兵错误，其余原样返回
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicate
	case isForeignKeyViolation(err):
		return ErrReferenceNotFound
	default:
		return err
	}
}
