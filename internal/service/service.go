// Package service 在存储之上做参数校验、组合业务规则、错误分类与日志
package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// internalErr 记录存储失败并返回不透明的 internal 错误
func internalErr(op string, err error, fields ...zap.Field) error {
	logger.Error(op+" failed", append(fields, zap.Error(err))...)
	return storeError(err)
}

func checkIDs(ids ...int64) error {
	for _, id := range ids {
		if id <= 0 {
			return ErrInvalidID
		}
	}
	return nil
}

func checkPage(p pagination.Params) error {
	if err := p.Validate(); err != nil {
		return validation(strings.TrimPrefix(err.Error(), pagination.ErrInvalid.Error()+": "))
	}
	return nil
}

// normalizeContent 去掉首尾空白，空内容返回 ErrEmptyContent
func normalizeContent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyContent
	}
	return s, nil
}
