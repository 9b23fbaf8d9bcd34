package services

import "fmt"

// ArticleNotFoundError 目标文章不存在，处理层据此返回 404
type ArticleNotFoundError struct {
	ID uint
}

func (e *ArticleNotFoundError) Error() string {
	return fmt.Sprintf("文章[%d]不存在", e.ID)
}

// ValidationError 服务层兜底校验失败（正常情况下请求层已经拦截）
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段 %s 非法: %s", e.Field, e.Reason)
}
