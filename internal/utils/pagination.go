package utils

import (
	"article-backend/internal/models"
	"math"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 100
)

// NormalizePage 补齐分页参数默认值，page 和 page_size 都从 1 起算
func NormalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// Offset 计算查询偏移量，对非法 page 兜底避免负偏移
func Offset(page, pageSize int) int {
	skip := (page - 1) * pageSize
	if skip < 0 {
		return 0
	}
	return skip
}

func NewPageResult(total int64, page, pageSize int, list interface{}) *models.PageResult {
	return &models.PageResult{
		Total:     total,
		TotalPage: int(math.Ceil(float64(total) / float64(pageSize))),
		Page:      page,
		PageSize:  pageSize,
		List:      list,
	}
}
