package models

import (
	"gorm.io/datatypes"
)

type Article struct {
	ID       uint                      `json:"id" gorm:"primaryKey"`
	Pid      uint                      `json:"pid" gorm:"default:0;index"`
	Title    string                    `json:"title" gorm:"size:64;not null;index"`
	IsFolder bool                      `json:"is_folder" gorm:"default:false"`
	Text     string                    `json:"text" gorm:"type:text;index"`
	Tags     datatypes.JSONSlice[uint] `json:"tags" gorm:"type:json"`
}

func (Article) TableName() string {
	return "articles"
}

// ArticleDetail 单篇文章的展示结构，tags 字段返回标签名而不是 id
type ArticleDetail struct {
	ID       uint     `json:"id"`
	Pid      uint     `json:"pid"`
	Title    string   `json:"title"`
	IsFolder bool     `json:"is_folder"`
	Text     string   `json:"text"`
	Tags     []string `json:"tags"`
}

type ArticleCreateRequest struct {
	Title string   `json:"title" validate:"required,min=1,max=64"`
	Text  string   `json:"text"`
	Pid   *uint    `json:"pid"`
	Tags  []string `json:"tags" validate:"max=6,dive,tagname"`
}

type FolderCreateRequest struct {
	Title string   `json:"title" validate:"required,min=1,max=64"`
	Pid   *uint    `json:"pid"`
	Tags  []string `json:"tags" validate:"max=6,dive,tagname"`
}

// ArticleUpdateRequest 指针字段表示"未提供则不修改"；Tags 非空时整组替换
type ArticleUpdateRequest struct {
	Title *string   `json:"title" validate:"omitempty,min=1,max=64"`
	Text  *string   `json:"text"`
	Tags  *[]string `json:"tags" validate:"omitempty,max=6,dive,tagname"`
}

type ArticleListRequest struct {
	Pid      *uint `form:"pid"`
	Page     int   `form:"page" validate:"omitempty,min=1"`
	PageSize int   `form:"page_size" validate:"omitempty,min=1"`
}

type ArticleRemoveRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}
