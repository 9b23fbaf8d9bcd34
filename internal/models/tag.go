package models

type Tag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:20;not null;uniqueIndex"`
	Weight int    `json:"weight" gorm:"default:1;index"`
}

func (Tag) TableName() string {
	return "tags"
}

type TagListRequest struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1"`
}
