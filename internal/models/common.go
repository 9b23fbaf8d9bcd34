package models

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// PageResult 分页结果的统一外层，文章列表和标签列表共用
type PageResult struct {
	Total     int64       `json:"total"`
	TotalPage int         `json:"total_page"`
	Page      int         `json:"page"`
	PageSize  int         `json:"page_size"`
	List      interface{} `json:"list"`
}
