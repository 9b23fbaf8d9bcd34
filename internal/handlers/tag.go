package handlers

import (
	"net/http"

	"article-backend/internal/models"
	"article-backend/internal/services"
	"article-backend/internal/utils"
	appvalidator "article-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TagHandler struct {
	tagService *services.TagService
	validator  *validator.Validate
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validator:  appvalidator.GetValidator(),
	}
}

// ListTags 标签列表，按权重倒序体现"热门度"
func (h *TagHandler) ListTags(c *gin.Context) {
	var req models.TagListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	result, err := h.tagService.List(&req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, result)
}
