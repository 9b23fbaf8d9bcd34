package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"article-backend/internal/models"
	"article-backend/internal/services"
	"article-backend/internal/utils"
	appvalidator "article-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ArticleHandler struct {
	articleService *services.ArticleService
	validator      *validator.Validate
}

func NewArticleHandler(articleService *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		validator:      appvalidator.GetValidator(),
	}
}

func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var req models.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	result, err := h.articleService.List(&req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, result)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	detail, err := h.articleService.Read(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, detail)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	article, err := h.articleService.CreateArticle(&req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "创建成功", article)
}

func (h *ArticleHandler) CreateFolder(c *gin.Context) {
	var req models.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	folder, err := h.articleService.CreateFolder(&req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "创建成功", folder)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var req models.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	detail, err := h.articleService.Update(id, &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "更新成功", detail)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := h.articleService.Remove([]uint{id}); err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// DeleteArticles 批量删除，body 传 {"ids": [...]}
func (h *ArticleHandler) DeleteArticles(c *gin.Context) {
	var req models.ArticleRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	if err := h.articleService.Remove(req.IDs); err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

func (h *ArticleHandler) renderError(c *gin.Context, err error) {
	var notFound *services.ArticleNotFoundError
	var invalid *services.ValidationError

	switch {
	case errors.As(err, &notFound):
		utils.NotFound(c, notFound.Error())
	case errors.As(err, &invalid):
		utils.ValidationError(c, invalid.Error())
	default:
		utils.InternalError(c)
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
