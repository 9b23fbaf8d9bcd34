package services

import (
	"errors"
	"unicode/utf8"

	"article-backend/internal/models"
	"article-backend/internal/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ArticleService struct {
	db   *gorm.DB
	tags *TagService
}

func NewArticleService(db *gorm.DB, tags *TagService) *ArticleService {
	return &ArticleService{db: db, tags: tags}
}

// checkTitle 服务层兜底校验，请求层正常情况下已经拦截
func checkTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Reason: "不能为空"}
	}
	if utf8.RuneCountInString(title) > 64 {
		return &ValidationError{Field: "title", Reason: "长度超过 64"}
	}
	return nil
}

func (s *ArticleService) List(req *models.ArticleListRequest) (*models.PageResult, error) {
	page, pageSize := utils.NormalizePage(req.Page, req.PageSize)

	query := s.db.Model(&models.Article{})
	if req.Pid != nil {
		query = query.Where("pid = ?", *req.Pid)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var articles []models.Article
	if err := query.
		Offset(utils.Offset(page, pageSize)).
		Limit(pageSize).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	return utils.NewPageResult(total, page, pageSize, articles), nil
}

// Read 读取单篇文章，tags 字段解析为标签名返回；存储里始终只存 id
func (s *ArticleService) Read(id uint) (*models.ArticleDetail, error) {
	var article models.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ArticleNotFoundError{ID: id}
		}
		return nil, err
	}

	names, err := s.tags.ResolveNames(article.Tags)
	if err != nil {
		return nil, err
	}

	return &models.ArticleDetail{
		ID:       article.ID,
		Pid:      article.Pid,
		Title:    article.Title,
		IsFolder: article.IsFolder,
		Text:     article.Text,
		Tags:     names,
	}, nil
}

// CreateArticle 创建文章。标签权重递增和文章落库在同一个事务里，
// 任何一步失败整体回滚，不会留下悬空的权重加一。
func (s *ArticleService) CreateArticle(req *models.ArticleCreateRequest) (*models.Article, error) {
	return s.create(req.Title, req.Text, req.Pid, req.Tags, false)
}

// CreateFolder 创建文件夹，没有正文，其余行为与创建文章一致
func (s *ArticleService) CreateFolder(req *models.FolderCreateRequest) (*models.Article, error) {
	return s.create(req.Title, "", req.Pid, req.Tags, true)
}

func (s *ArticleService) create(title, text string, pid *uint, tagNames []string, isFolder bool) (*models.Article, error) {
	if err := checkTitle(title); err != nil {
		return nil, err
	}

	article := models.Article{
		Title:    title,
		Text:     text,
		IsFolder: isFolder,
		Tags:     datatypes.JSONSlice[uint]{},
	}
	if pid != nil {
		article.Pid = *pid
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		ids, err := s.tags.ResolveOrCreate(tx, tagNames)
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			article.Tags = datatypes.JSONSlice[uint](ids)
		}
		return tx.Create(&article).Error
	})
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// Update 更新文章。提供 tags 时整组替换：先按新标签递增，再释放旧标签，
// 新旧都有的标签一加一减权重不变，不会出现先归零再重建的瞬间。
func (s *ArticleService) Update(id uint, req *models.ArticleUpdateRequest) (*models.ArticleDetail, error) {
	if req.Title != nil {
		if err := checkTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ArticleNotFoundError{ID: id}
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Text != nil {
			updates["text"] = *req.Text
		}

		if req.Tags != nil {
			ids, err := s.tags.ResolveOrCreate(tx, *req.Tags)
			if err != nil {
				return err
			}
			if err := s.tags.Release(tx, article.Tags); err != nil {
				return err
			}
			if ids == nil {
				ids = []uint{}
			}
			updates["tags"] = datatypes.JSONSlice[uint](ids)
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&article).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Read(id)
}

// Remove 递归删除一组文章。文件夹会连同所有子孙一起删除，
// 每删一篇就归还它引用的全部标签权重。传入的 id 一个都不存在时直接视为成功。
func (s *ArticleService) Remove(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	var roots []models.Article
	if err := s.db.Where("id IN ?", ids).Find(&roots).Error; err != nil {
		return err
	}
	if len(roots) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// pid 构成森林，只向下展开不会成环；用显式队列避免深层级递归爆栈
		var releaseIDs []uint
		var removeIDs []uint

		queue := roots
		for len(queue) > 0 {
			article := queue[0]
			queue = queue[1:]

			removeIDs = append(removeIDs, article.ID)
			releaseIDs = append(releaseIDs, article.Tags...)

			if article.IsFolder {
				var children []models.Article
				if err := tx.Where("pid = ?", article.ID).Find(&children).Error; err != nil {
					return err
				}
				queue = append(queue, children...)
			}
		}

		if err := s.tags.Release(tx, releaseIDs); err != nil {
			return err
		}
		return tx.Where("id IN ?", removeIDs).Delete(&models.Article{}).Error
	})
}
