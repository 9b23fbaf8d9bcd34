package services

import (
	"article-backend/internal/models"
	"article-backend/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// ResolveOrCreate 在事务 tx 内把一组标签名换成 id：已存在的权重 +1，
// 不存在的按权重 1 新建。返回的 id 顺序与传入的名字顺序一致。
func (s *TagService) ResolveOrCreate(tx *gorm.DB, names []string) ([]uint, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var existing []models.Tag
	if err := tx.Where("name IN ?", names).Find(&existing).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names))
	existNames := make([]string, 0, len(existing))
	for _, tag := range existing {
		seen[tag.Name] = true
		existNames = append(existNames, tag.Name)
	}

	if len(existNames) > 0 {
		if err := tx.Model(&models.Tag{}).
			Where("name IN ?", existNames).
			UpdateColumn("weight", gorm.Expr("weight + 1")).Error; err != nil {
			return nil, err
		}
	}

	var missing []models.Tag
	for _, name := range names {
		if !seen[name] {
			missing = append(missing, models.Tag{Name: name, Weight: 1})
			// 同一批里重复的名字只建一次
			seen[name] = true
		}
	}
	if len(missing) > 0 {
		// name 上有唯一索引，并发撞名时落到已有行做 +1，保证同名只有一行
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"weight": gorm.Expr("tags.weight + 1")}),
		}).Create(&missing).Error; err != nil {
			return nil, err
		}
	}

	var all []models.Tag
	if err := tx.Where("name IN ?", names).Find(&all).Error; err != nil {
		return nil, err
	}
	idByName := make(map[string]uint, len(all))
	for _, tag := range all {
		idByName[tag.Name] = tag.ID
	}
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		ids = append(ids, idByName[name])
	}
	return ids, nil
}

// Release 按出现次数归还标签引用，weight 相应递减。这里不做零值钳制，
// ResolveOrCreate 和 Release 的次数配平由调用方负责。
func (s *TagService) Release(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	counts := make(map[uint]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}
	byCount := make(map[int][]uint)
	for id, n := range counts {
		byCount[n] = append(byCount[n], id)
	}

	for n, group := range byCount {
		if err := tx.Model(&models.Tag{}).
			Where("id IN ?", group).
			UpdateColumn("weight", gorm.Expr("weight - ?", n)).Error; err != nil {
			return err
		}
	}
	return nil
}

// ResolveNames 把标签 id 换回标签名，用于文章详情展示
func (s *TagService) ResolveNames(ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	var tags []models.Tag
	if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(tags))
	for _, tag := range tags {
		nameByID[tag.ID] = tag.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := nameByID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// List 按权重倒序分页列出标签，权重相同的按 id 升序保证稳定
func (s *TagService) List(req *models.TagListRequest) (*models.PageResult, error) {
	page, pageSize := utils.NormalizePage(req.Page, req.PageSize)

	var total int64
	if err := s.db.Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var tags []models.Tag
	if err := s.db.Order("weight DESC, id ASC").
		Offset(utils.Offset(page, pageSize)).
		Limit(pageSize).
		Find(&tags).Error; err != nil {
		return nil, err
	}

	return utils.NewPageResult(total, page, pageSize, tags), nil
}
