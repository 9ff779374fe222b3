package dao

import (
	"Agora/models"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type SavedPostDAO struct {
	Repo[models.SavedPost]
}

func NewSavedPostDAO(db *gorm.DB) *SavedPostDAO {
	return &SavedPostDAO{Repo: NewRepo[models.SavedPost](db)}
}

// Save 收藏, 重复收藏视为已收藏
func (d *SavedPostDAO) Save(ctx context.Context, userID, postID uint64) error {
	item := &models.SavedPost{UserID: userID, PostID: postID, CreatedAt: time.Now()}
	err := d.Db.WithContext(ctx).Create(item).Error
	if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
		return nil
	}
	return err
}

// Unsave 取消收藏
func (d *SavedPostDAO) Unsave(ctx context.Context, userID, postID uint64) error {
	return d.Db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{}).Error
}

// BatchCheckSaved 批量查询收藏状态
func (d *SavedPostDAO) BatchCheckSaved(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	result := make(map[uint64]bool)
	if len(postIDs) == 0 {
		return result, nil
	}

	var items []*models.SavedPost
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		result[item.PostID] = true
	}

	return result, nil
}
