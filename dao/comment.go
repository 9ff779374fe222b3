package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{Repo: NewRepo[models.Comment](db)}
}

// Create 创建评论
func (d *CommentDAO) Create(ctx context.Context, comment *models.Comment) error {
	return d.Db.WithContext(ctx).Create(comment).Error
}

// GetByID 根据ID获取评论
func (d *CommentDAO) GetByID(ctx context.Context, commentID uint64) (*models.Comment, error) {
	return d.Repo.FindByID(ctx, commentID)
}

// ListByPost 帖子的全量评论, 平铺返回, 树在 service 层重建
// 已删除的墓碑和已移除的都带出来, 裁剪规则归组树逻辑管
func (d *CommentDAO) ListByPost(ctx context.Context, postID uint64) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := d.Db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// UpdateContent 编辑评论, 同时刷新 edited_at
func (d *CommentDAO) UpdateContent(ctx context.Context, commentID uint64, content string) error {
	return d.Db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Updates(map[string]any{
			"content":   content,
			"edited_at": gorm.Expr("NOW()"),
		}).Error
}

// SetDeleted 作者软删除, 只隐藏本节点内容
func (d *CommentDAO) SetDeleted(ctx context.Context, commentID uint64) error {
	return d.Db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_deleted", true).Error
}

// CountVisibleByPost 统计帖子的有效评论数, 用于计数对账
func (d *CommentDAO) CountVisibleByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_deleted = 0 AND is_removed = 0", postID).
		Count(&count).Error
	return count, err
}
