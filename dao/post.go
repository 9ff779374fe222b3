package dao

import (
	"Agora/models"
	"Agora/pkg/cursor"
	"context"
	"time"

	"gorm.io/gorm"
)

// 游标里的时间是纳秒时间戳
func unixNano(ns int64) time.Time {
	return time.Unix(0, ns)
}

type PostDAO struct {
	Repo[models.Post]
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{Repo: NewRepo[models.Post](db)}
}

// Create 创建帖子
func (d *PostDAO) Create(ctx context.Context, post *models.Post) error {
	return d.Db.WithContext(ctx).Create(post).Error
}

// UpdateByID 更新帖子字段(置顶/锁定/删除/移除等)
func (d *PostDAO) UpdateByID(ctx context.Context, postID uint64, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Updates(data).Error
}

// IncrCommentCount 评论计数增减
func (d *PostDAO) IncrCommentCount(ctx context.Context, postID uint64, delta int) error {
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count + ?, 0)", delta)).
		Error
}

// IncrViewCount 浏览计数
func (d *PostDAO) IncrViewCount(ctx context.Context, postID uint64) error {
	return d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
}

// ListPinned 社区置顶帖, 按创建时间倒序, 永远排在信息流最前
func (d *PostDAO) ListPinned(ctx context.Context, communityID uint64) ([]*models.Post, error) {
	var posts []*models.Post
	err := d.Db.WithContext(ctx).
		Where("community_id = ? AND is_pinned = 1 AND is_deleted = 0 AND is_removed = 0", communityID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// feedQuery 信息流基础查询: 排除已删除/已移除, 可选限定社区范围和排除置顶
func (d *PostDAO) feedQuery(ctx context.Context, communityIDs []uint64, excludePinned bool) *gorm.DB {
	query := d.Db.WithContext(ctx).
		Model(&models.Post{}).
		Where("is_deleted = 0 AND is_removed = 0")
	if len(communityIDs) > 0 {
		query = query.Where("community_id IN ?", communityIDs)
	}
	if excludePinned {
		query = query.Where("is_pinned = 0")
	}
	return query
}

// ListByHot 热度排序, 游标为 (hot_rank, id)
func (d *PostDAO) ListByHot(ctx context.Context, communityIDs []uint64, excludePinned bool, cur *cursor.Cursor, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	query := d.feedQuery(ctx, communityIDs, excludePinned)

	if cur != nil {
		query = query.Where("hot_rank < ? OR (hot_rank = ? AND id < ?)", cur.Rank, cur.Rank, cur.ID)
	}

	err := query.
		Order("hot_rank DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListByNew 时间排序, 游标为 (created_at, id)
func (d *PostDAO) ListByNew(ctx context.Context, communityIDs []uint64, excludePinned bool, cur *cursor.Cursor, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	query := d.feedQuery(ctx, communityIDs, excludePinned)

	if cur != nil {
		cursorTime := unixNano(cur.Time)
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", cursorTime, cursorTime, cur.ID)
	}

	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListByTop 分数排序, 游标为 (score, id)
func (d *PostDAO) ListByTop(ctx context.Context, communityIDs []uint64, excludePinned bool, cur *cursor.Cursor, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	query := d.feedQuery(ctx, communityIDs, excludePinned)

	if cur != nil {
		query = query.Where("score < ? OR (score = ? AND id < ?)", cur.Score, cur.Score, cur.ID)
	}

	err := query.
		Order("score DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
