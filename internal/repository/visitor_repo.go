package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/internal/model"
)

// VisitorRepository 访客数据访问接口
type VisitorRepository interface {
	Create(ctx context.Context, visitor *model.Visitor) error
	GetByID(ctx context.Context, id string) (*model.Visitor, error)
	GetByBadge(ctx context.Context, badgeNumber string) (*model.Visitor, error)
	Update(ctx context.Context, visitor *model.Visitor) error
	// TouchSeen 更新访客最近到访日期（首次到访时一并写入 first_seen）
	TouchSeen(ctx context.Context, id string, seen time.Time) error
	List(ctx context.Context, offset, limit int) ([]model.Visitor, int64, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

// visitorRepo VisitorRepository 的 GORM 实现
type visitorRepo struct {
	db *gorm.DB
}

// NewVisitorRepo 创建 VisitorRepository 实例
func NewVisitorRepo(db *gorm.DB) VisitorRepository {
	return &visitorRepo{db: db}
}

func (r *visitorRepo) Create(ctx context.Context, visitor *model.Visitor) error {
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *visitorRepo) GetByID(ctx context.Context, id string) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.db.WithContext(ctx).
		Where("visitor_id = ?", id).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepo) GetByBadge(ctx context.Context, badgeNumber string) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.db.WithContext(ctx).
		Where("badge_number = ?", badgeNumber).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepo) Update(ctx context.Context, visitor *model.Visitor) error {
	return r.db.WithContext(ctx).Save(visitor).Error
}

func (r *visitorRepo) TouchSeen(ctx context.Context, id string, seen time.Time) error {
	updates := map[string]interface{}{"last_seen": seen}
	return r.db.WithContext(ctx).
		Model(&model.Visitor{}).
		Where("visitor_id = ?", id).
		Updates(updates).
		Update("first_seen", gorm.Expr("COALESCE(first_seen, ?)", seen)).Error
}

func (r *visitorRepo) List(ctx context.Context, offset, limit int) ([]model.Visitor, int64, error) {
	var visitors []model.Visitor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Visitor{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("last_seen DESC NULLS LAST").
		Find(&visitors).Error; err != nil {
		return nil, 0, err
	}

	return visitors, total, nil
}

func (r *visitorRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Visitor{}).
		Where("visitor_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_by": deletedBy,
		}).Error
}
