package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gilandre/senator-dashboard-sub005/internal/dto"
	"github.com/gilandre/senator-dashboard-sub005/internal/model"
)

// AccessEventRepository 门禁事件数据访问接口
type AccessEventRepository interface {
	Create(ctx context.Context, event *model.AccessEvent) error
	// CreateIgnoreDuplicate 插入单条事件；与唯一索引 (badge, date, time, reader) 冲突时
	// 静默跳过。返回 true 表示实际插入。
	CreateIgnoreDuplicate(ctx context.Context, event *model.AccessEvent) (bool, error)
	GetByID(ctx context.Context, id string) (*model.AccessEvent, error)
	List(ctx context.Context, filter *dto.AccessLogFilter) ([]model.AccessEvent, int64, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]model.AccessEvent, error)
	ListUnprocessed(ctx context.Context, limit int) ([]model.AccessEvent, error)
	SetProcessed(ctx context.Context, ids []string) error
	ClearProcessed(ctx context.Context, ids []string) error
	Delete(ctx context.Context, id string) error
}

// accessEventRepo AccessEventRepository 的 GORM 实现
type accessEventRepo struct {
	db *gorm.DB
}

// NewAccessEventRepo 创建 AccessEventRepository 实例
func NewAccessEventRepo(db *gorm.DB) AccessEventRepository {
	return &accessEventRepo{db: db}
}

func (r *accessEventRepo) Create(ctx context.Context, event *model.AccessEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *accessEventRepo) CreateIgnoreDuplicate(ctx context.Context, event *model.AccessEvent) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *accessEventRepo) GetByID(ctx context.Context, id string) (*model.AccessEvent, error) {
	var event model.AccessEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *accessEventRepo) List(ctx context.Context, filter *dto.AccessLogFilter) ([]model.AccessEvent, int64, error) {
	var events []model.AccessEvent
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AccessEvent{})
	db = applyAccessLogFilter(db, filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(filter.Offset()).Limit(filter.GetPageSize()).
		Order("event_date DESC, event_time DESC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// applyAccessLogFilter 将类型化过滤参数转为参数化查询条件
func applyAccessLogFilter(db *gorm.DB, filter *dto.AccessLogFilter) *gorm.DB {
	if filter.BadgeNumber != "" {
		db = db.Where("badge_number = ?", filter.BadgeNumber)
	}
	if filter.StartDate != "" {
		if d, err := time.Parse("02/01/2006", filter.StartDate); err == nil {
			db = db.Where("event_date >= ?", d)
		}
	}
	if filter.EndDate != "" {
		if d, err := time.Parse("02/01/2006", filter.EndDate); err == nil {
			db = db.Where("event_date <= ?", d)
		}
	}
	if filter.Reader != "" {
		db = db.Where("reader = ?", filter.Reader)
	}
	if filter.EventType != "" {
		db = db.Where("event_type = ?", filter.EventType)
	}
	if filter.PersonType != "" {
		db = db.Where("person_type = ?", filter.PersonType)
	}
	if filter.GroupName != "" {
		db = db.Where("group_name = ?", filter.GroupName)
	}
	if filter.Processed != nil {
		db = db.Where("processed = ?", *filter.Processed)
	}
	return db
}

func (r *accessEventRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.AccessEvent, error) {
	var events []model.AccessEvent
	err := r.db.WithContext(ctx).
		Where("event_date >= ? AND event_date <= ?", start, end).
		Order("event_date ASC, event_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *accessEventRepo) ListUnprocessed(ctx context.Context, limit int) ([]model.AccessEvent, error) {
	var events []model.AccessEvent
	err := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("event_date ASC, event_time ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *accessEventRepo) SetProcessed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.AccessEvent{}).
		Where("event_id IN ?", ids).
		Update("processed", true).Error
}

func (r *accessEventRepo) ClearProcessed(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.AccessEvent{}).
		Where("event_id IN ?", ids).
		Update("processed", false).Error
}

func (r *accessEventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", id).
		Delete(&model.AccessEvent{}).Error
}
