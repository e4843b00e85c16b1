package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gilandre/senator-dashboard-sub005/internal/model"
)

// AttendanceConfigRepository 考勤策略数据访问接口（单行配置）
type AttendanceConfigRepository interface {
	Get(ctx context.Context) (*model.AttendanceConfig, error)
	Update(ctx context.Context, cfg *model.AttendanceConfig) error
}

// attendanceConfigRepo AttendanceConfigRepository 的 GORM 实现
type attendanceConfigRepo struct {
	db *gorm.DB
}

// NewAttendanceConfigRepo 创建 AttendanceConfigRepository 实例
func NewAttendanceConfigRepo(db *gorm.DB) AttendanceConfigRepository {
	return &attendanceConfigRepo{db: db}
}

func (r *attendanceConfigRepo) Get(ctx context.Context) (*model.AttendanceConfig, error) {
	var cfg model.AttendanceConfig
	err := r.db.WithContext(ctx).
		Where("singleton = ?", true).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *attendanceConfigRepo) Update(ctx context.Context, cfg *model.AttendanceConfig) error {
	cfg.Singleton = true
	return r.db.WithContext(ctx).Save(cfg).Error
}
