package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/pkg/sqlx"
)

// DailyAnalytics 每日投递统计表，一天一行
type DailyAnalytics struct {
	ID          int64                                                   `gorm:"primaryKey;autoIncrement"`
	Date        string                                                  `gorm:"type:CHAR(10);NOT NULL;uniqueIndex:uk_date;comment:'UTC 日期 2006-01-02'"`
	TotalSent   int64                                                   `gorm:"type:INT;NOT NULL;DEFAULT:0"`
	TotalFailed int64                                                   `gorm:"type:INT;NOT NULL;DEFAULT:0"`
	ByChannel   sqlx.JSONColumn[map[domain.Channel]domain.ChannelCount] `gorm:"type:JSON;comment:'按渠道统计'"`
	ByRole      sqlx.JSONColumn[map[domain.Role]domain.ChannelCount]    `gorm:"type:JSON;comment:'按角色统计'"`
	Ctime       int64
	Utime       int64
}

// TableName 重命名表
func (DailyAnalytics) TableName() string {
	return "daily_analytics"
}

type analyticsDAO struct {
	db *egorm.Component
}

func NewAnalyticsDAO(db *egorm.Component) AnalyticsDAO {
	return &analyticsDAO{db: db}
}

// Upsert 以日期为键整行替换统计结果
func (a *analyticsDAO) Upsert(ctx context.Context, data DailyAnalytics) error {
	now := time.Now().UnixMilli()
	data.Ctime, data.Utime = now, now
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_sent", "total_failed", "by_channel", "by_role", "utime",
		}),
	}).Create(&data).Error
}

func (a *analyticsDAO) FindByDate(ctx context.Context, date string) (DailyAnalytics, error) {
	var res DailyAnalytics
	err := a.db.WithContext(ctx).Where("date = ?", date).First(&res).Error
	return res, err
}

// FindRange 日期位于 [start, end] 的统计，按日期升序
func (a *analyticsDAO) FindRange(ctx context.Context, start, end string) ([]DailyAnalytics, error) {
	var res []DailyAnalytics
	err := a.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&res).Error
	return res, err
}

// FindDates 只查询已经存在的日期
func (a *analyticsDAO) FindDates(ctx context.Context, start, end string) ([]string, error) {
	var dates []string
	err := a.db.WithContext(ctx).Model(&DailyAnalytics{}).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}
