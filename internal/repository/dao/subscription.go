package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
)

// PushSubscription 浏览器推送订阅，每个用户保留最近一次
type PushSubscription struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	UserID   int64  `gorm:"type:BIGINT;NOT NULL;uniqueIndex:uk_user_id"`
	Endpoint string `gorm:"type:VARCHAR(1024);NOT NULL"`
	P256dh   string `gorm:"type:VARCHAR(255);NOT NULL"`
	Auth     string `gorm:"type:VARCHAR(255);NOT NULL"`
	Ctime    int64
	Utime    int64
}

// TableName 重命名表
func (PushSubscription) TableName() string {
	return "push_subscriptions"
}

type subscriptionDAO struct {
	db *egorm.Component
}

func NewSubscriptionDAO(db *egorm.Component) SubscriptionDAO {
	return &subscriptionDAO{db: db}
}

func (s *subscriptionDAO) Upsert(ctx context.Context, sub PushSubscription) error {
	now := time.Now().UnixMilli()
	sub.Ctime, sub.Utime = now, now
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"endpoint", "p256dh", "auth", "utime"}),
	}).Create(&sub).Error
}

func (s *subscriptionDAO) FindByUserID(ctx context.Context, userID int64) (PushSubscription, error) {
	var sub PushSubscription
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	return sub, err
}

func (s *subscriptionDAO) DeleteByUserID(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&PushSubscription{}).Error
}
