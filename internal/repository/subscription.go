package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/repository/cache"
	"notification-delivery/internal/repository/dao"
)

type subscriptionRepository struct {
	dao    dao.SubscriptionDAO
	cache  cache.SubscriptionCache
	logger *elog.Component
}

func NewSubscriptionRepository(d dao.SubscriptionDAO, c cache.SubscriptionCache) SubscriptionRepository {
	return &subscriptionRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *subscriptionRepository) Save(ctx context.Context, sub domain.PushSubscription) error {
	err := r.dao.Upsert(ctx, dao.PushSubscription{
		UserID:   sub.UserID,
		Endpoint: sub.Endpoint,
		P256dh:   sub.P256dh,
		Auth:     sub.Auth,
	})
	if err != nil {
		return err
	}
	return r.cache.Del(ctx, sub.UserID)
}

func (r *subscriptionRepository) FindByUserID(ctx context.Context, userID int64) (domain.PushSubscription, error) {
	sub, err := r.cache.Get(ctx, userID)
	if err == nil {
		return sub, nil
	}
	entity, err := r.dao.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.PushSubscription{}, fmt.Errorf("%w: userID = %d", errs.ErrSubscriptionNotFound, userID)
	}
	if err != nil {
		return domain.PushSubscription{}, err
	}
	sub = domain.PushSubscription{
		ID:       entity.ID,
		UserID:   entity.UserID,
		Endpoint: entity.Endpoint,
		P256dh:   entity.P256dh,
		Auth:     entity.Auth,
		Ctime:    entity.Ctime,
		Utime:    entity.Utime,
	}
	if err = r.cache.Set(ctx, sub); err != nil {
		r.logger.Warn("回写推送订阅缓存失败", elog.Int64("userID", userID), elog.FieldErr(err))
	}
	return sub, nil
}

// DeleteByUserID 订阅失效后删除，先删库再删缓存
func (r *subscriptionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if err := r.dao.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return r.cache.Del(ctx, userID)
}
