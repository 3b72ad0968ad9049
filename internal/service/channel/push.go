package channel

import (
	"context"
	"errors"

	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/repository"
	"notification-delivery/internal/service/provider"
)

type pushChannel struct {
	provider provider.Provider
	subs     repository.SubscriptionRepository
	logger   *elog.Component
}

func NewPushChannel(p provider.Provider, subs repository.SubscriptionRepository) Channel {
	return &pushChannel{
		provider: p,
		subs:     subs,
		logger:   elog.DefaultLogger,
	}
}

func (c *pushChannel) Name() domain.Channel {
	return domain.ChannelPush
}

// Eligible 只有确认没有订阅时才不可达，查询失败交给 Send 处理，按重试规则重试
func (c *pushChannel) Eligible(ctx context.Context, recipient domain.Recipient) error {
	_, err := c.subscription(ctx, recipient.UserID)
	if errors.Is(err, errs.ErrContactUnavailable) {
		return err
	}
	if err != nil {
		c.logger.Warn("查询推送订阅失败", elog.Int64("userID", recipient.UserID), elog.FieldErr(err))
	}
	return nil
}

func (c *pushChannel) Send(ctx context.Context, recipient domain.Recipient, payload domain.Payload) error {
	sub, err := c.subscription(ctx, recipient.UserID)
	if err != nil {
		return err
	}
	err = c.provider.Send(ctx, domain.Message{
		Channel:      domain.ChannelPush,
		UserID:       recipient.UserID,
		Subscription: &sub,
		Title:        payload.Title,
		Body:         payload.Body,
		URL:          payload.URL,
	})
	if errors.Is(err, errs.ErrSubscriptionGone) {
		// 设备已经注销，删除订阅，下次直接判定为不可达
		if err1 := c.subs.DeleteByUserID(ctx, recipient.UserID); err1 != nil {
			c.logger.Warn("删除失效的推送订阅失败",
				elog.Int64("userID", recipient.UserID),
				elog.FieldErr(err1))
		}
	}
	return err
}

func (c *pushChannel) subscription(ctx context.Context, userID int64) (domain.PushSubscription, error) {
	sub, err := c.subs.FindByUserID(ctx, userID)
	if errors.Is(err, errs.ErrSubscriptionNotFound) {
		return domain.PushSubscription{}, errs.ErrContactUnavailable
	}
	return sub, err
}
