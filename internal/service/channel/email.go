package channel

import (
	"context"
	"strings"

	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/service/provider"
)

type emailChannel struct {
	provider provider.Provider
	cfg      domain.EmailConfig
}

func NewEmailChannel(p provider.Provider, cfg domain.EmailConfig) Channel {
	return &emailChannel{provider: p, cfg: cfg}
}

func (c *emailChannel) Name() domain.Channel {
	return domain.ChannelEmail
}

func (c *emailChannel) Eligible(_ context.Context, recipient domain.Recipient) error {
	email := strings.TrimSpace(recipient.Email)
	if email == "" {
		return errs.ErrContactUnavailable
	}
	// 内部员工地址不接收群发邮件
	if c.cfg.IsExcludedEmail(email) {
		return errs.ErrRecipientExcluded
	}
	return nil
}

func (c *emailChannel) Send(ctx context.Context, recipient domain.Recipient, payload domain.Payload) error {
	if err := c.Eligible(ctx, recipient); err != nil {
		return err
	}
	return c.provider.Send(ctx, domain.Message{
		Channel: domain.ChannelEmail,
		UserID:  recipient.UserID,
		To:      strings.TrimSpace(recipient.Email),
		Title:   payload.Title,
		Body:    payload.Body,
		URL:     payload.URL,
	})
}
