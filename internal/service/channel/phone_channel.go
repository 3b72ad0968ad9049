package channel

import (
	"context"

	"notification-delivery/internal/domain"
	"notification-delivery/internal/service/provider"
)

// phoneChannel 短信和 WhatsApp 都按手机号投递
type phoneChannel struct {
	name               domain.Channel
	provider           provider.Provider
	defaultCountryCode string
}

func NewSMSChannel(p provider.Provider, defaultCountryCode string) Channel {
	return &phoneChannel{
		name:               domain.ChannelSMS,
		provider:           p,
		defaultCountryCode: defaultCountryCode,
	}
}

func NewWhatsAppChannel(p provider.Provider, defaultCountryCode string) Channel {
	return &phoneChannel{
		name:               domain.ChannelWhatsApp,
		provider:           p,
		defaultCountryCode: defaultCountryCode,
	}
}

func (c *phoneChannel) Name() domain.Channel {
	return c.name
}

func (c *phoneChannel) Eligible(_ context.Context, recipient domain.Recipient) error {
	_, err := NormalizePhone(recipient.Phone, c.defaultCountryCode)
	return err
}

func (c *phoneChannel) Send(ctx context.Context, recipient domain.Recipient, payload domain.Payload) error {
	to, err := NormalizePhone(recipient.Phone, c.defaultCountryCode)
	if err != nil {
		return err
	}
	return c.provider.Send(ctx, domain.Message{
		Channel: c.name,
		UserID:  recipient.UserID,
		To:      to,
		Title:   payload.Title,
		Body:    payload.Body,
		URL:     payload.URL,
	})
}
