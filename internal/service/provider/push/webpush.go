package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/service/provider"
)

const (
	name         = "webpush"
	maxBodyBytes = 512
	defaultTTL   = 24 * 60 * 60
)

var _ provider.Provider = (*Provider)(nil)

// Provider 基于 VAPID 的浏览器推送，凭证在构造时注入
type Provider struct {
	options webpush.Options
}

// NewProvider client 为空时使用默认的 http.Client
func NewProvider(cfg domain.PushConfig, client webpush.HTTPClient) *Provider {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Provider{
		options: webpush.Options{
			HTTPClient:      client,
			Subscriber:      cfg.Subscriber,
			TTL:             ttl,
			Urgency:         webpush.UrgencyNormal,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
		},
	}
}

type notificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	if msg.Subscription == nil {
		return fmt.Errorf("%w: 用户 %d 没有推送订阅", errs.ErrContactUnavailable, msg.UserID)
	}
	data, err := json.Marshal(notificationPayload{Title: msg.Title, Body: msg.Body, URL: msg.URL})
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendFailed, err)
	}
	// 每次调用复制一份，避免并发修改
	opts := p.options
	resp, err := webpush.SendNotificationWithContext(ctx, data, &webpush.Subscription{
		Endpoint: msg.Subscription.Endpoint,
		Keys: webpush.Keys{
			Auth:   msg.Subscription.Auth,
			P256dh: msg.Subscription.P256dh,
		},
	}, &opts)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendFailed, err)
	}
	body := ""
	if resp.Body != nil {
		bs, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		body = string(bs)
		_ = resp.Body.Close()
	}
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: %w", errs.ErrSubscriptionGone, provider.NewStatusError(name, resp.StatusCode, body))
	case resp.StatusCode >= http.StatusMultipleChoices:
		return provider.NewStatusError(name, resp.StatusCode, body)
	}
	return nil
}
