package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/service/provider"
)

const (
	name            = "whatsapp"
	defaultEndpoint = "https://graph.facebook.com/v19.0"
	maxBodyBytes    = 1024
)

var _ provider.Provider = (*Provider)(nil)

// Provider WhatsApp Cloud API 文本消息
type Provider struct {
	client   *http.Client
	endpoint string
	cfg      domain.WhatsAppConfig
}

func NewProvider(client *http.Client, cfg domain.WhatsAppConfig) *Provider {
	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Provider{client: client, endpoint: endpoint, cfg: cfg}
}

type textMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             messageText `json:"text"`
}

type messageText struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	if msg.To == "" {
		return fmt.Errorf("%w: 手机号为空", errs.ErrContactUnavailable)
	}
	body := msg.Body
	if msg.Title != "" {
		body = "*" + msg.Title + "*\n" + body
	}
	if msg.URL != "" {
		body += "\n" + msg.URL
	}
	data, err := json.Marshal(textMessage{
		MessagingProduct: "whatsapp",
		// Cloud API 不接受 + 前缀
		To:   strings.TrimPrefix(msg.To, "+"),
		Type: "text",
		Text: messageText{PreviewURL: msg.URL != "", Body: body},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendFailed, err)
	}

	url := fmt.Sprintf("%s/%s/messages", p.endpoint, p.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.cfg.AccessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	bs, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	return provider.NewStatusError(name, resp.StatusCode, string(bs))
}
