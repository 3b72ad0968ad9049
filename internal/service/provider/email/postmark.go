package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/mrz1836/postmark"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/service/provider"
)

const (
	name = "postmark"

	// postmark 的业务错误码
	codeInvalidEmail      = 300
	codeInactiveRecipient = 406
)

var _ provider.Provider = (*Provider)(nil)

// Client *postmark.Client 满足该接口
type Client interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// Provider 通过 postmark 发送事务邮件
type Provider struct {
	client Client
	cfg    domain.EmailConfig
}

func NewProvider(client Client, cfg domain.EmailConfig) *Provider {
	return &Provider{client: client, cfg: cfg}
}

// NewPostmarkClient 创建 postmark 客户端
func NewPostmarkClient(cfg domain.EmailConfig) *postmark.Client {
	return postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	if msg.To == "" {
		return fmt.Errorf("%w: 邮箱为空", errs.ErrContactUnavailable)
	}
	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:       p.cfg.From,
		ReplyTo:    p.cfg.ReplyTo,
		To:         msg.To,
		Subject:    msg.Title,
		Tag:        p.cfg.Tag,
		HTMLBody:   renderHTML(msg),
		TextBody:   renderText(msg),
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSendFailed, err)
	}
	switch resp.ErrorCode {
	case 0:
		return nil
	case codeInvalidEmail, codeInactiveRecipient:
		return fmt.Errorf("%w: postmark %d - %s", errs.ErrInvalidRecipient, resp.ErrorCode, resp.Message)
	default:
		return fmt.Errorf("%w: postmark %d - %s", errs.ErrSendFailed, resp.ErrorCode, resp.Message)
	}
}

func renderHTML(msg domain.Message) string {
	var sb strings.Builder
	sb.WriteString("<h2>")
	sb.WriteString(html.EscapeString(msg.Title))
	sb.WriteString("</h2><p>")
	sb.WriteString(strings.ReplaceAll(html.EscapeString(msg.Body), "\n", "<br>"))
	sb.WriteString("</p>")
	if msg.URL != "" {
		sb.WriteString(`<p><a href="`)
		sb.WriteString(html.EscapeString(msg.URL))
		sb.WriteString(`">查看详情</a></p>`)
	}
	return sb.String()
}

func renderText(msg domain.Message) string {
	if msg.URL == "" {
		return msg.Body
	}
	return msg.Body + "\n\n" + msg.URL
}
