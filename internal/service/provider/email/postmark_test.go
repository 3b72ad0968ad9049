package email

import (
	"context"
	"errors"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
)

type fakeClient struct {
	resp postmark.EmailResponse
	err  error
	sent []postmark.Email
}

func (f *fakeClient) SendEmail(_ context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	f.sent = append(f.sent, email)
	return f.resp, f.err
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	cfg := domain.EmailConfig{
		From:    "noreply@welfare.example.org",
		ReplyTo: "support@welfare.example.org",
		Tag:     "notification",
	}
	msg := domain.Message{
		Channel: domain.ChannelEmail,
		UserID:  3,
		To:      "donor@example.com",
		Title:   "感谢您的捐赠",
		Body:    "您的捐赠已到账 <100元>",
		URL:     "https://welfare.example.org/d/3",
	}

	testCases := []struct {
		name    string
		client  *fakeClient
		msg     domain.Message
		wantErr error
	}{
		{name: "发送成功", client: &fakeClient{}, msg: msg},
		{name: "收件人为空", client: &fakeClient{}, msg: domain.Message{Channel: domain.ChannelEmail}, wantErr: errs.ErrContactUnavailable},
		{name: "网络错误", client: &fakeClient{err: errors.New("connection reset by peer")}, msg: msg, wantErr: errs.ErrSendFailed},
		{
			name:    "邮箱非法",
			client:  &fakeClient{resp: postmark.EmailResponse{ErrorCode: 300, Message: "Invalid email request"}},
			msg:     msg,
			wantErr: errs.ErrInvalidRecipient,
		},
		{
			name:    "其他业务错误",
			client:  &fakeClient{resp: postmark.EmailResponse{ErrorCode: 10, Message: "Bad or missing API token"}},
			msg:     msg,
			wantErr: errs.ErrSendFailed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p := NewProvider(tc.client, cfg)
			err := p.Send(t.Context(), tc.msg)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.name != "发送成功" {
				return
			}
			require.Len(t, tc.client.sent, 1)
			sent := tc.client.sent[0]
			assert.Equal(t, "donor@example.com", sent.To)
			assert.Equal(t, cfg.From, sent.From)
			assert.Equal(t, "感谢您的捐赠", sent.Subject)
			assert.Contains(t, sent.HTMLBody, "&lt;100元&gt;")
			assert.Contains(t, sent.HTMLBody, `href="https://welfare.example.org/d/3"`)
		})
	}
}
