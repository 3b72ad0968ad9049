package whatsapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/retry"
)

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		status        int
		to            string
		wantErr       error
		wantFail      bool
		wantRetryable bool
	}{
		{name: "发送成功", status: http.StatusOK, to: "+919876543210"},
		{name: "手机号为空", status: http.StatusOK, wantErr: errs.ErrContactUnavailable, wantFail: true},
		{name: "限流", status: http.StatusTooManyRequests, to: "+919876543210", wantFail: true, wantRetryable: true},
		{name: "令牌无效", status: http.StatusUnauthorized, to: "+919876543210", wantFail: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got textMessage
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/PHONE_ID/messages", r.URL.Path)
				assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{}`))
			}))
			defer server.Close()

			p := NewProvider(server.Client(), domain.WhatsAppConfig{
				Endpoint:      server.URL,
				AccessToken:   "token",
				PhoneNumberID: "PHONE_ID",
			})
			err := p.Send(t.Context(), domain.Message{
				Channel: domain.ChannelWhatsApp,
				To:      tc.to,
				Title:   "志愿者招募",
				Body:    "本周六需要10名志愿者",
			})
			if !tc.wantFail {
				require.NoError(t, err)
				assert.Equal(t, "919876543210", got.To)
				assert.Equal(t, "whatsapp", got.MessagingProduct)
				assert.Equal(t, "*志愿者招募*\n本周六需要10名志愿者", got.Text.Body)
				return
			}
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			assert.Equal(t, tc.wantRetryable, retry.IsRetryable(err))
		})
	}
}
