package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/go-kratos/aegis/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/service/provider"
	providermocks "notification-delivery/internal/service/provider/mocks"
)

type fakeBreaker struct {
	allow   error
	success int
	failed  int
}

func (b *fakeBreaker) Allow() error {
	return b.allow
}

func (b *fakeBreaker) MarkSuccess() {
	b.success++
}

func (b *fakeBreaker) MarkFailed() {
	b.failed++
}

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	msg := domain.Message{Channel: domain.ChannelEmail, UserID: 1, To: "a@example.com"}

	testCases := []struct {
		name        string
		breaker     *fakeBreaker
		mock        func(p *providermocks.MockProvider)
		wantErr     error
		wantSuccess int
		wantFailed  int
	}{
		{
			name:        "发送成功",
			breaker:     &fakeBreaker{},
			mock:        func(p *providermocks.MockProvider) { p.EXPECT().Send(gomock.Any(), msg).Return(nil) },
			wantSuccess: 1,
		},
		{
			name:    "熔断打开时不调用下游",
			breaker: &fakeBreaker{allow: circuitbreaker.ErrNotAllowed},
			mock:    func(p *providermocks.MockProvider) {},
			wantErr: errs.ErrCircuitOpen,
		},
		{
			name:    "可重试错误计入失败",
			breaker: &fakeBreaker{},
			mock: func(p *providermocks.MockProvider) {
				p.EXPECT().Send(gomock.Any(), msg).Return(provider.NewStatusError("postmark", 503, "unavailable"))
			},
			wantFailed: 1,
		},
		{
			name:    "接收者错误不计入失败",
			breaker: &fakeBreaker{},
			mock: func(p *providermocks.MockProvider) {
				p.EXPECT().Send(gomock.Any(), msg).Return(errs.ErrInvalidRecipient)
			},
			wantErr:     errs.ErrInvalidRecipient,
			wantSuccess: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mp := providermocks.NewMockProvider(ctrl)
			tc.mock(mp)
			err := NewProvider(mp, tc.breaker).Send(t.Context(), msg)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantFailed > 0 {
				var se *provider.StatusError
				assert.True(t, errors.As(err, &se))
			}
			assert.Equal(t, tc.wantSuccess, tc.breaker.success)
			assert.Equal(t, tc.wantFailed, tc.breaker.failed)
		})
	}
}
