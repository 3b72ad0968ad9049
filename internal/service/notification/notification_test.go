package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/idgenerator"
	"notification-delivery/internal/pkg/retry"
	repomocks "notification-delivery/internal/repository/mocks"
	analyticsmocks "notification-delivery/internal/service/analytics/mocks"
	"notification-delivery/internal/service/channel"
	directorymocks "notification-delivery/internal/service/directory/mocks"
	"notification-delivery/internal/service/provider"
)

// scriptedProvider 按用户返回预设的结果，并记录调用次数
type scriptedProvider struct {
	mu     sync.Mutex
	calls  map[int64]int
	script func(userID int64, call int) error
}

func newScriptedProvider(script func(userID int64, call int) error) *scriptedProvider {
	return &scriptedProvider{calls: make(map[int64]int), script: script}
}

func (p *scriptedProvider) Send(_ context.Context, msg domain.Message) error {
	p.mu.Lock()
	p.calls[msg.UserID]++
	call := p.calls[msg.UserID]
	p.mu.Unlock()
	return p.script(msg.UserID, call)
}

func (p *scriptedProvider) Calls(userID int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[userID]
}

type serviceDeps struct {
	ctrl          *gomock.Controller
	repo          *repomocks.MockDeliveryRepository
	templateRepo  *repomocks.MockTemplateRepository
	directory     *directorymocks.MockDirectory
	trigger       *analyticsmocks.MockTrigger
	emailProvider *scriptedProvider
	smsProvider   *scriptedProvider
}

var channelsConfig = domain.ChannelsConfig{
	Email: domain.EmailConfig{ServerToken: "token", From: "noreply@example.org"},
	SMS: domain.SMSConfig{
		DefaultCountryCode: "1",
		Aliyun:             domain.AliyunSMSConfig{AccessKeyID: "id", AccessKeySecret: "secret", TemplateCode: "SMS_1"},
	},
}

func newTestService(t *testing.T, emailScript, smsScript func(userID int64, call int) error) (Service, *serviceDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	s := &serviceDeps{
		ctrl:          ctrl,
		repo:          repomocks.NewMockDeliveryRepository(ctrl),
		templateRepo:  repomocks.NewMockTemplateRepository(ctrl),
		directory:     directorymocks.NewMockDirectory(ctrl),
		trigger:       analyticsmocks.NewMockTrigger(ctrl),
		emailProvider: newScriptedProvider(emailScript),
		smsProvider:   newScriptedProvider(smsScript),
	}

	strategy, err := retry.NewRetry(retry.Config{
		Type:          retry.TypeFixed,
		FixedInterval: &retry.FixedIntervalConfig{Interval: time.Millisecond, MaxRetries: 3},
	})
	require.NoError(t, err)

	p, err := pool.NewOnDemandBlockTaskPool(4, 16)
	require.NoError(t, err)
	require.NoError(t, p.Start())
	t.Cleanup(func() { _, _ = p.ShutdownNow() })

	svc := NewService(
		channel.NewAvailabilityChecker(channelsConfig),
		channel.NewDispatcher(
			channel.NewEmailChannel(s.emailProvider, channelsConfig.Email),
			channel.NewSMSChannel(s.smsProvider, channelsConfig.SMS.DefaultCountryCode),
		),
		s.directory,
		s.repo,
		s.templateRepo,
		s.trigger,
		retry.NewExecutor(strategy, retry.DefaultClassifier()),
		p,
		idgenerator.NewGenerator(),
		time.Second,
	)
	return svc, s
}

func alwaysOK(int64, int) error { return nil }

func TestService_SendNotification_Scenario(t *testing.T) {
	t.Parallel()

	const (
		userA int64 = 1
		userB int64 = 2
		userC int64 = 3
	)
	svc, s := newTestService(t,
		func(userID int64, call int) error {
			// B 的邮件前两次临时失败
			if userID == userB && call < 3 {
				return provider.NewStatusError("postmark", 503, "service unavailable")
			}
			return nil
		},
		func(userID int64, _ int) error {
			if userID == userC {
				return provider.NewStatusError("aliyun", 400, "template rejected")
			}
			return nil
		},
	)

	recipients := []domain.Recipient{
		{UserID: userA, Name: "A", Email: "a@example.org", Role: domain.RoleDonor},
		{UserID: userB, Name: "B", Email: "b@example.org", Phone: "555-000-0002", Role: domain.RoleDonor},
		{UserID: userC, Name: "C", Email: "c@example.org", Phone: "555-000-0003", Role: domain.RoleDonor},
	}
	s.directory.EXPECT().ListUsers(gomock.Any(), []domain.Role{domain.RoleDonor}).Return(recipients, nil)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, record domain.DeliveryRecord) error {
		assert.Equal(t, domain.DeliveryPhaseDispatching, record.Phase)
		assert.Equal(t, int64(6), record.PendingCount())
		return nil
	})
	var saved domain.DeliveryRecord
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, record domain.DeliveryRecord) error {
		saved = record
		return nil
	})
	s.trigger.EXPECT().Trigger(gomock.Any(), gomock.Any())
	s.templateRepo.EXPECT().IncrUsage(gomock.Any(), int64(9)).Return(nil)

	res, err := svc.SendNotification(t.Context(), domain.NotificationRequest{
		Title:      "新活动",
		Body:       "本周六义卖",
		Channels:   []domain.Channel{domain.ChannelEmail, domain.ChannelSMS},
		Roles:      []domain.Role{domain.RoleDonor},
		SenderID:   100,
		TemplateID: 9,
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.TotalUsers)
	assert.Equal(t, int64(4), res.TotalSent)
	assert.Equal(t, int64(2), res.TotalFail)
	assert.Equal(t, map[domain.Channel]domain.ChannelCount{
		domain.ChannelEmail: {Sent: 3},
		domain.ChannelSMS:   {Sent: 1, Failed: 2},
	}, res.Results)
	assert.Equal(t, saved.ID, res.DeliveryID)

	// 所有投递都已结束，计数一致
	assert.Equal(t, domain.DeliveryPhaseDone, saved.Phase)
	assert.Zero(t, saved.PendingCount())
	assert.Equal(t, saved.AttemptCount(), saved.TotalSent+saved.TotalFailed)

	attempt := func(userID int64, ch domain.Channel) domain.ChannelAttempt {
		for _, r := range saved.Recipients {
			if r.UserID != userID {
				continue
			}
			for _, a := range r.Channels {
				if a.Channel == ch {
					return a
				}
			}
		}
		t.Fatalf("没有找到投递 %d %s", userID, ch)
		return domain.ChannelAttempt{}
	}

	aSMS := attempt(userA, domain.ChannelSMS)
	assert.Equal(t, domain.AttemptStatusFailed, aSMS.Status)
	assert.Equal(t, channel.MsgContactUnavailable, aSMS.Error)
	assert.Zero(t, aSMS.Attempts)
	assert.Zero(t, s.smsProvider.Calls(userA))

	bEmail := attempt(userB, domain.ChannelEmail)
	assert.Equal(t, domain.AttemptStatusSent, bEmail.Status)
	assert.Equal(t, 3, bEmail.Attempts)
	assert.Equal(t, 3, s.emailProvider.Calls(userB))

	cSMS := attempt(userC, domain.ChannelSMS)
	assert.Equal(t, domain.AttemptStatusFailed, cSMS.Status)
	assert.Equal(t, 1, cSMS.Attempts)
	assert.Equal(t, 1, s.smsProvider.Calls(userC))
	assert.Equal(t, channel.MsgDeliveryFailed, cSMS.Error)
}

func TestService_SendNotification_Preconditions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     domain.NotificationRequest
		mock    func(s *serviceDeps)
		wantErr error
	}{
		{
			name:    "参数错误",
			req:     domain.NotificationRequest{Channels: []domain.Channel{domain.ChannelEmail}},
			mock:    func(s *serviceDeps) {},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name: "没有可用渠道",
			req: domain.NotificationRequest{
				Title:    "通知",
				Channels: []domain.Channel{domain.ChannelPush, domain.ChannelWhatsApp},
				Roles:    []domain.Role{domain.RoleEveryone},
			},
			mock:    func(s *serviceDeps) {},
			wantErr: errs.ErrNoAvailableChannel,
		},
		{
			name: "没有接收者",
			req: domain.NotificationRequest{
				Title:    "通知",
				Channels: []domain.Channel{domain.ChannelEmail},
				Roles:    []domain.Role{domain.RoleVolunteer},
			},
			mock: func(s *serviceDeps) {
				s.directory.EXPECT().ListUsers(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr: errs.ErrNoRecipients,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, s := newTestService(t, alwaysOK, alwaysOK)
			tc.mock(s)

			res, err := svc.SendNotification(t.Context(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.False(t, res.Success)
			assert.NotEmpty(t, res.Error)
			assert.Zero(t, s.emailProvider.Calls(1))
		})
	}
}

func TestService_SendNotification_PersistenceFailure(t *testing.T) {
	t.Parallel()
	svc, s := newTestService(t, alwaysOK, alwaysOK)

	s.directory.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
		Return([]domain.Recipient{{UserID: 1, Email: "a@example.org"}}, nil)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("mock db error"))
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("mock db error"))
	s.trigger.EXPECT().Trigger(gomock.Any(), gomock.Any())

	// 保存失败只记录日志，结果照常返回
	res, err := svc.SendNotification(t.Context(), domain.NotificationRequest{
		Title:    "通知",
		Channels: []domain.Channel{domain.ChannelEmail},
		Roles:    []domain.Role{domain.RoleEveryone},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(1), res.TotalSent)
}

func TestService_SendNotification_TemplateUsageFailure(t *testing.T) {
	t.Parallel()
	svc, s := newTestService(t, alwaysOK, alwaysOK)

	s.directory.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
		Return([]domain.Recipient{{UserID: 1, Email: "a@example.org"}}, nil)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record domain.DeliveryRecord) error {
			assert.Equal(t, domain.DeliveryPhaseDone, record.Phase)
			assert.Equal(t, int64(1), record.TotalSent)
			return nil
		})
	s.trigger.EXPECT().Trigger(gomock.Any(), gomock.Any())
	s.templateRepo.EXPECT().IncrUsage(gomock.Any(), int64(3)).Return(errors.New("mock db error"))

	// 模板使用次数更新失败不影响发送结果
	res, err := svc.SendNotification(t.Context(), domain.NotificationRequest{
		Title:      "通知",
		Channels:   []domain.Channel{domain.ChannelEmail},
		Roles:      []domain.Role{domain.RoleEveryone},
		TemplateID: 3,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(1), res.TotalSent)
	assert.Empty(t, res.Error)
}

func TestService_SendNotification_AllFailed(t *testing.T) {
	t.Parallel()
	svc, s := newTestService(t, alwaysOK, alwaysOK)

	s.directory.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
		Return([]domain.Recipient{{UserID: 1, Email: "staff@example.org"}, {UserID: 2}}, nil)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	s.trigger.EXPECT().Trigger(gomock.Any(), gomock.Any())

	res, err := svc.NotifyByRole(t.Context(), []domain.Role{domain.RoleStaff}, domain.NotificationRequest{
		Title:    "通知",
		Channels: []domain.Channel{domain.ChannelSMS},
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, int64(2), res.TotalFail)
	assert.NotEmpty(t, res.Error)
	assert.Zero(t, s.smsProvider.Calls(1))
}

func TestService_NotifyUsers(t *testing.T) {
	t.Parallel()
	svc, s := newTestService(t, alwaysOK, alwaysOK)

	s.directory.EXPECT().ListByIDs(gomock.Any(), []int64{1, 2}).
		Return([]domain.Recipient{
			{UserID: 1, Email: "a@example.org", Phone: "5550000001"},
			{UserID: 2, Email: "b@example.org", Phone: "5550000002"},
		}, nil)
	s.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	s.trigger.EXPECT().Trigger(gomock.Any(), gomock.Any())

	res, err := svc.NotifyUsers(t.Context(), []int64{1, 2}, domain.NotificationRequest{
		Title:    "聊天消息",
		Body:     "你有一条新消息",
		Channels: []domain.Channel{domain.ChannelEmail, domain.ChannelSMS, domain.ChannelEmail},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(4), res.TotalSent)
	assert.Zero(t, res.TotalFail)
}
