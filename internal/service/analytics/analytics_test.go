package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/pool"
	"github.com/ecodeclub/ekit/syncx"
	"github.com/gotomicro/ego/core/elog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	repomocks "notification-delivery/internal/repository/mocks"
	analyticsmocks "notification-delivery/internal/service/analytics/mocks"
)

func newTestService(ctrl *gomock.Controller, now time.Time) (*service, *repomocks.MockDeliveryRepository, *repomocks.MockAnalyticsRepository) {
	deliveryRepo := repomocks.NewMockDeliveryRepository(ctrl)
	analyticsRepo := repomocks.NewMockAnalyticsRepository(ctrl)
	return &service{
		deliveryRepo:  deliveryRepo,
		analyticsRepo: analyticsRepo,
		dayLocks:      syncx.NewSegmentKeysLock(dayLockSegments),
		now:           func() time.Time { return now },
		logger:        elog.DefaultLogger,
	}, deliveryRepo, analyticsRepo
}

func attempts(statuses ...domain.AttemptStatus) []domain.ChannelAttempt {
	channels := []domain.Channel{domain.ChannelEmail, domain.ChannelSMS, domain.ChannelPush}
	res := make([]domain.ChannelAttempt, 0, len(statuses))
	for i, s := range statuses {
		res = append(res, domain.ChannelAttempt{Channel: channels[i], Status: s})
	}
	return res
}

func TestService_RecomputeDay(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	svc, deliveryRepo, analyticsRepo := newTestService(ctrl, day)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.DeliveryRecord{
		{
			ID:    1,
			Roles: []domain.Role{domain.RoleStaff, domain.RoleDonor},
			Recipients: []domain.RecipientEntry{
				{UserID: 1, Channels: attempts(domain.AttemptStatusSent, domain.AttemptStatusFailed)},
				{UserID: 2, Channels: attempts(domain.AttemptStatusSent, domain.AttemptStatusSent)},
			},
		},
		{
			ID:    2,
			Roles: []domain.Role{domain.RoleStaff},
			Recipients: []domain.RecipientEntry{
				{UserID: 3, Channels: attempts(domain.AttemptStatusFailed)},
			},
		},
	}
	want := domain.DailyAnalytics{
		Date:        "2026-03-01",
		TotalSent:   3,
		TotalFailed: 2,
		ByChannel: map[domain.Channel]domain.ChannelCount{
			domain.ChannelEmail: {Sent: 2, Failed: 1},
			domain.ChannelSMS:   {Sent: 1, Failed: 1},
		},
		ByRole: map[domain.Role]domain.ChannelCount{
			domain.RoleStaff: {Sent: 3, Failed: 2},
			domain.RoleDonor: {Sent: 3, Failed: 1},
		},
	}

	// 重复重算结果一致
	deliveryRepo.EXPECT().FindByCtimeRange(gomock.Any(), start.UnixMilli(), start.AddDate(0, 0, 1).UnixMilli()).
		Return(records, nil).Times(2)
	analyticsRepo.EXPECT().Upsert(gomock.Any(), want).Return(nil).Times(2)

	for range 2 {
		got, err := svc.RecomputeDay(t.Context(), day)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestService_RecomputeDay_Error(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deliveryRepo, _ := newTestService(ctrl, time.Now())
	deliveryRepo.EXPECT().FindByCtimeRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("mock db error"))

	_, err := svc.RecomputeDay(t.Context(), time.Now())
	assert.Error(t, err)
}

func TestService_RecomputeDay_Concurrent(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, deliveryRepo, analyticsRepo := newTestService(ctrl, day)

	var (
		mu      sync.Mutex
		records []domain.DeliveryRecord
		stored  domain.DailyAnalytics
		scans   atomic.Int32
	)
	started := make(chan struct{})
	release := make(chan struct{})
	deliveryRepo.EXPECT().FindByCtimeRange(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64) ([]domain.DeliveryRecord, error) {
			mu.Lock()
			snapshot := append([]domain.DeliveryRecord(nil), records...)
			mu.Unlock()
			// 第一次扫描读到空结果后卡住
			if scans.Add(1) == 1 {
				close(started)
				<-release
			}
			return snapshot, nil
		}).Times(2)
	analyticsRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a domain.DailyAnalytics) error {
			mu.Lock()
			stored = a
			mu.Unlock()
			return nil
		}).Times(2)

	first := make(chan error, 1)
	go func() {
		_, err := svc.RecomputeDay(t.Context(), day)
		first <- err
	}()
	<-started

	// 第一次扫描之后才保存的投递记录
	mu.Lock()
	records = append(records, domain.DeliveryRecord{
		ID:    1,
		Roles: []domain.Role{domain.RoleStaff},
		Recipients: []domain.RecipientEntry{
			{UserID: 1, Channels: attempts(domain.AttemptStatusSent)},
		},
	})
	mu.Unlock()

	second := make(chan domain.DailyAnalytics, 1)
	go func() {
		res, err := svc.RecomputeDay(t.Context(), day)
		assert.NoError(t, err)
		second <- res
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.NoError(t, <-first)
	res := <-second
	assert.Equal(t, int64(1), res.TotalSent)
	assert.Equal(t, int32(2), scans.Load())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int64(1), stored.TotalSent)
}

func TestService_Range(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		start   time.Time
		end     time.Time
		mock    func(repo *repomocks.MockAnalyticsRepository)
		want    []domain.DailyAnalyticsReport
		wantErr error
	}{
		{
			name:  "计算成功率",
			start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			mock: func(repo *repomocks.MockAnalyticsRepository) {
				repo.EXPECT().FindRange(gomock.Any(), "2026-03-01", "2026-03-02").Return([]domain.DailyAnalytics{
					{
						Date: "2026-03-01", TotalSent: 2, TotalFailed: 1,
						ByChannel: map[domain.Channel]domain.ChannelCount{domain.ChannelEmail: {Sent: 2, Failed: 1}},
						ByRole:    map[domain.Role]domain.ChannelCount{},
					},
					{
						Date:      "2026-03-02",
						ByChannel: map[domain.Channel]domain.ChannelCount{},
						ByRole:    map[domain.Role]domain.ChannelCount{domain.RoleDonor: {}},
					},
				}, nil)
			},
			want: []domain.DailyAnalyticsReport{
				{
					DailyAnalytics: domain.DailyAnalytics{
						Date: "2026-03-01", TotalSent: 2, TotalFailed: 1,
						ByChannel: map[domain.Channel]domain.ChannelCount{domain.ChannelEmail: {Sent: 2, Failed: 1}},
						ByRole:    map[domain.Role]domain.ChannelCount{},
					},
					SuccessRate:        66.67,
					ChannelSuccessRate: map[domain.Channel]float64{domain.ChannelEmail: 66.67},
					RoleSuccessRate:    map[domain.Role]float64{},
				},
				{
					DailyAnalytics: domain.DailyAnalytics{
						Date:      "2026-03-02",
						ByChannel: map[domain.Channel]domain.ChannelCount{},
						ByRole:    map[domain.Role]domain.ChannelCount{domain.RoleDonor: {}},
					},
					ChannelSuccessRate: map[domain.Channel]float64{},
					RoleSuccessRate:    map[domain.Role]float64{domain.RoleDonor: 0},
				},
			},
		},
		{
			name:    "开始日期晚于结束日期",
			start:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			end:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			mock:    func(repo *repomocks.MockAnalyticsRepository) {},
			wantErr: errs.ErrInvalidParameter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc, _, analyticsRepo := newTestService(ctrl, time.Now())
			tc.mock(analyticsRepo)

			got, err := svc.Range(t.Context(), tc.start, tc.end)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestService_Backfill(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	svc, deliveryRepo, analyticsRepo := newTestService(ctrl, now)

	analyticsRepo.EXPECT().FindDates(gomock.Any(), "2026-03-02", "2026-03-05").
		Return([]string{"2026-03-04"}, nil)

	dbErr := errors.New("mock db error")
	day := func(d int) int64 { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC).UnixMilli() }
	deliveryRepo.EXPECT().FindByCtimeRange(gomock.Any(), day(2), day(3)).Return(nil, nil)
	deliveryRepo.EXPECT().FindByCtimeRange(gomock.Any(), day(3), day(4)).Return(nil, dbErr)
	deliveryRepo.EXPECT().FindByCtimeRange(gomock.Any(), day(5), day(6)).Return(nil, nil)
	analyticsRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	filled, err := svc.Backfill(t.Context(), 4)
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, []string{"2026-03-02", "2026-03-05"}, filled)

	_, err = svc.Backfill(t.Context(), 0)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestLocalTrigger(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, err := pool.NewOnDemandBlockTaskPool(1, 4)
	require.NoError(t, err)
	require.NoError(t, p.Start())
	defer func() { _, _ = p.ShutdownNow() }()

	ctime := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	done := make(chan struct{})
	svc := analyticsmocks.NewMockService(ctrl)
	svc.EXPECT().RecomputeDay(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, day time.Time) (domain.DailyAnalytics, error) {
			defer close(done)
			assert.Equal(t, "2026-03-01", domain.DateOf(day))
			// 调用方的 ctx 已经取消，不影响统计
			assert.NoError(t, ctx.Err())
			return domain.DailyAnalytics{}, nil
		})

	trigger := NewLocalTrigger(svc, p, time.Second, time.Second)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	trigger.Trigger(ctx, domain.DeliveryRecord{ID: 1, Ctime: ctime.UnixMilli()})

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("统计任务没有执行")
	}
}

func TestLocalTrigger_PoolFull(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p, err := pool.NewOnDemandBlockTaskPool(1, 1)
	require.NoError(t, err)
	require.NoError(t, p.Start())
	defer func() { _, _ = p.ShutdownNow() }()

	// 占满工作协程和队列
	busy := make(chan struct{})
	running := make(chan struct{})
	require.NoError(t, p.Submit(t.Context(), pool.TaskFunc(func(context.Context) error {
		close(running)
		<-busy
		return nil
	})))
	<-running
	require.NoError(t, p.Submit(t.Context(), pool.TaskFunc(func(context.Context) error { return nil })))

	done := make(chan struct{})
	svc := analyticsmocks.NewMockService(ctrl)
	svc.EXPECT().RecomputeDay(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) (domain.DailyAnalytics, error) {
			close(done)
			return domain.DailyAnalytics{}, nil
		})

	trigger := NewLocalTrigger(svc, p, 5*time.Second, time.Second)
	start := time.Now()
	trigger.Trigger(t.Context(), domain.DeliveryRecord{ID: 1, Ctime: start.UnixMilli()})
	// 任务池满时调用方不等待
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(busy)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("统计任务没有执行")
	}
}
