package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/sqlx"
	"notification-delivery/internal/repository/cache"
	cachemocks "notification-delivery/internal/repository/cache/mocks"
	"notification-delivery/internal/repository/dao"
	daomocks "notification-delivery/internal/repository/dao/mocks"
)

func TestAnalyticsRepository_FindByDate(t *testing.T) {
	t.Parallel()

	const date = "2026-03-01"
	cached := domain.DailyAnalytics{
		Date:      date,
		TotalSent: 5,
		ByChannel: map[domain.Channel]domain.ChannelCount{domain.ChannelEmail: {Sent: 5}},
		ByRole:    map[domain.Role]domain.ChannelCount{},
	}

	testCases := []struct {
		name    string
		mock    func(ctrl *gomock.Controller) (dao.AnalyticsDAO, cache.AnalyticsCache)
		want    domain.DailyAnalytics
		wantErr error
	}{
		{
			name: "命中缓存",
			mock: func(ctrl *gomock.Controller) (dao.AnalyticsDAO, cache.AnalyticsCache) {
				d := daomocks.NewMockAnalyticsDAO(ctrl)
				c := cachemocks.NewMockAnalyticsCache(ctrl)
				c.EXPECT().Get(gomock.Any(), date).Return(cached, nil)
				return d, c
			},
			want: cached,
		},
		{
			name: "缓存未命中，回源并回写",
			mock: func(ctrl *gomock.Controller) (dao.AnalyticsDAO, cache.AnalyticsCache) {
				d := daomocks.NewMockAnalyticsDAO(ctrl)
				c := cachemocks.NewMockAnalyticsCache(ctrl)
				c.EXPECT().Get(gomock.Any(), date).Return(domain.DailyAnalytics{}, cache.ErrKeyNotFound)
				d.EXPECT().FindByDate(gomock.Any(), date).Return(dao.DailyAnalytics{
					Date:      date,
					TotalSent: 5,
					ByChannel: sqlx.NewJSONColumn(map[domain.Channel]domain.ChannelCount{domain.ChannelEmail: {Sent: 5}}),
				}, nil)
				c.EXPECT().Set(gomock.Any(), cached).Return(nil)
				return d, c
			},
			want: cached,
		},
		{
			name: "记录不存在",
			mock: func(ctrl *gomock.Controller) (dao.AnalyticsDAO, cache.AnalyticsCache) {
				d := daomocks.NewMockAnalyticsDAO(ctrl)
				c := cachemocks.NewMockAnalyticsCache(ctrl)
				c.EXPECT().Get(gomock.Any(), date).Return(domain.DailyAnalytics{}, cache.ErrKeyNotFound)
				d.EXPECT().FindByDate(gomock.Any(), date).Return(dao.DailyAnalytics{}, gorm.ErrRecordNotFound)
				return d, c
			},
			wantErr: errs.ErrAnalyticsNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewAnalyticsRepository(tc.mock(ctrl))
			got, err := repo.FindByDate(t.Context(), date)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnalyticsRepository_Upsert_CacheFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := domain.DailyAnalytics{Date: "2026-03-02", TotalSent: 1}
	d := daomocks.NewMockAnalyticsDAO(ctrl)
	c := cachemocks.NewMockAnalyticsCache(ctrl)
	d.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().Set(gomock.Any(), a).Return(errors.New("mock redis error"))
	c.EXPECT().Del(gomock.Any(), a.Date).Return(nil)

	// 缓存失败不影响结果
	require.NoError(t, NewAnalyticsRepository(d, c).Upsert(t.Context(), a))
}

func TestDeliveryRepository_FindByCtimeRange(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := daomocks.NewMockDeliveryDAO(ctrl)
	first := make([]dao.DeliveryRecord, 2)
	for i := range first {
		first[i] = dao.DeliveryRecord{ID: int64(i + 1), Phase: domain.DeliveryPhaseDone.String()}
	}
	d.EXPECT().FindByCtimeRange(gomock.Any(), int64(100), int64(200), 0, 2).Return(first, nil)
	d.EXPECT().FindByCtimeRange(gomock.Any(), int64(100), int64(200), 2, 2).
		Return([]dao.DeliveryRecord{{ID: 3, Phase: domain.DeliveryPhaseDone.String()}}, nil)

	repo := &deliveryRepository{dao: d, batchSize: 2}
	records, err := repo.FindByCtimeRange(t.Context(), 100, 200)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[2].ID)
	assert.Equal(t, domain.DeliveryPhaseDone, records[2].Phase)
}

func TestDeliveryRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := daomocks.NewMockDeliveryDAO(ctrl)
	d.EXPECT().FindByID(gomock.Any(), int64(9)).Return(dao.DeliveryRecord{}, gorm.ErrRecordNotFound)

	_, err := NewDeliveryRepository(d).FindByID(t.Context(), 9)
	assert.ErrorIs(t, err, errs.ErrDeliveryNotFound)
}

func TestSubscriptionRepository_FindByUserID(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := daomocks.NewMockSubscriptionDAO(ctrl)
	c := cachemocks.NewMockSubscriptionCache(ctrl)
	c.EXPECT().Get(gomock.Any(), int64(1)).Return(domain.PushSubscription{}, cache.ErrKeyNotFound)
	d.EXPECT().FindByUserID(gomock.Any(), int64(1)).Return(dao.PushSubscription{
		ID: 10, UserID: 1, Endpoint: "https://push.example.org/1", P256dh: "p", Auth: "a",
	}, nil)
	c.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	c.EXPECT().Get(gomock.Any(), int64(2)).Return(domain.PushSubscription{}, cache.ErrKeyNotFound)
	d.EXPECT().FindByUserID(gomock.Any(), int64(2)).Return(dao.PushSubscription{}, gorm.ErrRecordNotFound)

	repo := NewSubscriptionRepository(d, c)
	sub, err := repo.FindByUserID(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://push.example.org/1", sub.Endpoint)

	_, err = repo.FindByUserID(t.Context(), 2)
	assert.ErrorIs(t, err, errs.ErrSubscriptionNotFound)
}
