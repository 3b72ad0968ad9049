package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/sqlx"
	"notification-delivery/internal/repository/cache"
	"notification-delivery/internal/repository/dao"
)

type analyticsRepository struct {
	dao    dao.AnalyticsDAO
	cache  cache.AnalyticsCache
	logger *elog.Component
}

func NewAnalyticsRepository(d dao.AnalyticsDAO, c cache.AnalyticsCache) AnalyticsRepository {
	return &analyticsRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

// Upsert 先写库再刷新缓存，缓存失败只记录日志
func (r *analyticsRepository) Upsert(ctx context.Context, a domain.DailyAnalytics) error {
	err := r.dao.Upsert(ctx, r.toEntity(a))
	if err != nil {
		return err
	}
	if err1 := r.cache.Set(ctx, a); err1 != nil {
		r.logger.Warn("刷新每日统计缓存失败", elog.String("date", a.Date), elog.FieldErr(err1))
		// 删掉旧值，避免读到过期数据
		_ = r.cache.Del(ctx, a.Date)
	}
	return nil
}

func (r *analyticsRepository) FindByDate(ctx context.Context, date string) (domain.DailyAnalytics, error) {
	res, err := r.cache.Get(ctx, date)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		r.logger.Warn("读取每日统计缓存失败", elog.String("date", date), elog.FieldErr(err))
	}
	entity, err := r.dao.FindByDate(ctx, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DailyAnalytics{}, fmt.Errorf("%w: date = %s", errs.ErrAnalyticsNotFound, date)
	}
	if err != nil {
		return domain.DailyAnalytics{}, err
	}
	res = r.toDomain(entity)
	if err = r.cache.Set(ctx, res); err != nil {
		r.logger.Warn("回写每日统计缓存失败", elog.String("date", date), elog.FieldErr(err))
	}
	return res, nil
}

func (r *analyticsRepository) FindRange(ctx context.Context, start, end string) ([]domain.DailyAnalytics, error) {
	entities, err := r.dao.FindRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.DailyAnalytics) domain.DailyAnalytics {
		return r.toDomain(src)
	}), nil
}

func (r *analyticsRepository) FindDates(ctx context.Context, start, end string) ([]string, error) {
	return r.dao.FindDates(ctx, start, end)
}

func (r *analyticsRepository) toEntity(a domain.DailyAnalytics) dao.DailyAnalytics {
	return dao.DailyAnalytics{
		Date:        a.Date,
		TotalSent:   a.TotalSent,
		TotalFailed: a.TotalFailed,
		ByChannel:   sqlx.NewJSONColumn(a.ByChannel),
		ByRole:      sqlx.NewJSONColumn(a.ByRole),
	}
}

func (r *analyticsRepository) toDomain(entity dao.DailyAnalytics) domain.DailyAnalytics {
	res := domain.DailyAnalytics{
		Date:        entity.Date,
		TotalSent:   entity.TotalSent,
		TotalFailed: entity.TotalFailed,
		ByChannel:   entity.ByChannel.Val,
		ByRole:      entity.ByRole.Val,
	}
	if res.ByChannel == nil {
		res.ByChannel = make(map[domain.Channel]domain.ChannelCount)
	}
	if res.ByRole == nil {
		res.ByRole = make(map[domain.Role]domain.ChannelCount)
	}
	return res
}
