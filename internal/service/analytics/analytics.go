package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/syncx"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/repository"
)

const (
	maxBackfillDays     = 366
	backfillConcurrency = 4
	dayLockSegments     = 32
)

type service struct {
	deliveryRepo  repository.DeliveryRepository
	analyticsRepo repository.AnalyticsRepository
	dayLocks      *syncx.SegmentKeysLock
	now           func() time.Time
	logger        *elog.Component
}

func NewService(deliveryRepo repository.DeliveryRepository, analyticsRepo repository.AnalyticsRepository) Service {
	return &service{
		deliveryRepo:  deliveryRepo,
		analyticsRepo: analyticsRepo,
		dayLocks:      syncx.NewSegmentKeysLock(dayLockSegments),
		now:           time.Now,
		logger:        elog.DefaultLogger,
	}
}

// RecomputeDay 同一天的重算串行执行，每个调用方都在前一次写入之后重新扫描
func (s *service) RecomputeDay(ctx context.Context, day time.Time) (domain.DailyAnalytics, error) {
	start, end := domain.DayBounds(day)
	date := domain.DateOf(start)
	s.dayLocks.Lock(date)
	defer s.dayLocks.Unlock(date)

	records, err := s.deliveryRepo.FindByCtimeRange(ctx, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return domain.DailyAnalytics{}, fmt.Errorf("查询投递记录失败: %w", err)
	}
	res := domain.AggregateDay(date, records)
	if err = s.analyticsRepo.Upsert(ctx, res); err != nil {
		return domain.DailyAnalytics{}, fmt.Errorf("保存每日统计失败: %w", err)
	}
	return res, nil
}

func (s *service) Range(ctx context.Context, start, end time.Time) ([]domain.DailyAnalyticsReport, error) {
	from, to := domain.DateOf(start), domain.DateOf(end)
	if from > to {
		return nil, fmt.Errorf("%w: start %s 晚于 end %s", errs.ErrInvalidParameter, from, to)
	}
	rows, err := s.analyticsRepo.FindRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, src domain.DailyAnalytics) domain.DailyAnalyticsReport {
		return domain.NewDailyAnalyticsReport(src)
	}), nil
}

func (s *service) Backfill(ctx context.Context, days int) ([]string, error) {
	if days <= 0 || days > maxBackfillDays {
		return nil, fmt.Errorf("%w: days = %d", errs.ErrInvalidParameter, days)
	}
	today, _ := domain.DayBounds(s.now())
	first := today.AddDate(0, 0, -(days - 1))
	existing, err := s.analyticsRepo.FindDates(ctx, domain.DateOf(first), domain.DateOf(today))
	if err != nil {
		return nil, err
	}
	has := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		has[d] = struct{}{}
	}

	var missing []time.Time
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		if _, ok := has[domain.DateOf(day)]; !ok {
			missing = append(missing, day)
		}
	}

	var (
		eg     errgroup.Group
		mu     sync.Mutex
		result *multierror.Error
		done   = make([]bool, len(missing))
	)
	eg.SetLimit(backfillConcurrency)
	for i, day := range missing {
		eg.Go(func() error {
			if _, err1 := s.RecomputeDay(ctx, day); err1 != nil {
				date := domain.DateOf(day)
				s.logger.Warn("补算每日统计失败", elog.String("date", date), elog.FieldErr(err1))
				mu.Lock()
				result = multierror.Append(result, fmt.Errorf("%s: %w", date, err1))
				mu.Unlock()
				return nil
			}
			done[i] = true
			return nil
		})
	}
	_ = eg.Wait()

	var filled []string
	for i, day := range missing {
		if done[i] {
			filled = append(filled, domain.DateOf(day))
		}
	}
	return filled, result.ErrorOrNil()
}
