package notification

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/pool"
	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/idgenerator"
	"notification-delivery/internal/pkg/retry"
	"notification-delivery/internal/repository"
	"notification-delivery/internal/service/analytics"
	"notification-delivery/internal/service/channel"
	"notification-delivery/internal/service/directory"
)

const (
	defaultSendTimeout = 10 * time.Second
	// 所有投递都失败时写入结果的提示
	msgNothingDelivered = "no notification could be delivered"
)

type resolveFunc func(ctx context.Context) ([]domain.Recipient, error)

// service 投递编排，一次调用对应一条投递记录
type service struct {
	checker      *channel.AvailabilityChecker
	dispatcher   *channel.Dispatcher
	directory    directory.Directory
	repo         repository.DeliveryRepository
	templateRepo repository.TemplateRepository
	trigger      analytics.Trigger
	executor     *retry.Executor
	taskPool     pool.TaskPool
	idGenerator  *idgenerator.Generator
	sendTimeout  time.Duration
	now          func() time.Time
	logger       *elog.Component
}

// NewService 创建投递服务，sendTimeout 是单次调用外部服务的超时
func NewService(
	checker *channel.AvailabilityChecker,
	dispatcher *channel.Dispatcher,
	dir directory.Directory,
	repo repository.DeliveryRepository,
	templateRepo repository.TemplateRepository,
	trigger analytics.Trigger,
	executor *retry.Executor,
	taskPool pool.TaskPool,
	idGenerator *idgenerator.Generator,
	sendTimeout time.Duration,
) Service {
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &service{
		checker:      checker,
		dispatcher:   dispatcher,
		directory:    dir,
		repo:         repo,
		templateRepo: templateRepo,
		trigger:      trigger,
		executor:     executor,
		taskPool:     taskPool,
		idGenerator:  idGenerator,
		sendTimeout:  sendTimeout,
		now:          time.Now,
		logger:       elog.DefaultLogger,
	}
}

func (s *service) SendNotification(ctx context.Context, req domain.NotificationRequest) (domain.SendResult, error) {
	if err := req.Validate(); err != nil {
		return failedResult(err, nil), err
	}
	return s.send(ctx, req, func(ctx context.Context) ([]domain.Recipient, error) {
		return s.directory.ListUsers(ctx, req.Roles)
	})
}

func (s *service) NotifyUsers(ctx context.Context, userIDs []int64, req domain.NotificationRequest) (domain.SendResult, error) {
	if err := req.Validate(); err != nil {
		return failedResult(err, nil), err
	}
	return s.send(ctx, req, func(ctx context.Context) ([]domain.Recipient, error) {
		return s.directory.ListByIDs(ctx, userIDs)
	})
}

func (s *service) NotifyByRole(ctx context.Context, roles []domain.Role, req domain.NotificationRequest) (domain.SendResult, error) {
	req.Roles = roles
	return s.SendNotification(ctx, req)
}

func (s *service) GetDelivery(ctx context.Context, id int64) (domain.DeliveryRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) send(ctx context.Context, req domain.NotificationRequest, resolve resolveFunc) (domain.SendResult, error) {
	availability := s.checker.Filter(req.Channels)
	if len(availability.Available) == 0 {
		err := fmt.Errorf("%w: %s", errs.ErrNoAvailableChannel, strings.Join(availability.Warnings, "; "))
		return failedResult(errs.ErrNoAvailableChannel, availability.Warnings), err
	}

	recipients, err := resolve(ctx)
	if err != nil {
		s.logger.Error("查询接收者失败", elog.FieldErr(err), elog.Any("roles", req.Roles))
		return failedResult(errs.ErrNoRecipients, availability.Warnings), fmt.Errorf("查询接收者失败: %w", err)
	}
	if len(recipients) == 0 {
		return failedResult(errs.ErrNoRecipients, availability.Warnings), errs.ErrNoRecipients
	}

	record := domain.NewDeliveryRecord(
		s.idGenerator.GenerateID(req.SenderID, strconv.FormatInt(req.SenderID, 10)+":"+req.Title),
		req, availability.Available, recipients, s.now())
	record.Phase = domain.DeliveryPhaseDispatching
	// 持久化只用于审计，失败不影响投递
	persistCtx := context.WithoutCancel(ctx)
	if err = s.repo.Create(persistCtx, record); err != nil {
		s.logger.Error("创建投递记录失败", elog.Int64("deliveryID", record.ID), elog.FieldErr(err))
	}

	s.dispatch(ctx, &record, req.Payload())

	record.Phase = domain.DeliveryPhaseFinalizing
	if n := record.FailPending(s.now(), channel.MsgDeliveryInterrupt); n > 0 {
		s.logger.Error("投递结束后仍有未完成的投递", elog.Int64("deliveryID", record.ID), elog.Int("count", n))
	}
	record.Recount()
	record.Phase = domain.DeliveryPhaseDone
	record.Utime = s.now().UnixMilli()
	if err = s.repo.Save(persistCtx, record); err != nil {
		s.logger.Error("保存投递记录失败", elog.Int64("deliveryID", record.ID), elog.FieldErr(err))
	}

	s.trigger.Trigger(ctx, record)

	if req.TemplateID > 0 {
		if err = s.templateRepo.IncrUsage(persistCtx, req.TemplateID); err != nil {
			s.logger.Warn("更新模板使用次数失败", elog.Int64("templateID", req.TemplateID), elog.FieldErr(err))
		}
	}

	res := domain.NewSendResult(record, availability.Warnings)
	if !res.Success {
		res.Error = msgNothingDelivered
	}
	return res, nil
}

// dispatch 每个 (接收者, 渠道) 一个任务，任务只写自己的那一个 ChannelAttempt
func (s *service) dispatch(ctx context.Context, record *domain.DeliveryRecord, payload domain.Payload) {
	var wg sync.WaitGroup
	for i := range record.Recipients {
		recipient := record.Recipients[i].Recipient()
		for j := range record.Recipients[i].Channels {
			attempt := &record.Recipients[i].Channels[j]
			wg.Add(1)
			err := s.taskPool.Submit(ctx, pool.TaskFunc(func(_ context.Context) error {
				defer wg.Done()
				s.deliver(ctx, recipient, attempt, payload)
				return nil
			}))
			if err != nil {
				wg.Done()
				s.logger.Warn("提交任务到任务池失败",
					elog.Int64("deliveryID", record.ID),
					elog.Int64("userID", recipient.UserID),
					elog.String("channel", attempt.Channel.String()),
					elog.FieldErr(err))
				attempt.MarkFailed(s.now(), 0, channel.MsgDeliveryFailed)
			}
		}
	}
	wg.Wait()
}

func (s *service) deliver(ctx context.Context, recipient domain.Recipient, attempt *domain.ChannelAttempt, payload domain.Payload) {
	ch, err := s.dispatcher.Channel(attempt.Channel)
	if err != nil {
		attempt.MarkFailed(s.now(), 0, channel.Sanitize(err))
		return
	}
	// 不满足条件的接收者不调用外部服务，也不重试
	if err = ch.Eligible(ctx, recipient); err != nil {
		attempt.MarkFailed(s.now(), 0, channel.Sanitize(err))
		return
	}

	attempts, err := s.executor.Do(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
		return ch.Send(ctx, recipient, payload)
	})
	if err != nil {
		s.logger.Warn("投递失败",
			elog.String("channel", attempt.Channel.String()),
			elog.Int64("userID", recipient.UserID),
			elog.Int("attempts", attempts),
			elog.FieldErr(err))
		attempt.MarkFailed(s.now(), attempts, channel.Sanitize(err))
		return
	}
	attempt.MarkSent(s.now(), attempts)
}

func failedResult(err error, warnings []string) domain.SendResult {
	return domain.SendResult{
		Success:  false,
		Results:  map[domain.Channel]domain.ChannelCount{},
		Warnings: warnings,
		Error:    err.Error(),
	}
}
