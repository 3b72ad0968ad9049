package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/handler/jwt"
	"notification-delivery/internal/pkg/idempotent"
	"notification-delivery/internal/repository"
	notificationsvc "notification-delivery/internal/service/notification"
)

// IdempotencyHeader 客户端重试时携带相同的值，有效期内只发送一次
const IdempotencyHeader = "Idempotency-Key"

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc         notificationsvc.Service
	subRepo     repository.SubscriptionRepository
	idempotency idempotent.IdempotencyService
	logger      *elog.Component
}

func NewHandler(svc notificationsvc.Service, subRepo repository.SubscriptionRepository,
	idempotency idempotent.IdempotencyService,
) *Handler {
	return &Handler{
		svc:         svc,
		subRepo:     subRepo,
		idempotency: idempotency,
		logger:      elog.DefaultLogger,
	}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/notifications")
	g.POST("/send", ginx.B(h.Send))
	g.POST("/users", ginx.B(h.NotifyUsers))
	g.POST("/roles", ginx.B(h.NotifyRoles))
	g.POST("/detail", ginx.B(h.Detail))
	server.POST("/subscriptions", ginx.B(h.Subscribe))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// Send 按请求中的角色发送通知
func (h *Handler) Send(ctx *ginx.Context, req SendReq) (ginx.Result, error) {
	nreq, err := h.toRequest(ctx, req.Title, req.Body, req.Channels, req.Metadata, req.TemplateID)
	if err != nil {
		return invalidParamResult(err.Error()), nil
	}
	nreq.Roles = toRoles(req.Roles)
	return h.send(ctx, nreq.SenderID, func(c context.Context) (domain.SendResult, error) {
		return h.svc.SendNotification(c, nreq)
	})
}

// NotifyUsers 发送给指定用户
func (h *Handler) NotifyUsers(ctx *ginx.Context, req NotifyUsersReq) (ginx.Result, error) {
	nreq, err := h.toRequest(ctx, req.Title, req.Body, req.Channels, req.Metadata, req.TemplateID)
	if err != nil {
		return invalidParamResult(err.Error()), nil
	}
	return h.send(ctx, nreq.SenderID, func(c context.Context) (domain.SendResult, error) {
		return h.svc.NotifyUsers(c, req.UserIDs, nreq)
	})
}

// NotifyRoles 发送给指定角色
func (h *Handler) NotifyRoles(ctx *ginx.Context, req NotifyRolesReq) (ginx.Result, error) {
	nreq, err := h.toRequest(ctx, req.Title, req.Body, req.Channels, req.Metadata, req.TemplateID)
	if err != nil {
		return invalidParamResult(err.Error()), nil
	}
	return h.send(ctx, nreq.SenderID, func(c context.Context) (domain.SendResult, error) {
		return h.svc.NotifyByRole(c, toRoles(req.Roles), nreq)
	})
}

// Detail 查询投递记录
func (h *Handler) Detail(ctx *ginx.Context, req DetailReq) (ginx.Result, error) {
	if req.ID <= 0 {
		return invalidParamResult("id 必须大于 0"), nil
	}
	record, err := h.svc.GetDelivery(ctx.Request.Context(), req.ID)
	if errors.Is(err, errs.ErrDeliveryNotFound) {
		return notFoundResult, nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: toDeliveryVO(record)}, nil
}

// Subscribe 保存当前用户的浏览器推送订阅，重复上报时覆盖
func (h *Handler) Subscribe(ctx *ginx.Context, req SubscribeReq) (ginx.Result, error) {
	userID, err := jwt.GetUserID(ctx.Context)
	if err != nil {
		return invalidParamResult(err.Error()), nil
	}
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return invalidParamResult("endpoint 和 keys 不能为空"), nil
	}
	now := time.Now().UnixMilli()
	err = h.subRepo.Save(ctx.Request.Context(), domain.PushSubscription{
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
		Ctime:    now,
		Utime:    now,
	})
	if err != nil {
		h.logger.Error("保存推送订阅失败", elog.Int64("userID", userID), elog.FieldErr(err))
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

// send 发送失败时释放幂等 key，客户端可以用相同的 key 重试
func (h *Handler) send(ctx *ginx.Context, senderID int64,
	fn func(ctx context.Context) (domain.SendResult, error),
) (ginx.Result, error) {
	key, duplicated := h.acquire(ctx, senderID)
	if duplicated {
		return duplicateResult, nil
	}
	res, err := fn(ctx.Request.Context())
	if err != nil && key != "" {
		if err1 := h.idempotency.Del(context.WithoutCancel(ctx.Request.Context()), key); err1 != nil {
			h.logger.Warn("释放幂等 key 失败", elog.String("key", key), elog.FieldErr(err1))
		}
	}
	return h.sendResult(res, err)
}

// acquire 返回本次登记的 key，没有登记时为空。检查失败时放行
func (h *Handler) acquire(ctx *ginx.Context, senderID int64) (string, bool) {
	header := ctx.GetHeader(IdempotencyHeader)
	if header == "" {
		return "", false
	}
	key := fmt.Sprintf("%d:%s", senderID, header)
	exists, err := h.idempotency.Exists(ctx.Request.Context(), key)
	if err != nil {
		h.logger.Warn("幂等检查失败", elog.String("key", key), elog.FieldErr(err))
		return "", false
	}
	if exists {
		return "", true
	}
	return key, false
}

func (h *Handler) toRequest(ctx *ginx.Context, title, body string, channels []string,
	metadata map[string]string, templateID int64,
) (domain.NotificationRequest, error) {
	senderID, err := jwt.GetUserID(ctx.Context)
	if err != nil {
		return domain.NotificationRequest{}, err
	}
	return domain.NotificationRequest{
		Title:      title,
		Body:       body,
		Channels:   slice.Map(channels, func(_ int, src string) domain.Channel { return domain.Channel(src) }),
		SenderID:   senderID,
		Metadata:   metadata,
		TemplateID: templateID,
	}, nil
}

// sendResult 前置条件不满足时返回业务错误码，其余错误视为系统错误
func (h *Handler) sendResult(res domain.SendResult, err error) (ginx.Result, error) {
	switch {
	case err == nil:
		return ginx.Result{Msg: "OK", Data: toSendResp(res)}, nil
	case errors.Is(err, errs.ErrInvalidParameter):
		return invalidParamResult(err.Error()), nil
	case errors.Is(err, errs.ErrNoAvailableChannel), errors.Is(err, errs.ErrNoRecipients):
		return ginx.Result{Code: codeNotDelivered, Msg: res.Error, Data: toSendResp(res)}, nil
	default:
		return systemErrorResult, err
	}
}

func toRoles(roles []string) []domain.Role {
	return slice.Map(roles, func(_ int, src string) domain.Role { return domain.Role(src) })
}

func toSendResp(res domain.SendResult) SendResp {
	results := make(map[string]ChannelCount, len(res.Results))
	for ch, c := range res.Results {
		results[ch.String()] = ChannelCount{Sent: c.Sent, Failed: c.Failed}
	}
	return SendResp{
		Success:     res.Success,
		DeliveryID:  res.DeliveryID,
		Results:     results,
		TotalUsers:  res.TotalUsers,
		TotalSent:   res.TotalSent,
		TotalFailed: res.TotalFail,
		Warnings:    res.Warnings,
		Error:       res.Error,
	}
}

func toDeliveryVO(src domain.DeliveryRecord) Delivery {
	channelNames := func(_ int, ch domain.Channel) string { return ch.String() }
	return Delivery{
		ID:                src.ID,
		Title:             src.Title,
		Body:              src.Body,
		SenderID:          src.SenderID,
		TemplateID:        src.TemplateID,
		RequestedChannels: slice.Map(src.RequestedChannels, channelNames),
		AvailableChannels: slice.Map(src.AvailableChannels, channelNames),
		Roles:             slice.Map(src.Roles, func(_ int, r domain.Role) string { return r.String() }),
		Metadata:          src.Metadata,
		Phase:             src.Phase.String(),
		Recipients: slice.Map(src.Recipients, func(_ int, r domain.RecipientEntry) Recipient {
			return Recipient{
				UserID: r.UserID,
				Name:   r.Name,
				Role:   r.Role.String(),
				Channels: slice.Map(r.Channels, func(_ int, a domain.ChannelAttempt) ChannelAttempt {
					return ChannelAttempt{
						Channel:    a.Channel.String(),
						Status:     a.Status.String(),
						Attempts:   a.Attempts,
						ResolvedAt: a.ResolvedAt,
						Error:      a.Error,
					}
				}),
			}
		}),
		TotalSent:   src.TotalSent,
		TotalFailed: src.TotalFailed,
		Ctime:       src.Ctime,
		Utime:       src.Utime,
	}
}
