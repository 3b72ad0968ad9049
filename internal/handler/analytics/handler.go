package analytics

import (
	"errors"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	analyticssvc "notification-delivery/internal/service/analytics"
)

const (
	codeInvalidParameter = 400001
	codeSystemError      = 500001
)

var _ ginx.Handler = &Handler{}

var systemErrorResult = ginx.Result{Code: codeSystemError, Msg: "系统错误"}

type Handler struct {
	svc analyticssvc.Service
}

func NewHandler(svc analyticssvc.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/analytics")
	g.POST("/range", ginx.B(h.Range))
	g.POST("/recompute", ginx.B(h.Recompute))
	g.POST("/backfill", ginx.B(h.Backfill))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// Range 查询日期区间内的日报
func (h *Handler) Range(ctx *ginx.Context, req RangeReq) (ginx.Result, error) {
	start, err := time.Parse(domain.DateLayout, req.Start)
	if err != nil {
		return invalidParamResult("start 格式错误"), nil
	}
	end, err := time.Parse(domain.DateLayout, req.End)
	if err != nil {
		return invalidParamResult("end 格式错误"), nil
	}
	reports, err := h.svc.Range(ctx.Request.Context(), start, end)
	if errors.Is(err, errs.ErrInvalidParameter) {
		return invalidParamResult(err.Error()), nil
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: RangeResp{
			Reports: slice.Map(reports, func(_ int, src domain.DailyAnalyticsReport) DailyReport {
				return toReportVO(src)
			}),
		},
	}, nil
}

// Recompute 重算某一天
func (h *Handler) Recompute(ctx *ginx.Context, req RecomputeReq) (ginx.Result, error) {
	day, err := time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		return invalidParamResult("date 格式错误"), nil
	}
	a, err := h.svc.RecomputeDay(ctx.Request.Context(), day)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: toReportVO(domain.NewDailyAnalyticsReport(a))}, nil
}

// Backfill 补算最近 days 天缺失的日报，部分失败时仍返回已补算的日期
func (h *Handler) Backfill(ctx *ginx.Context, req BackfillReq) (ginx.Result, error) {
	dates, err := h.svc.Backfill(ctx.Request.Context(), req.Days)
	if errors.Is(err, errs.ErrInvalidParameter) {
		return invalidParamResult(err.Error()), nil
	}
	if err != nil {
		return ginx.Result{Code: codeSystemError, Msg: err.Error(), Data: BackfillResp{Dates: dates}}, err
	}
	return ginx.Result{Data: BackfillResp{Dates: dates}}, nil
}

func invalidParamResult(msg string) ginx.Result {
	return ginx.Result{Code: codeInvalidParameter, Msg: msg}
}

func toReportVO(src domain.DailyAnalyticsReport) DailyReport {
	vo := DailyReport{
		Date:               src.Date,
		TotalSent:          src.TotalSent,
		TotalFailed:        src.TotalFailed,
		SuccessRate:        src.SuccessRate,
		ByChannel:          make(map[string]Count, len(src.ByChannel)),
		ByRole:             make(map[string]Count, len(src.ByRole)),
		ChannelSuccessRate: make(map[string]float64, len(src.ChannelSuccessRate)),
		RoleSuccessRate:    make(map[string]float64, len(src.RoleSuccessRate)),
	}
	for ch, c := range src.ByChannel {
		vo.ByChannel[ch.String()] = Count{Sent: c.Sent, Failed: c.Failed}
	}
	for role, c := range src.ByRole {
		vo.ByRole[role.String()] = Count{Sent: c.Sent, Failed: c.Failed}
	}
	for ch, rate := range src.ChannelSuccessRate {
		vo.ChannelSuccessRate[ch.String()] = rate
	}
	for role, rate := range src.RoleSuccessRate {
		vo.RoleSuccessRate[role.String()] = rate
	}
	return vo
}
