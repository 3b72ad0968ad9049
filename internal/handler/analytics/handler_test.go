package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	analyticsmocks "notification-delivery/internal/service/analytics/mocks"
)

type result struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doPost(t *testing.T, svc *analyticsmocks.MockService, path string, body any) result {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := gin.New()
	NewHandler(svc).PrivateRoutes(server)

	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	var res result
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res), recorder.Body.String())
	return res
}

func TestHandler_Range(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		req      RangeReq
		mock     func(svc *analyticsmocks.MockService)
		wantCode int
		wantResp RangeResp
	}{
		{
			name: "查询成功",
			req:  RangeReq{Start: "2026-03-01", End: "2026-03-02"},
			mock: func(svc *analyticsmocks.MockService) {
				svc.EXPECT().Range(gomock.Any(),
					time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
				).Return([]domain.DailyAnalyticsReport{
					domain.NewDailyAnalyticsReport(domain.DailyAnalytics{
						Date:        "2026-03-01",
						TotalSent:   2,
						TotalFailed: 1,
						ByChannel:   map[domain.Channel]domain.ChannelCount{domain.ChannelSMS: {Sent: 2, Failed: 1}},
						ByRole:      map[domain.Role]domain.ChannelCount{domain.RoleDonor: {Sent: 2, Failed: 1}},
					}),
				}, nil)
			},
			wantResp: RangeResp{Reports: []DailyReport{
				{
					Date:               "2026-03-01",
					TotalSent:          2,
					TotalFailed:        1,
					SuccessRate:        66.67,
					ByChannel:          map[string]Count{"sms": {Sent: 2, Failed: 1}},
					ByRole:             map[string]Count{"donor": {Sent: 2, Failed: 1}},
					ChannelSuccessRate: map[string]float64{"sms": 66.67},
					RoleSuccessRate:    map[string]float64{"donor": 66.67},
				},
			}},
		},
		{
			name:     "日期格式错误",
			req:      RangeReq{Start: "2026/03/01", End: "2026-03-02"},
			mock:     func(_ *analyticsmocks.MockService) {},
			wantCode: codeInvalidParameter,
		},
		{
			name: "开始晚于结束",
			req:  RangeReq{Start: "2026-03-05", End: "2026-03-02"},
			mock: func(svc *analyticsmocks.MockService) {
				svc.EXPECT().Range(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: start 晚于 end", errs.ErrInvalidParameter))
			},
			wantCode: codeInvalidParameter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := analyticsmocks.NewMockService(ctrl)
			tc.mock(svc)

			res := doPost(t, svc, "/analytics/range", tc.req)
			assert.Equal(t, tc.wantCode, res.Code)
			if tc.wantCode != 0 {
				return
			}
			var resp RangeResp
			require.NoError(t, json.Unmarshal(res.Data, &resp))
			assert.Equal(t, tc.wantResp, resp)
		})
	}
}

func TestHandler_Recompute(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := analyticsmocks.NewMockService(ctrl)
	svc.EXPECT().RecomputeDay(gomock.Any(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)).
		Return(domain.DailyAnalytics{Date: "2026-03-01", TotalSent: 1}, nil)

	res := doPost(t, svc, "/analytics/recompute", RecomputeReq{Date: "2026-03-01"})
	require.Equal(t, 0, res.Code)
	var vo DailyReport
	require.NoError(t, json.Unmarshal(res.Data, &vo))
	assert.Equal(t, "2026-03-01", vo.Date)
	assert.Equal(t, 100.0, vo.SuccessRate)

	res = doPost(t, svc, "/analytics/recompute", RecomputeReq{Date: "yesterday"})
	assert.Equal(t, codeInvalidParameter, res.Code)
}

func TestHandler_Backfill(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		days      int
		mock      func(svc *analyticsmocks.MockService)
		wantCode  int
		wantDates []string
	}{
		{
			name: "全部补算成功",
			days: 3,
			mock: func(svc *analyticsmocks.MockService) {
				svc.EXPECT().Backfill(gomock.Any(), 3).Return([]string{"2026-03-01", "2026-03-02"}, nil)
			},
			wantDates: []string{"2026-03-01", "2026-03-02"},
		},
		{
			name: "部分失败",
			days: 3,
			mock: func(svc *analyticsmocks.MockService) {
				var err error
				err = multierror.Append(err, fmt.Errorf("2026-03-02: db down"))
				svc.EXPECT().Backfill(gomock.Any(), 3).Return([]string{"2026-03-01"}, err)
			},
			wantCode:  codeSystemError,
			wantDates: []string{"2026-03-01"},
		},
		{
			name: "天数非法",
			days: 0,
			mock: func(svc *analyticsmocks.MockService) {
				svc.EXPECT().Backfill(gomock.Any(), 0).Return(nil, fmt.Errorf("%w: days = 0", errs.ErrInvalidParameter))
			},
			wantCode: codeInvalidParameter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := analyticsmocks.NewMockService(ctrl)
			tc.mock(svc)

			res := doPost(t, svc, "/analytics/backfill", BackfillReq{Days: tc.days})
			assert.Equal(t, tc.wantCode, res.Code)
			if tc.wantDates == nil {
				return
			}
			var resp BackfillResp
			require.NoError(t, json.Unmarshal(res.Data, &resp))
			assert.Equal(t, tc.wantDates, resp.Dates)
		})
	}
}
