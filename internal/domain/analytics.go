package domain

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// DailyAnalytics 某个 UTC 自然日的投递汇总，每次都由投递记录全量重算
type DailyAnalytics struct {
	Date        string                   `json:"date"`
	TotalSent   int64                    `json:"totalSent"`
	TotalFailed int64                    `json:"totalFailed"`
	ByChannel   map[Channel]ChannelCount `json:"byChannel"`
	ByRole      map[Role]ChannelCount    `json:"byRole"`
}

// DayBounds 返回 day 所在 UTC 日的 [start, end)
func DayBounds(day time.Time) (time.Time, time.Time) {
	d := day.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func DateOf(day time.Time) string {
	return day.UTC().Format(DateLayout)
}

// AggregateDay 汇总一天内的投递记录
// 渠道维度看每个投递，角色维度把每条记录的发送数计入它的所有目标角色
func AggregateDay(date string, records []DeliveryRecord) DailyAnalytics {
	res := DailyAnalytics{
		Date:      date,
		ByChannel: make(map[Channel]ChannelCount),
		ByRole:    make(map[Role]ChannelCount),
	}
	for _, record := range records {
		var sent, failed int64
		for _, r := range record.Recipients {
			for _, a := range r.Channels {
				c := res.ByChannel[a.Channel]
				switch a.Status {
				case AttemptStatusSent:
					c.Sent++
					sent++
				case AttemptStatusFailed:
					c.Failed++
					failed++
				default:
					continue
				}
				res.ByChannel[a.Channel] = c
			}
		}
		res.TotalSent += sent
		res.TotalFailed += failed
		for _, role := range record.Roles {
			c := res.ByRole[role]
			c.Add(ChannelCount{Sent: sent, Failed: failed})
			res.ByRole[role] = c
		}
	}
	return res
}

// DailyAnalyticsReport 带成功率的日报
type DailyAnalyticsReport struct {
	DailyAnalytics
	SuccessRate        float64             `json:"successRate"`
	ChannelSuccessRate map[Channel]float64 `json:"channelSuccessRate"`
	RoleSuccessRate    map[Role]float64    `json:"roleSuccessRate"`
}

func NewDailyAnalyticsReport(a DailyAnalytics) DailyAnalyticsReport {
	report := DailyAnalyticsReport{
		DailyAnalytics:     a,
		SuccessRate:        SuccessRate(a.TotalSent, a.TotalFailed),
		ChannelSuccessRate: make(map[Channel]float64, len(a.ByChannel)),
		RoleSuccessRate:    make(map[Role]float64, len(a.ByRole)),
	}
	for ch, c := range a.ByChannel {
		report.ChannelSuccessRate[ch] = SuccessRate(c.Sent, c.Failed)
	}
	for role, c := range a.ByRole {
		report.RoleSuccessRate[role] = SuccessRate(c.Sent, c.Failed)
	}
	return report
}

// SuccessRate sent / (sent + failed) * 100，保留两位小数，分母为 0 时返回 0
func SuccessRate(sent, failed int64) float64 {
	total := sent + failed
	if total == 0 {
		return 0
	}
	const hundred = 100
	return math.Round(float64(sent)/float64(total)*hundred*hundred) / hundred
}
