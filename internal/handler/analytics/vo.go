package analytics

// RangeReq 日期格式 2006-01-02，闭区间
type RangeReq struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type RangeResp struct {
	Reports []DailyReport `json:"reports"`
}

type RecomputeReq struct {
	Date string `json:"date"`
}

type BackfillReq struct {
	Days int `json:"days"`
}

type BackfillResp struct {
	Dates []string `json:"dates"`
}

// DailyReport 某天的投递统计
type DailyReport struct {
	Date               string             `json:"date"`
	TotalSent          int64              `json:"totalSent"`
	TotalFailed        int64              `json:"totalFailed"`
	SuccessRate        float64            `json:"successRate"`
	ByChannel          map[string]Count   `json:"byChannel"`
	ByRole             map[string]Count   `json:"byRole"`
	ChannelSuccessRate map[string]float64 `json:"channelSuccessRate"`
	RoleSuccessRate    map[string]float64 `json:"roleSuccessRate"`
}

type Count struct {
	Sent   int64 `json:"sent"`
	Failed int64 `json:"failed"`
}
