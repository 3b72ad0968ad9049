package domain

// SendResult 发送结果
type SendResult struct {
	// Success 只要有一条消息送达就算成功
	Success    bool                     `json:"success"`
	DeliveryID int64                    `json:"deliveryId,omitempty"`
	Results    map[Channel]ChannelCount `json:"results"`
	TotalUsers int                      `json:"totalUsers"`
	TotalSent  int64                    `json:"totalSent"`
	TotalFail  int64                    `json:"totalFailed"`
	Warnings   []string                 `json:"warnings,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// NewSendResult 根据已经完成的投递记录生成结果
func NewSendResult(record DeliveryRecord, warnings []string) SendResult {
	return SendResult{
		Success:    record.TotalSent > 0,
		DeliveryID: record.ID,
		Results:    record.ChannelCounts(),
		TotalUsers: len(record.Recipients),
		TotalSent:  record.TotalSent,
		TotalFail:  record.TotalFailed,
		Warnings:   warnings,
	}
}
