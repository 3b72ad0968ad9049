package notification

// SendReq 按 Roles 群发，Roles 包含 everyone 时发给全部用户
type SendReq struct {
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Channels   []string          `json:"channels"`
	Roles      []string          `json:"roles"`
	Metadata   map[string]string `json:"metadata"`
	TemplateID int64             `json:"templateId"`
}

type NotifyUsersReq struct {
	UserIDs    []int64           `json:"userIds"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Channels   []string          `json:"channels"`
	Metadata   map[string]string `json:"metadata"`
	TemplateID int64             `json:"templateId"`
}

type NotifyRolesReq struct {
	Roles      []string          `json:"roles"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Channels   []string          `json:"channels"`
	Metadata   map[string]string `json:"metadata"`
	TemplateID int64             `json:"templateId"`
}

// SendResp 发送结果
type SendResp struct {
	Success     bool                    `json:"success"`
	DeliveryID  int64                   `json:"deliveryId"`
	Results     map[string]ChannelCount `json:"results"`
	TotalUsers  int                     `json:"totalUsers"`
	TotalSent   int64                   `json:"totalSent"`
	TotalFailed int64                   `json:"totalFailed"`
	Warnings    []string                `json:"warnings,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

type ChannelCount struct {
	Sent   int64 `json:"sent"`
	Failed int64 `json:"failed"`
}

type DetailReq struct {
	ID int64 `json:"id"`
}

// Delivery 投递记录
type Delivery struct {
	ID                int64             `json:"id"`
	Title             string            `json:"title"`
	Body              string            `json:"body"`
	SenderID          int64             `json:"senderId"`
	TemplateID        int64             `json:"templateId"`
	RequestedChannels []string          `json:"requestedChannels"`
	AvailableChannels []string          `json:"availableChannels"`
	Roles             []string          `json:"roles"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Phase             string            `json:"phase"`
	Recipients        []Recipient       `json:"recipients"`
	TotalSent         int64             `json:"totalSent"`
	TotalFailed       int64             `json:"totalFailed"`
	Ctime             int64             `json:"ctime"`
	Utime             int64             `json:"utime"`
}

type Recipient struct {
	UserID   int64            `json:"userId"`
	Name     string           `json:"name"`
	Role     string           `json:"role"`
	Channels []ChannelAttempt `json:"channels"`
}

type ChannelAttempt struct {
	Channel    string `json:"channel"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	ResolvedAt int64  `json:"resolvedAt,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SubscribeReq 浏览器上报的推送订阅，结构与 PushSubscription.toJSON() 一致
type SubscribeReq struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}
