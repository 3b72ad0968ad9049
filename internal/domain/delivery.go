package domain

import "time"

// AttemptStatus 单个(接收者, 渠道)投递的状态
type AttemptStatus string

const (
	AttemptStatusPending AttemptStatus = "pending"
	AttemptStatusSent    AttemptStatus = "sent"
	AttemptStatusFailed  AttemptStatus = "failed"
)

func (s AttemptStatus) String() string {
	return string(s)
}

func (s AttemptStatus) IsResolved() bool {
	return s == AttemptStatusSent || s == AttemptStatusFailed
}

// DeliveryPhase 投递记录所处阶段
type DeliveryPhase string

const (
	DeliveryPhaseBuilding    DeliveryPhase = "building"
	DeliveryPhaseDispatching DeliveryPhase = "dispatching"
	DeliveryPhaseFinalizing  DeliveryPhase = "finalizing"
	DeliveryPhaseDone        DeliveryPhase = "done"
)

func (p DeliveryPhase) String() string {
	return string(p)
}

// ChannelAttempt 一个接收者在一个渠道上的投递结果
type ChannelAttempt struct {
	Channel    Channel       `json:"channel"`
	Status     AttemptStatus `json:"status"`
	ResolvedAt int64         `json:"resolvedAt,omitempty"`
	Error      string        `json:"error,omitempty"`
	// Attempts 实际调用 provider 的次数，不满足发送条件时为 0
	Attempts int `json:"attempts"`
}

// MarkSent 只允许从 pending 迁移一次，返回是否迁移成功
func (a *ChannelAttempt) MarkSent(at time.Time, attempts int) bool {
	if a.Status != AttemptStatusPending {
		return false
	}
	a.Status = AttemptStatusSent
	a.ResolvedAt = at.UnixMilli()
	a.Attempts = attempts
	a.Error = ""
	return true
}

func (a *ChannelAttempt) MarkFailed(at time.Time, attempts int, message string) bool {
	if a.Status != AttemptStatusPending {
		return false
	}
	a.Status = AttemptStatusFailed
	a.ResolvedAt = at.UnixMilli()
	a.Attempts = attempts
	a.Error = message
	return true
}

// RecipientEntry 投递记录中的一个接收者
type RecipientEntry struct {
	UserID   int64            `json:"userId"`
	Name     string           `json:"name"`
	Role     Role             `json:"role"`
	Email    string           `json:"email,omitempty"`
	Phone    string           `json:"phone,omitempty"`
	Channels []ChannelAttempt `json:"channels"`
}

func (e RecipientEntry) Recipient() Recipient {
	return Recipient{
		UserID: e.UserID,
		Name:   e.Name,
		Email:  e.Email,
		Phone:  e.Phone,
		Role:   e.Role,
	}
}

// DeliveryRecord 一次 SendNotification 调用的持久化结果
type DeliveryRecord struct {
	ID                int64             `json:"id"`
	Title             string            `json:"title"`
	Body              string            `json:"body"`
	SenderID          int64             `json:"senderId"`
	TemplateID        int64             `json:"templateId"`
	RequestedChannels []Channel         `json:"requestedChannels"`
	AvailableChannels []Channel         `json:"availableChannels"`
	Roles             []Role            `json:"roles"`
	Metadata          map[string]string `json:"metadata"`
	Phase             DeliveryPhase     `json:"phase"`
	Recipients        []RecipientEntry  `json:"recipients"`
	TotalSent         int64             `json:"totalSent"`
	TotalFailed       int64             `json:"totalFailed"`
	Ctime             int64             `json:"ctime"`
	Utime             int64             `json:"utime"`
}

// NewDeliveryRecord 为每个接收者和每个可用渠道预置一个 pending 的投递
func NewDeliveryRecord(id int64, req NotificationRequest, available []Channel, recipients []Recipient, now time.Time) DeliveryRecord {
	entries := make([]RecipientEntry, 0, len(recipients))
	for _, r := range recipients {
		attempts := make([]ChannelAttempt, 0, len(available))
		for _, ch := range available {
			attempts = append(attempts, ChannelAttempt{Channel: ch, Status: AttemptStatusPending})
		}
		entries = append(entries, RecipientEntry{
			UserID:   r.UserID,
			Name:     r.Name,
			Role:     r.Role,
			Email:    r.Email,
			Phone:    r.Phone,
			Channels: attempts,
		})
	}
	return DeliveryRecord{
		ID:                id,
		Title:             req.Title,
		Body:              req.Body,
		SenderID:          req.SenderID,
		TemplateID:        req.TemplateID,
		RequestedChannels: req.Channels,
		AvailableChannels: available,
		Roles:             req.Roles,
		Metadata:          req.Metadata,
		Phase:             DeliveryPhaseBuilding,
		Recipients:        entries,
		Ctime:             now.UnixMilli(),
		Utime:             now.UnixMilli(),
	}
}

// Recount 重新统计 TotalSent / TotalFailed
func (d *DeliveryRecord) Recount() {
	var sent, failed int64
	for _, r := range d.Recipients {
		for _, a := range r.Channels {
			switch a.Status {
			case AttemptStatusSent:
				sent++
			case AttemptStatusFailed:
				failed++
			}
		}
	}
	d.TotalSent = sent
	d.TotalFailed = failed
}

// AttemptCount 记录中投递的总数
func (d DeliveryRecord) AttemptCount() int64 {
	var n int64
	for _, r := range d.Recipients {
		n += int64(len(r.Channels))
	}
	return n
}

// PendingCount 尚未结束的投递数
func (d DeliveryRecord) PendingCount() int64 {
	var n int64
	for _, r := range d.Recipients {
		for _, a := range r.Channels {
			if !a.Status.IsResolved() {
				n++
			}
		}
	}
	return n
}

// ChannelCounts 按渠道统计投递结果
func (d DeliveryRecord) ChannelCounts() map[Channel]ChannelCount {
	res := make(map[Channel]ChannelCount, len(d.AvailableChannels))
	for _, ch := range d.AvailableChannels {
		res[ch] = ChannelCount{}
	}
	for _, r := range d.Recipients {
		for _, a := range r.Channels {
			c := res[a.Channel]
			switch a.Status {
			case AttemptStatusSent:
				c.Sent++
			case AttemptStatusFailed:
				c.Failed++
			}
			res[a.Channel] = c
		}
	}
	return res
}

// FailPending 把所有 pending 的投递标记为失败，返回标记的数量
func (d *DeliveryRecord) FailPending(at time.Time, message string) int {
	n := 0
	for i := range d.Recipients {
		for j := range d.Recipients[i].Channels {
			if d.Recipients[i].Channels[j].MarkFailed(at, d.Recipients[i].Channels[j].Attempts, message) {
				n++
			}
		}
	}
	return n
}
