package domain

// Channel 投递渠道
type Channel string

const (
	ChannelPush     Channel = "push"     // 浏览器推送
	ChannelEmail    Channel = "email"    // 邮件
	ChannelWhatsApp Channel = "whatsapp" // 聊天软件消息
	ChannelSMS      Channel = "sms"      // 短信
)

// AllChannels 按固定顺序列出全部渠道
var AllChannels = []Channel{ChannelPush, ChannelEmail, ChannelWhatsApp, ChannelSMS}

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	switch c {
	case ChannelPush, ChannelEmail, ChannelWhatsApp, ChannelSMS:
		return true
	default:
		return false
	}
}

func (c Channel) IsPush() bool {
	return c == ChannelPush
}

func (c Channel) IsEmail() bool {
	return c == ChannelEmail
}

func (c Channel) IsWhatsApp() bool {
	return c == ChannelWhatsApp
}

func (c Channel) IsSMS() bool {
	return c == ChannelSMS
}

// ChannelCount 单个渠道的投递结果计数
type ChannelCount struct {
	Sent   int64 `json:"sent"`
	Failed int64 `json:"failed"`
}

func (c ChannelCount) Total() int64 {
	return c.Sent + c.Failed
}

func (c *ChannelCount) Add(other ChannelCount) {
	c.Sent += other.Sent
	c.Failed += other.Failed
}
