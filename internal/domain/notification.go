package domain

import (
	"fmt"

	"notification-delivery/internal/errs"
)

const MetadataURL = "url"

// NotificationRequest 一次发送请求，只在单次调用中使用，不落库
type NotificationRequest struct {
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Channels   []Channel         `json:"channels"`
	Roles      []Role            `json:"roles"`
	SenderID   int64             `json:"senderId"`
	Metadata   map[string]string `json:"metadata"`
	TemplateID int64             `json:"templateId"` // 0 表示不是来自模板
}

func (r NotificationRequest) Validate() error {
	if r.Title == "" && r.Body == "" {
		return fmt.Errorf("%w: 标题和内容不能同时为空", errs.ErrInvalidParameter)
	}
	if len(r.Channels) == 0 {
		return fmt.Errorf("%w: Channels 不能为空", errs.ErrInvalidParameter)
	}
	for _, role := range r.Roles {
		if !role.IsValid() {
			return fmt.Errorf("%w: 未知角色 %q", errs.ErrInvalidParameter, role)
		}
	}
	if r.TemplateID < 0 {
		return fmt.Errorf("%w: TemplateID = %d", errs.ErrInvalidParameter, r.TemplateID)
	}
	return nil
}

func (r NotificationRequest) Payload() Payload {
	return Payload{
		Title: r.Title,
		Body:  r.Body,
		URL:   r.Metadata[MetadataURL],
	}
}

// Payload 已经渲染好的通知内容
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// Recipient 通讯录中的一个接收者
type Recipient struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Role   Role   `json:"role"`
}

// Message 定位到具体联系方式的单条投递，交给 provider 发送
type Message struct {
	Channel      Channel
	UserID       int64
	To           string
	Subscription *PushSubscription
	Title        string
	Body         string
	URL          string
}
