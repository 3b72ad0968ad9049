package domain

import (
	"strings"
)

// ChannelsConfig 进程启动时加载的渠道凭证快照，之后只读
type ChannelsConfig struct {
	Push     PushConfig     `yaml:"push"`
	Email    EmailConfig    `yaml:"email"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
	SMS      SMSConfig      `yaml:"sms"`
	// Console 为 true 时所有已启用渠道都输出到日志，本地开发用
	Console bool `yaml:"console"`
}

type PushConfig struct {
	VAPIDPublicKey  string `yaml:"vapidPublicKey"`
	VAPIDPrivateKey string `yaml:"vapidPrivateKey"`
	Subscriber      string `yaml:"subscriber"`
	TTL             int    `yaml:"ttl"`
}

type EmailConfig struct {
	ServerToken  string `yaml:"serverToken"`
	AccountToken string `yaml:"accountToken"`
	From         string `yaml:"from"`
	ReplyTo      string `yaml:"replyTo"`
	Tag          string `yaml:"tag"`
	// ExcludedDomains 组织内部邮箱域名，群发邮件时排除
	ExcludedDomains []string `yaml:"excludedDomains"`
}

type WhatsAppConfig struct {
	Endpoint           string `yaml:"endpoint"`
	AccessToken        string `yaml:"accessToken"`
	PhoneNumberID      string `yaml:"phoneNumberId"`
	DefaultCountryCode string `yaml:"defaultCountryCode"`
}

type SMSConfig struct {
	DefaultCountryCode string           `yaml:"defaultCountryCode"`
	Aliyun             AliyunSMSConfig  `yaml:"aliyun"`
	Tencent            TencentSMSConfig `yaml:"tencent"`
}

type AliyunSMSConfig struct {
	RegionID        string `yaml:"regionId"`
	AccessKeyID     string `yaml:"accessKeyId"`
	AccessKeySecret string `yaml:"accessKeySecret"`
	SignName        string `yaml:"signName"`
	TemplateCode    string `yaml:"templateCode"`
}

func (c AliyunSMSConfig) Configured() bool {
	return c.AccessKeyID != "" && c.AccessKeySecret != "" && c.TemplateCode != ""
}

type TencentSMSConfig struct {
	RegionID   string `yaml:"regionId"`
	SecretID   string `yaml:"secretId"`
	SecretKey  string `yaml:"secretKey"`
	AppID      string `yaml:"appId"`
	SignName   string `yaml:"signName"`
	TemplateID string `yaml:"templateId"`
}

func (c TencentSMSConfig) Configured() bool {
	return c.SecretID != "" && c.SecretKey != "" && c.AppID != "" && c.TemplateID != ""
}

// Configured 渠道凭证是否齐全
func (c ChannelsConfig) Configured(ch Channel) bool {
	if c.Console && ch.IsValid() {
		return true
	}
	switch ch {
	case ChannelPush:
		return c.Push.VAPIDPublicKey != "" && c.Push.VAPIDPrivateKey != ""
	case ChannelEmail:
		return c.Email.ServerToken != "" && c.Email.From != ""
	case ChannelWhatsApp:
		return c.WhatsApp.AccessToken != "" && c.WhatsApp.PhoneNumberID != ""
	case ChannelSMS:
		return c.SMS.Aliyun.Configured() || c.SMS.Tencent.Configured()
	default:
		return false
	}
}

// IsExcludedEmail 是否是组织内部邮箱
func (c EmailConfig) IsExcludedEmail(email string) bool {
	addr := strings.ToLower(strings.TrimSpace(email))
	for _, d := range c.ExcludedDomains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d != "" && strings.HasSuffix(addr, "@"+d) {
			return true
		}
	}
	return false
}
