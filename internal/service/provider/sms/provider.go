package sms

import (
	"context"
	"fmt"
	"strings"

	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/service/provider"
	"notification-delivery/internal/service/provider/sms/client"
)

// 不可重试的短信业务错误码
var invalidRecipientCodes = map[string]struct{}{
	"isv.MOBILE_NUMBER_ILLEGAL":                  {},
	"isv.MOBILE_COUNT_OVER_LIMIT":                {},
	"FailedOperation.PhoneNumberInBlacklist":     {},
	"InvalidParameterValue.IncorrectPhoneNumber": {},
}

// 可以重试的短信业务错误码，统一转换为限流
var throttledCodes = map[string]struct{}{
	"isv.BUSINESS_LIMIT_CONTROL":                 {},
	"LimitExceeded.PhoneNumberDailyLimit":        {},
	"LimitExceeded.PhoneNumberThirtySecondLimit": {},
	"LimitExceeded.PhoneNumberOneHourLimit":      {},
}

var _ provider.Provider = (*smsProvider)(nil)

// smsProvider 使用预先审核过的通知模板发送短信
type smsProvider struct {
	name       string
	client     client.Client
	signName   string
	templateID string
}

func (p *smsProvider) Send(_ context.Context, msg domain.Message) error {
	if msg.To == "" {
		return fmt.Errorf("%w: 手机号为空", errs.ErrContactUnavailable)
	}
	content := msg.Body
	if msg.URL != "" {
		content += " " + msg.URL
	}
	resp, err := p.client.Send(client.SendReq{
		PhoneNumbers: []string{msg.To},
		SignName:     p.signName,
		TemplateID:   p.templateID,
		TemplateParam: map[string]string{
			"title":   msg.Title,
			"content": content,
		},
		TemplateParamSet: []string{msg.Title, content},
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errs.ErrSendFailed, p.name, err)
	}
	if len(resp.PhoneNumbers) == 0 {
		return fmt.Errorf("%w: %s: 响应中没有发送状态", errs.ErrSendFailed, p.name)
	}
	for phone, status := range resp.PhoneNumbers {
		if strings.EqualFold(status.Code, client.OK) {
			continue
		}
		if _, ok := invalidRecipientCodes[status.Code]; ok {
			return fmt.Errorf("%w: %s: %s %s", errs.ErrInvalidRecipient, p.name, status.Code, status.Message)
		}
		if _, ok := throttledCodes[status.Code]; ok {
			return fmt.Errorf("%w: %s: %s %s", errs.ErrRateLimited, p.name, status.Code, status.Message)
		}
		return fmt.Errorf("%w: %s: phone = %s, Code = %s, Message = %s",
			errs.ErrSendFailed, p.name, phone, status.Code, status.Message)
	}
	return nil
}

// NewSMSProvider name 为 aliyun 或 tencent
func NewSMSProvider(name string, c client.Client, signName, templateID string) provider.Provider {
	return &smsProvider{
		name:       name,
		client:     c,
		signName:   signName,
		templateID: templateID,
	}
}
