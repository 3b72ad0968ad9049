package client

import (
	"encoding/json"
	"fmt"
	"strings"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
)

const (
	endpoint = "dysmsapi.aliyuncs.com"
	// 毫秒
	connectTimeout = 3000
	readTimeout    = 5000
)

var _ Client = (*AliyunSMS)(nil)

// AliyunSMS 阿里云短信实现，国际号码不带加号
type AliyunSMS struct {
	client  *dysmsapi.Client
	runtime *util.RuntimeOptions
}

func (c *AliyunSMS) Send(req SendReq) (SendResp, error) {
	if len(req.PhoneNumbers) == 0 {
		return SendResp{}, fmt.Errorf("%w: 手机号码不能为空", ErrInvalidParameter)
	}

	templateParam := ""
	if req.TemplateParam != nil {
		jsonParams, err := json.Marshal(req.TemplateParam)
		if err != nil {
			return SendResp{}, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
		templateParam = string(jsonParams)
	}

	phones := make([]string, 0, len(req.PhoneNumbers))
	for _, phone := range req.PhoneNumbers {
		phones = append(phones, strings.TrimPrefix(phone, "+"))
	}
	request := &dysmsapi.SendSmsRequest{
		PhoneNumbers:  tea.String(strings.Join(phones, ",")),
		SignName:      tea.String(req.SignName),
		TemplateCode:  tea.String(req.TemplateID),
		TemplateParam: tea.String(templateParam),
	}
	response, err := c.client.SendSmsWithOptions(request, c.runtime)
	if err != nil {
		return SendResp{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if response.Body == nil || response.Body.Code == nil {
		return SendResp{}, fmt.Errorf("%w: %v", ErrSendFailed, "响应异常")
	}

	// 阿里云只返回整体状态，每个号码使用相同的状态，结果仍以调用方传入的号码为键
	result := SendResp{
		RequestID:    tea.StringValue(response.Body.RequestId),
		PhoneNumbers: make(map[string]SendRespStatus, len(req.PhoneNumbers)),
	}
	for _, phone := range req.PhoneNumbers {
		result.PhoneNumbers[phone] = SendRespStatus{
			Code:    tea.StringValue(response.Body.Code),
			Message: tea.StringValue(response.Body.Message),
		}
	}
	return result, nil
}

// NewAliyunSMS 创建阿里云短信实例
func NewAliyunSMS(regionID, accessKeyID, accessKeySecret string) (*AliyunSMS, error) {
	config := &openapi.Config{
		AccessKeyId:     tea.String(accessKeyID),
		AccessKeySecret: tea.String(accessKeySecret),
		RegionId:        tea.String(regionID),
		Endpoint:        tea.String(endpoint),
	}
	client, err := dysmsapi.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &AliyunSMS{
		client: client,
		runtime: &util.RuntimeOptions{
			ConnectTimeout: tea.Int(connectTimeout),
			ReadTimeout:    tea.Int(readTimeout),
		},
	}, nil
}
