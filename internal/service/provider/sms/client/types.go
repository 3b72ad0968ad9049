package client

import "errors"

const OK = "OK"

var (
	ErrInvalidParameter = errors.New("短信参数错误")
	ErrSendFailed       = errors.New("短信发送失败")
)

//go:generate mockgen -source=./types.go -destination=./mocks/sms.mock.go -package=smsmocks Client
type Client interface {
	Send(req SendReq) (SendResp, error)
}

type SendReq struct {
	PhoneNumbers []string
	SignName     string
	TemplateID   string
	// TemplateParam 阿里云按名字传参
	TemplateParam map[string]string
	// TemplateParamSet 腾讯云按顺序传参
	TemplateParamSet []string
}

type SendResp struct {
	RequestID    string
	PhoneNumbers map[string]SendRespStatus
}

type SendRespStatus struct {
	Code    string
	Message string
}
