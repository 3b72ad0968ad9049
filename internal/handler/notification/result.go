package notification

import "github.com/ecodeclub/ginx"

const (
	codeInvalidParameter = 400001
	codeNotDelivered     = 400002
	codeNotFound         = 404001
	codeDuplicate        = 409001
	codeSystemError      = 500001
)

var (
	systemErrorResult = ginx.Result{Code: codeSystemError, Msg: "系统错误"}
	notFoundResult    = ginx.Result{Code: codeNotFound, Msg: "投递记录不存在"}
	duplicateResult   = ginx.Result{Code: codeDuplicate, Msg: "重复请求"}
)

func invalidParamResult(msg string) ginx.Result {
	return ginx.Result{Code: codeInvalidParameter, Msg: msg}
}
