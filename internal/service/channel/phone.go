package channel

import (
	"strings"

	"notification-delivery/internal/errs"
)

const localNumberDigits = 10

// NormalizePhone 转成 E.164 形式
// 只保留数字，刚好 10 位时补上默认国家码，最后加上 +
func NormalizePhone(raw, defaultCountryCode string) (string, error) {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if digits == "" {
		return "", errs.ErrContactUnavailable
	}
	if len(digits) == localNumberDigits {
		digits = strings.TrimPrefix(defaultCountryCode, "+") + digits
	}
	return "+" + digits, nil
}
