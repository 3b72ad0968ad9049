package domain

// PushSubscription 浏览器推送订阅
type PushSubscription struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
	Ctime    int64  `json:"ctime"`
	Utime    int64  `json:"utime"`
}
