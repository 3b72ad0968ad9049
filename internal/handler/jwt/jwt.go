package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gotomicro/ego/core/elog"
)

const (
	// UserIDName token 中的用户 ID 字段，同时也是写入 gin.Context 的键
	UserIDName   = "user_id"
	bearerPrefix = "Bearer "
)

var ErrUnauthenticated = errors.New("未登录或 token 无效")

type AuthBuilder struct {
	key    []byte
	logger *elog.Component
}

func NewJwtAuthBuilder(key string) *AuthBuilder {
	return &AuthBuilder{
		key:    []byte(key),
		logger: elog.DefaultLogger,
	}
}

// Build 校验 Authorization 头，通过后把用户 ID 写入上下文
func (b *AuthBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := b.Decode(ctx.GetHeader("Authorization"))
		if err != nil {
			b.logger.Warn("jwt 校验失败", elog.FieldErr(err), elog.String("path", ctx.Request.URL.Path))
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		userID, err := userIDOf(claims)
		if err != nil {
			b.logger.Warn("jwt 缺少用户 ID", elog.FieldErr(err))
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Set(UserIDName, userID)
		ctx.Next()
	}
}

// Decode 解析 "Bearer xxx" 或裸 token
func (b *AuthBuilder) Decode(header string) (jwt.MapClaims, error) {
	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: 缺少 token", ErrUnauthenticated)
	}
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", token.Header["alg"])
		}
		return b.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

func (b *AuthBuilder) Encode(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.key)
}

// GetUserID 取出中间件写入的用户 ID
func GetUserID(ctx *gin.Context) (int64, error) {
	val, ok := ctx.Get(UserIDName)
	if !ok {
		return 0, ErrUnauthenticated
	}
	id, ok := val.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: 用户 ID 类型错误 %T", ErrUnauthenticated, val)
	}
	return id, nil
}

func userIDOf(claims jwt.MapClaims) (int64, error) {
	switch v := claims[UserIDName].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %s = %v", ErrUnauthenticated, UserIDName, claims[UserIDName])
	}
}
