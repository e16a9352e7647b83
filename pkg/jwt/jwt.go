package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// Manager JWT管理器
// 设计说明：
// 1. 登录成功时签发一个短期Access Token（默认1小时），作为会话凭证下发
// 2. 后续请求的放行依据是会话注册表（credential → username），
//    中间件不重复校验签名——签名只保证凭证不可伪造地产生于本服务
type Manager struct {
	secret string        // 签名密钥
	expire time.Duration // Token有效期
}

// NewManager 创建JWT管理器
func NewManager(secret string, expire time.Duration) *Manager {
	return &Manager{
		secret: secret,
		expire: expire,
	}
}

// Claims 自定义JWT Claims
// 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf等）
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Expire 返回Token有效期（会话TTL与其保持一致）
func (m *Manager) Expire() time.Duration {
	return m.expire
}

// GenerateToken 为指定用户签发Access Token
func (m *Manager) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "bookreview",
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "生成Token失败")
	}

	return tokenString, nil
}

// ParseToken 解析并验证Token
// 说明：运行时的鉴权走会话注册表，此方法供运维排查与测试使用
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidCredentials
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.ErrCodeInvalidCredentials, "无效的Token")
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidCredentials
}
