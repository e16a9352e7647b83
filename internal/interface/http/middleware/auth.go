package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/response"
)

// AuthMiddleware 会话认证中间件
// 设计说明：
// 1. 从Header提取凭证（Bearer Token）
// 2. 认证只查会话注册表：凭证在表里即已登录，不重新校验Token签名或有效期
//    （登录时写入会话即视为背书，登出删除会话即立刻吊销）
// 3. 将用户名注入Context，后续Handler据此确定书评归属
type AuthMiddleware struct {
	sessions user.SessionRegistry
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(sessions user.SessionRegistry) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/review")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.PUT("/:isbn", handler.UpsertReview)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取凭证
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		// 2. 解析凭证格式
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		credential := parts[1]

		// 3. 查会话注册表（凭证不在表里 = 未登录或已登出）
		username, err := m.sessions.Username(c.Request.Context(), credential)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 4. 将用户身份注入到Context（后续Handler可以使用）
		c.Set("username", username)
		c.Set("credential", credential)

		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUsername 从Context获取当前登录用户名
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		if u, ok := username.(string); ok {
			return u
		}
	}
	return ""
}

// MustGetUsername 从Context获取用户名（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetUsername(c *gin.Context) string {
	username := GetUsername(c)
	if username == "" {
		panic("username not found in context")
	}
	return username
}

// GetCredential 从Context获取当前请求的会话凭证
func GetCredential(c *gin.Context) string {
	if credential, exists := c.Get("credential"); exists {
		if cr, ok := credential.(string); ok {
			return cr
		}
	}
	return ""
}
