package user

import (
	"context"
	"time"
)

// SessionRegistry 会话注册表接口
// 设计说明：
// 1. 登录成功时建立 凭证 → 用户名 的临时关联，登出时删除
// 2. 每个变更请求都查一次注册表：这是鉴权的唯一依据
//    （凭证本身是登录时签发的JWT，但请求路径上不重复校验签名）
// 3. 建模为显式对象注入到中间件，而不是包级全局状态，便于测试隔离
// 4. 实现有两种：进程内映射（默认）和Redis（多实例部署时共享会话）
type SessionRegistry interface {
	// Save 保存会话（凭证 → 用户名），ttl与凭证有效期一致
	Save(ctx context.Context, credential, username string, ttl time.Duration) error

	// Username 根据凭证解析用户名
	// 凭证未登记（或已过期删除）时返回errors.ErrUnauthenticated
	Username(ctx context.Context, credential string) (string, error)

	// Delete 删除会话（登出）
	Delete(ctx context.Context, credential string) error
}
