package user

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名密码
// 2. 生成JWT Token作为会话凭证
// 3. 把 凭证 → 用户名 写入会话注册表
//    后续请求只查会话注册表，不再重新校验Token签名
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	sessions    user.SessionRegistry
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessions user.SessionRegistry,
) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		sessions:    sessions,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名密码（调用领域服务）
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token
	token, err := uc.jwtManager.GenerateToken(u.Username)
	if err != nil {
		return nil, err
	}

	// 3. 凭证写入会话注册表（会话有效期 = Token有效期）
	if err := uc.sessions.Save(ctx, token, u.Username, uc.jwtManager.Expire()); err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(uc.jwtManager.Expire().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessions user.SessionRegistry
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessions user.SessionRegistry) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions}
}

// Execute 执行登出
// 删除会话即立刻吊销凭证：Token本身尚未到期也无法再通过认证
func (uc *LogoutUseCase) Execute(ctx context.Context, credential string) error {
	return uc.sessions.Delete(ctx, credential)
}

// =========================================
// 应用层DTO
// =========================================

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // Token过期时间（秒）
}
