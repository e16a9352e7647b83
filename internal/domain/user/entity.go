package user

import (
	"time"
)

// User 用户实体（聚合根）
// 设计说明：
// 1. Username在全系统唯一，是书评映射的键来源（鉴权身份）
// 2. Password按约定是不透明字符串，登录时按相等性比较
//    （密码加固不在本系统范围内）
// 3. 用户注册后不会被修改或删除
type User struct {
	Username  string
	Password  string
	CreatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
func NewUser(username, password string) *User {
	return &User{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
}

// MatchPassword 按相等性比较密码
func (u *User) MatchPassword(password string) bool {
	return u.Password == password
}
