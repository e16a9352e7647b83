package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SessionConfig 会话注册表配置
// backend说明：
// - memory: 进程内映射（默认，单实例部署）
// - redis: 共享会话（多实例部署）
type SessionConfig struct {
	Backend string `mapstructure:"backend"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expire time.Duration `mapstructure:"expire"` // 凭证有效期（默认1小时）
}

// CatalogConfig 目录拉取配置
// fetch_mode说明：
// - direct: 进程内直连目录存储（默认）
// - loopback: 通过HTTP回环请求自身的 /internal/books 端点（保留原始拓扑）
type CatalogConfig struct {
	FetchMode    string        `mapstructure:"fetch_mode"`
	LoopbackURL  string        `mapstructure:"loopback_url"` // 为空时取 http://localhost:{server.port}
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	// 熔断器参数（仅loopback模式使用）
	BreakerMaxRequests uint32        `mapstructure:"breaker_max_requests"`
	BreakerInterval    time.Duration `mapstructure:"breaker_interval"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
	BreakerFailures    uint32        `mapstructure:"breaker_failures"` // 连续失败多少次熔断
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // console | json
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 环境变量覆盖（如BOOKREVIEW_SERVER_PORT、BOOKREVIEW_JWT_SECRET）
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 默认值：不带配置文件也能以合理参数启动
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("session.backend", "memory")
	v.SetDefault("jwt.secret", "your-secret-key-change-in-production")
	v.SetDefault("jwt.expire", time.Hour)
	v.SetDefault("catalog.fetch_mode", "direct")
	v.SetDefault("catalog.fetch_timeout", 3*time.Second)
	v.SetDefault("catalog.breaker_max_requests", 1)
	v.SetDefault("catalog.breaker_interval", 10*time.Second)
	v.SetDefault("catalog.breaker_timeout", 30*time.Second)
	v.SetDefault("catalog.breaker_failures", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// 配置文件可选：读不到时完全依赖默认值和环境变量
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 环境变量绑定（BOOKREVIEW_SESSION_BACKEND → session.backend）
	v.SetEnvPrefix("BOOKREVIEW")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("无效的会话后端: %s（可选memory/redis）", cfg.Session.Backend)
	}

	switch cfg.Catalog.FetchMode {
	case "direct", "loopback":
	default:
		return fmt.Errorf("无效的目录拉取模式: %s（可选direct/loopback）", cfg.Catalog.FetchMode)
	}

	if cfg.JWT.Secret == "your-secret-key-change-in-production" && cfg.Server.Mode == "release" {
		return fmt.Errorf("生产环境必须修改JWT密钥")
	}

	return nil
}
