//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 使用方式：
// Step 1: 修改本文件的Providers或Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如memory.NewUserStore）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appcatalog "github.com/xiebiao/bookreview/internal/application/catalog"
	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/logger"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,            // 加载配置文件
	provideCatalogStore,    // 目录存储（含种子数据）
	memory.NewUserStore,    // 用户存储
	provideSessionRegistry, // 会话注册表（memory/redis按配置选择）
	provideFetcher,         // 目录拉取器（direct/loopback按配置选择）
	provideJWTManager,      // JWT管理器

	// 接口绑定：Wire需要知道用哪个实现满足接口
	wire.Bind(new(book.Repository), new(*memory.CatalogStore)),
	wire.Bind(new(user.Repository), new(*memory.UserStore)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,   // 用户领域服务
	review.NewService, // 书评领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appcatalog.NewListBooksUseCase,
	appcatalog.NewFindBookUseCase,
	appcatalog.NewSearchBooksUseCase,
	appreview.NewUpsertReviewUseCase,
	appreview.NewDeleteReviewUseCase,
	appreview.NewGetReviewsUseCase,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewReviewHandler,
)

// ========================================
// Custom Providers
// ========================================

// provideCatalogStore 创建目录存储并载入种子数据
func provideCatalogStore() *memory.CatalogStore {
	return memory.NewCatalogStore(memory.SeedBooks())
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)
}

// provideSessionRegistry 按配置选择会话后端
func provideSessionRegistry(cfg *config.Config) (user.SessionRegistry, error) {
	return buildSessionRegistry(cfg)
}

// provideFetcher 按配置选择目录拉取方式
func provideFetcher(cfg *config.Config, catalog book.Repository) (book.Fetcher, error) {
	return buildFetcher(cfg, catalog)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册复用main.go的registerRoutes，两条装配路径产出同一张路由表
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	metrics.InitMetrics()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, reviewHandler, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		provideGinEngine,
	)

	// 占位返回值，实际初始化代码由Wire生成在wire_gen.go
	return nil, nil
}
