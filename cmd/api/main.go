package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appcatalog "github.com/xiebiao/bookreview/internal/application/catalog"
	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/catalogclient"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/memory"
	infraredis "github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/circuitbreaker"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/logger"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/response"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go里有等价的Wire装配，供生成使用）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志与指标
	logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	metrics.InitMetrics()

	slog.Info("配置加载成功",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"session_backend", cfg.Session.Backend,
		"fetch_mode", cfg.Catalog.FetchMode,
	)

	// 3. 基础设施层
	// 目录与用户都在进程内存里，图书由种子数据一次性载入
	catalogStore := memory.NewCatalogStore(memory.SeedBooks())
	userStore := memory.NewUserStore()

	sessions, err := buildSessionRegistry(cfg)
	if err != nil {
		slog.Error("初始化会话注册表失败", "error", err)
		os.Exit(1)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire)

	fetcher, err := buildFetcher(cfg, catalogStore)
	if err != nil {
		slog.Error("初始化目录拉取器失败", "error", err)
		os.Exit(1)
	}

	// 4. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 领域层
	userService := user.NewService(userStore)
	reviewService := review.NewService(catalogStore)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessions)
	logoutUseCase := appuser.NewLogoutUseCase(sessions)
	listBooksUseCase := appcatalog.NewListBooksUseCase(fetcher)
	findBookUseCase := appcatalog.NewFindBookUseCase(fetcher)
	searchBooksUseCase := appcatalog.NewSearchBooksUseCase(fetcher)
	upsertReviewUseCase := appreview.NewUpsertReviewUseCase(reviewService)
	deleteReviewUseCase := appreview.NewDeleteReviewUseCase(reviewService)
	getReviewsUseCase := appreview.NewGetReviewsUseCase(reviewService)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(listBooksUseCase, findBookUseCase, searchBooksUseCase, catalogStore)
	reviewHandler := handler.NewReviewHandler(upsertReviewUseCase, deleteReviewUseCase, getReviewsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.Metrics())

	// 6. 注册路由
	registerRoutes(r, userHandler, bookHandler, reviewHandler, authMiddleware)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("服务启动", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("启动服务失败", "error", err)
		os.Exit(1)
	}
}

// buildSessionRegistry 按配置选择会话后端
func buildSessionRegistry(cfg *config.Config) (user.SessionRegistry, error) {
	switch cfg.Session.Backend {
	case "redis":
		client, err := infraredis.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return infraredis.NewSessionStore(client), nil
	default:
		return memory.NewSessionStore(), nil
	}
}

// buildFetcher 按配置选择目录拉取方式
// loopback模式下真实地向自身发HTTP请求，并用熔断器保护拉取步骤
func buildFetcher(cfg *config.Config, catalog book.Repository) (book.Fetcher, error) {
	if cfg.Catalog.FetchMode != "loopback" {
		return catalogclient.NewDirectFetcher(catalog), nil
	}

	rawURL := cfg.Catalog.LoopbackURL
	if rawURL == "" {
		rawURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("无效的回环地址 %q: %w", rawURL, err)
	}

	breaker := circuitbreaker.NewCircuitBreaker("catalog-loopback", circuitbreaker.Config{
		MaxRequests: cfg.Catalog.BreakerMaxRequests,
		Interval:    cfg.Catalog.BreakerInterval,
		Timeout:     cfg.Catalog.BreakerTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Catalog.BreakerFailures
		},
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		slog.Warn("熔断器状态切换", "name", name, "from", from.String(), "to", to.String())
	})

	client := &http.Client{Timeout: cfg.Catalog.FetchTimeout}
	return catalogclient.NewLoopbackFetcher(client, *baseURL, breaker), nil
}

// registerRoutes 注册路由
// 路由面向公开目录保持扁平（/、/isbn/:isbn、/author/:author、/title/:title），
// 书评变更挂在认证组下
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 用户模块（公开接口，不需要登录）
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)

	// 图书目录（公开接口）
	r.GET("/", bookHandler.ListBooks)
	r.GET("/isbn/:isbn", bookHandler.GetByISBN)
	r.GET("/author/:author", bookHandler.GetByAuthor)
	r.GET("/title/:title", bookHandler.GetByTitle)

	// 内部端点（回环拉取的数据源）
	r.GET("/internal/books", bookHandler.InternalBooks)

	// 书评
	r.GET("/review/:isbn", reviewHandler.GetReviews)
	authorized := r.Group("/review")
	authorized.Use(authMiddleware.RequireAuth())
	{
		authorized.PUT("/:isbn", reviewHandler.UpsertReview)
		authorized.DELETE("/:isbn", reviewHandler.DeleteReview)
	}
}
