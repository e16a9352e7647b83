package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/xiebiao/bookreview/internal/application/catalog"
	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/catalogclient"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/jwt"
)

// response 统一响应壳（测试侧解析用）
type response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestRouter 组装完整的HTTP栈（进程内存储 + 直连拉取）
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogStore := memory.NewCatalogStore(memory.SeedBooks())
	userStore := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	fetcher := catalogclient.NewDirectFetcher(catalogStore)

	userService := user.NewService(userStore)
	reviewService := review.NewService(catalogStore)

	userHandler := handler.NewUserHandler(
		appuser.NewRegisterUseCase(userService),
		appuser.NewLoginUseCase(userService, jwtManager, sessions),
		appuser.NewLogoutUseCase(sessions),
	)
	bookHandler := handler.NewBookHandler(
		appcatalog.NewListBooksUseCase(fetcher),
		appcatalog.NewFindBookUseCase(fetcher),
		appcatalog.NewSearchBooksUseCase(fetcher),
		catalogStore,
	)
	reviewHandler := handler.NewReviewHandler(
		appreview.NewUpsertReviewUseCase(reviewService),
		appreview.NewDeleteReviewUseCase(reviewService),
		appreview.NewGetReviewsUseCase(reviewService),
	)
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	r := gin.New()
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
	r.GET("/", bookHandler.ListBooks)
	r.GET("/isbn/:isbn", bookHandler.GetByISBN)
	r.GET("/author/:author", bookHandler.GetByAuthor)
	r.GET("/title/:title", bookHandler.GetByTitle)
	r.GET("/internal/books", bookHandler.InternalBooks)
	r.GET("/review/:isbn", reviewHandler.GetReviews)
	authorized := r.Group("/review")
	authorized.Use(authMiddleware.RequireAuth())
	{
		authorized.PUT("/:isbn", reviewHandler.UpsertReview)
		authorized.DELETE("/:isbn", reviewHandler.DeleteReview)
	}
	return r
}

// do 发请求并解析统一响应壳
func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, response) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "响应不是统一壳格式: %s", w.Body.String())
	return w.Code, resp
}

// login 注册并登录，返回会话凭证
func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	status, _ := do(t, r, http.MethodPost, "/register", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status)

	status, resp := do(t, r, http.MethodPost, "/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

// TestUserFlow 注册、登录、登出
func TestUserFlow(t *testing.T) {
	t.Run("注册缺字段返回400", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("重复注册返回409", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret"})
		require.Equal(t, http.StatusOK, status)

		status, _ = do(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "other"})
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("密码错误返回401", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodPost, "/register", "", gin.H{"username": "alice", "password": "secret"})
		require.Equal(t, http.StatusOK, status)

		status, _ = do(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("未注册用户登录返回401", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodPost, "/login", "", gin.H{"username": "nobody", "password": "secret"})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("登出后凭证立刻失效", func(t *testing.T) {
		r := newTestRouter(t)
		token := login(t, r, "alice", "secret")

		status, _ := do(t, r, http.MethodPost, "/logout", token, nil)
		require.Equal(t, http.StatusOK, status)

		// 同一Token再写书评被拒（Token本身未过期，但会话已删除）
		status, _ = do(t, r, http.MethodPut, "/review/1?review=hello", token, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

// TestCatalogEndpoints 目录查询
func TestCatalogEndpoints(t *testing.T) {
	t.Run("列表返回全部10本", func(t *testing.T) {
		r := newTestRouter(t)
		status, resp := do(t, r, http.MethodGet, "/", "", nil)
		require.Equal(t, http.StatusOK, status)

		var data struct {
			Books []struct {
				ISBN string `json:"isbn"`
			} `json:"books"`
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 10, data.Total)
		assert.Equal(t, "1", data.Books[0].ISBN)
		assert.Equal(t, "10", data.Books[9].ISBN)
	})

	t.Run("按ISBN查询", func(t *testing.T) {
		r := newTestRouter(t)
		status, resp := do(t, r, http.MethodGet, "/isbn/8", "", nil)
		require.Equal(t, http.StatusOK, status)

		var data struct {
			Author string `json:"author"`
			Title  string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "Jane Austen", data.Author)
		assert.Equal(t, "Pride and Prejudice", data.Title)
	})

	t.Run("未知ISBN返回404", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodGet, "/isbn/999", "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("按作者查询可多命中", func(t *testing.T) {
		r := newTestRouter(t)
		status, resp := do(t, r, http.MethodGet, "/author/Unknown", "", nil)
		require.Equal(t, http.StatusOK, status)

		var data struct {
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 4, data.Total)
	})

	t.Run("作者零命中返回404", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodGet, "/author/nobody", "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("按书名精确查询", func(t *testing.T) {
		r := newTestRouter(t)
		status, resp := do(t, r, http.MethodGet, "/title/Fairy%20tales", "", nil)
		require.Equal(t, http.StatusOK, status)

		var data struct {
			Books []struct {
				ISBN string `json:"isbn"`
			} `json:"books"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Len(t, data.Books, 1)
		assert.Equal(t, "2", data.Books[0].ISBN)
	})

	t.Run("内部端点返回裸映射", func(t *testing.T) {
		r := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/internal/books", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		// 不套统一响应壳：顶层就是 ISBN → 图书
		var byISBN map[string]struct {
			Title string `json:"title"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byISBN))
		assert.Len(t, byISBN, 10)
		assert.Equal(t, "Things Fall Apart", byISBN["1"].Title)
	})
}

// TestReviewFlow 书评完整流程
func TestReviewFlow(t *testing.T) {
	t.Run("未登录写书评返回403", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodPut, "/review/1?review=hello", "", nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("伪造Token返回403", func(t *testing.T) {
		r := newTestRouter(t)
		status, _ := do(t, r, http.MethodPut, "/review/1?review=hello", "forged-token", nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("写入、覆盖、查询、删除", func(t *testing.T) {
		r := newTestRouter(t)
		token := login(t, r, "alice", "secret")

		// 写入（书评文本走查询参数）
		status, resp := do(t, r, http.MethodPut, "/review/1?review=%E5%A5%BD%E4%B9%A6", token, nil)
		require.Equal(t, http.StatusOK, status)

		// json.Unmarshal往已有map里合并，复用会残留旧键，每步都得用新map解码
		var data struct {
			Reviews map[string]string `json:"reviews"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "好书", data.Reviews["alice"])

		// 覆盖（JSON请求体回落路径）
		status, resp = do(t, r, http.MethodPut, "/review/1", token, gin.H{"review": "改主意了"})
		require.Equal(t, http.StatusOK, status)
		data.Reviews = nil
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Len(t, data.Reviews, 1)
		assert.Equal(t, "改主意了", data.Reviews["alice"])

		// 任何人可查
		status, resp = do(t, r, http.MethodGet, "/review/1", "", nil)
		require.Equal(t, http.StatusOK, status)
		data.Reviews = nil
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "改主意了", data.Reviews["alice"])

		// 删除
		status, resp = do(t, r, http.MethodDelete, "/review/1", token, nil)
		require.Equal(t, http.StatusOK, status)
		data.Reviews = nil
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Empty(t, data.Reviews)
	})

	t.Run("空书评返回400", func(t *testing.T) {
		r := newTestRouter(t)
		token := login(t, r, "alice", "secret")

		status, _ := do(t, r, http.MethodPut, "/review/1", token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("给不存在的图书写书评返回404", func(t *testing.T) {
		r := newTestRouter(t)
		token := login(t, r, "alice", "secret")

		status, _ := do(t, r, http.MethodPut, "/review/999?review=hello", token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("删除只影响自己的书评", func(t *testing.T) {
		r := newTestRouter(t)
		aliceToken := login(t, r, "alice", "secret")
		bobToken := login(t, r, "bob", "secret")

		status, _ := do(t, r, http.MethodPut, "/review/1?review=alice-review", aliceToken, nil)
		require.Equal(t, http.StatusOK, status)
		status, _ = do(t, r, http.MethodPut, "/review/1?review=bob-review", bobToken, nil)
		require.Equal(t, http.StatusOK, status)

		status, resp := do(t, r, http.MethodDelete, "/review/1", aliceToken, nil)
		require.Equal(t, http.StatusOK, status)

		var data struct {
			Reviews map[string]string `json:"reviews"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotContains(t, data.Reviews, "alice")
		assert.Equal(t, "bob-review", data.Reviews["bob"])
	})

	t.Run("没写过书评的用户删除返回404", func(t *testing.T) {
		r := newTestRouter(t)
		token := login(t, r, "alice", "secret")

		status, _ := do(t, r, http.MethodDelete, "/review/1", token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("无书评的图书查询返回空映射", func(t *testing.T) {
		r := newTestRouter(t)
		status, resp := do(t, r, http.MethodGet, "/review/3", "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "该图书暂无书评", resp.Message)
	})
}
