package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/bookreview/internal/application/catalog"
	"github.com/xiebiao/bookreview/internal/domain/book"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/pkg/response"
)

// BookHandler 图书目录HTTP处理器
// 公开查询（列表/ISBN/作者/书名）都经过Fetcher；
// /internal/books是给回环拉取用的内部端点，直读存储
type BookHandler struct {
	listBooksUseCase   *appcatalog.ListBooksUseCase
	findBookUseCase    *appcatalog.FindBookUseCase
	searchBooksUseCase *appcatalog.SearchBooksUseCase
	catalog            book.Repository
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appcatalog.ListBooksUseCase,
	findBookUseCase *appcatalog.FindBookUseCase,
	searchBooksUseCase *appcatalog.SearchBooksUseCase,
	catalog book.Repository,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:   listBooksUseCase,
		findBookUseCase:    findBookUseCase,
		searchBooksUseCase: searchBooksUseCase,
		catalog:            catalog,
	}
}

// ListBooks 查询全部图书
// @Summary      图书列表
// @Description  返回目录中全部图书（含书评），ISBN数字升序
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.BookListResponse} "查询成功"
// @Failure      500 {object} response.Response "目录拉取失败"
// @Router       / [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookListResponse(result))
}

// GetByISBN 按ISBN查询图书
// @Summary      按ISBN查询
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse} "查询成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      500 {object} response.Response "目录拉取失败"
// @Router       /isbn/{isbn} [get]
func (h *BookHandler) GetByISBN(c *gin.Context) {
	isbn := c.Param("isbn")

	result, err := h.findBookUseCase.Execute(c.Request.Context(), isbn)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookResponse{
		ISBN:    result.ISBN,
		Author:  result.Author,
		Title:   result.Title,
		Reviews: result.Reviews,
	})
}

// GetByAuthor 按作者查询图书
// @Summary      按作者查询
// @Description  作者名精确匹配（区分大小写），零命中返回404
// @Tags         图书
// @Produce      json
// @Param        author path string true "作者"
// @Success      200 {object} response.Response{data=dto.BookListResponse} "查询成功"
// @Failure      404 {object} response.Response "无匹配图书"
// @Failure      500 {object} response.Response "目录拉取失败"
// @Router       /author/{author} [get]
func (h *BookHandler) GetByAuthor(c *gin.Context) {
	author := c.Param("author")

	result, err := h.searchBooksUseCase.ByAuthor(c.Request.Context(), author)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookListResponse(result))
}

// GetByTitle 按书名查询图书
// @Summary      按书名查询
// @Description  书名精确匹配（区分大小写），零命中返回404
// @Tags         图书
// @Produce      json
// @Param        title path string true "书名"
// @Success      200 {object} response.Response{data=dto.BookListResponse} "查询成功"
// @Failure      404 {object} response.Response "无匹配图书"
// @Failure      500 {object} response.Response "目录拉取失败"
// @Router       /title/{title} [get]
func (h *BookHandler) GetByTitle(c *gin.Context) {
	title := c.Param("title")

	result, err := h.searchBooksUseCase.ByTitle(c.Request.Context(), title)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookListResponse(result))
}

// InternalBooks 内部列表端点（回环拉取的数据源）
// 说明：返回 ISBN → 图书 的裸映射，不套统一响应壳——
// 回环Fetcher按这个格式解码，壳会破坏兼容
// @Summary      内部图书映射
// @Tags         内部
// @Produce      json
// @Success      200 {object} map[string]book.Book "图书映射"
// @Router       /internal/books [get]
func (h *BookHandler) InternalBooks(c *gin.Context) {
	books, err := h.catalog.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	byISBN := make(map[string]*book.Book, len(books))
	for _, b := range books {
		byISBN[b.ISBN] = b
	}
	c.JSON(http.StatusOK, byISBN)
}

// toBookListResponse 应用层DTO → HTTP层DTO
func toBookListResponse(result *appcatalog.ListBooksResponse) *dto.BookListResponse {
	books := make([]dto.BookResponse, len(result.Books))
	for i, b := range result.Books {
		books[i] = dto.BookResponse{
			ISBN:    b.ISBN,
			Author:  b.Author,
			Title:   b.Title,
			Reviews: b.Reviews,
		}
	}
	return &dto.BookListResponse{
		Books: books,
		Total: result.Total,
	}
}
