package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
// :id 可以是UUID或旧数字编号
type BookHandler struct {
	listBooksUseCase   *appbook.ListBooksUseCase
	getBookUseCase     *appbook.GetBookUseCase
	manageBooksUseCase *appbook.ManageBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	manageBooksUseCase *appbook.ManageBooksUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:   listBooksUseCase,
		getBookUseCase:     getBookUseCase,
		manageBooksUseCase: manageBooksUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  查询全部图书,按上架时间倒序;无过滤条件时走Redis缓存
// @Tags         图书模块
// @Produce      json
// @Param        keyword      query  string  false  "书名或作者关键词"
// @Param        genre        query  string  false  "分类"
// @Param        best_seller  query  bool    false  "只看畅销书"
// @Success      200 {object} response.Response{data=[]appbook.BookInfo} "查询成功"
// @Failure      500 {object} response.Response "服务器错误"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	books, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Keyword:        req.Keyword,
		Genre:          req.Genre,
		BestSellerOnly: req.BestSeller,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, books)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书模块
// @Produce      json
// @Param        id  path  string  true  "图书UUID或旧数字编号"
// @Success      200 {object} response.Response{data=appbook.BookInfo} "查询成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	info, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  管理员上架图书,旧编号可选且不能重复
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookInfo} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "旧编号已存在"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.manageBooksUseCase.Create(c.Request.Context(), appbook.CreateBookRequest{
		LegacyID:    req.LegacyID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Price:       *req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BestSeller:  req.BestSeller,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "图书创建成功", info)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  部分更新,未传的字段保持不变
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                  true  "图书UUID或旧数字编号"
// @Param        request  body  dto.UpdateBookRequest   true  "修改内容"
// @Success      200 {object} response.Response{data=appbook.BookInfo} "修改成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.manageBooksUseCase.Update(c.Request.Context(), c.Param("id"), appbook.UpdateBookRequest{
		LegacyID:    req.LegacyID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BestSeller:  req.BestSeller,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "图书UUID或旧数字编号"
// @Success      200 {object} response.Response{data=appbook.BookInfo} "删除成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	info, err := h.manageBooksUseCase.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "图书已删除", info)
}
