package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// bindJSON 绑定并校验请求体,失败时直接写400响应
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		bindError(c, err)
		return false
	}
	return true
}

// bindError 参数绑定失败(binding tag校验、JSON格式错误)
func bindError(c *gin.Context, err error) {
	response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "参数错误: %s", err.Error()))
}
