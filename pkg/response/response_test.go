package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	fn(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Success(c, gin.H{"id": "1"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, "success", body.Message)
}

func TestCreated(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Created(c, "下单成功", gin.H{"order_id": "o-1"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "下单成功", body.Message)
	assert.Equal(t, map[string]interface{}{"order_id": "o-1"}, body.Data)
}

func TestError(t *testing.T) {
	t.Run("业务错误返回对应状态码", func(t *testing.T) {
		w, body := perform(t, func(c *gin.Context) {
			Error(c, apperrors.ErrOrderNotFound)
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeOrderNotFound, body.Code)
		assert.Nil(t, body.Data)
	})

	t.Run("内部错误不泄露细节", func(t *testing.T) {
		w, body := perform(t, func(c *gin.Context) {
			Error(c, errors.New("dial tcp 10.0.0.1:3306: connection refused"))
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "系统内部错误", body.Message)
		assert.NotContains(t, w.Body.String(), "3306")
	})

	t.Run("自定义错误码", func(t *testing.T) {
		w, body := perform(t, func(c *gin.Context) {
			ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: items")
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "参数错误: items", body.Message)
	})
}
