// Package response 提供统一的 HTTP JSON 响应辅助函数。
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/foodordering/pkg/apperr"
	"github.com/wyfcoding/foodordering/pkg/logger"
)

// Success 返回 200 与数据
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created 返回 201 与数据
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error 按错误类别返回对应状态码与客户端安全消息。
// 内部错误带完整细节记入日志。
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.JSON(status, gin.H{"error": apperr.ClientMessage(err)})
}

// ErrorWithStatus 直接以指定状态码返回错误消息
func ErrorWithStatus(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
