package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// parseID 解析路径参数 :id，失败时直接返回 400
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id", "error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// queryID 读取正整数查询参数，无法解析的值视为未提供
func queryID(c *gin.Context, key string) (int64, bool) {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func queryInt(c *gin.Context, key string) (int, bool) {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// badRequest 处理解析、校验和上传错误
func badRequest(c *gin.Context, message string, err error) {
	body := gin.H{"message": message, "error": err.Error()}

	var validationErr *models.ValidationError
	var uploadErr *service.UploadError
	switch {
	case errors.As(err, &validationErr):
		body["fields"] = validationErr.Fields
	case errors.As(err, &uploadErr):
		body["message"] = uploadErr.Reason
	}
	c.JSON(http.StatusBadRequest, body)
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

// serverError 细节只写日志，响应里只有通用信息
func serverError(c *gin.Context, log *logrus.Logger, message string, err error) {
	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

// isClientError 判断是否应该返回 400
func isClientError(err error) bool {
	var validationErr *models.ValidationError
	var uploadErr *service.UploadError
	return errors.As(err, &validationErr) || errors.As(err, &uploadErr)
}
