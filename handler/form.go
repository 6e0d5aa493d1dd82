package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/service"
	"github.com/gin-gonic/gin"
)

// multipartOverhead 为文本字段和分隔符预留的请求体空间
const multipartOverhead = 1 << 20

// formFile 读取表单中的 file 字段。没有文件时返回 nil, nil，由 UploadService 统一拒绝。
func formFile(c *gin.Context, maxBytes int64) (*multipart.FileHeader, error) {
	limit := maxBytes + multipartOverhead
	if c.Request.ContentLength > limit {
		return nil, service.ErrFileTooLarge(maxBytes)
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fh, err := c.FormFile("file")
	if err == nil {
		return fh, nil
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return nil, service.ErrFileTooLarge(maxBytes)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, err
	}
}

// uploadForm 读取 multipart 文本字段。数字字段缺失或为空时取零值交给校验处理，
// 有值但不是数字时记为字段错误。
type uploadForm struct {
	c    *gin.Context
	errs []models.FieldError
}

func newUploadForm(c *gin.Context) *uploadForm {
	return &uploadForm{c: c}
}

func (f *uploadForm) raw(key string) string {
	return strings.TrimSpace(f.c.PostForm(key))
}

func (f *uploadForm) notANumber(key string) {
	f.errs = append(f.errs, models.FieldError{Field: key, Rule: "number", Message: "must be a number"})
}

func (f *uploadForm) int64(key string) int64 {
	raw := f.raw(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.notANumber(key)
		return 0
	}
	return v
}

func (f *uploadForm) int(key string) int {
	raw := f.raw(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f.notANumber(key)
		return 0
	}
	return v
}

// optionalInt 字段缺失或为空时返回 nil
func (f *uploadForm) optionalInt(key string) *int {
	raw := f.raw(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f.notANumber(key)
		return nil
	}
	return &v
}

func (f *uploadForm) optionalString(key string) *string {
	if v, ok := f.c.GetPostForm(key); ok && v != "" {
		return &v
	}
	return nil
}

// bool 只有字符串 "true" 为真
func (f *uploadForm) bool(key string) *bool {
	v := f.c.PostForm(key) == "true"
	return &v
}

// err 没有字段错误时返回 nil
func (f *uploadForm) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return &models.ValidationError{Fields: f.errs}
}
