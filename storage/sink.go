// Package storage 保存上传文件的内容，记录本身的元数据由 repository 负责。
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/RigelNana/arkstudy/services/admin-service/config"
	"github.com/google/uuid"
)

// Sink 是上传文件的落地位置
type Sink interface {
	// Save 写入文件内容，返回之后可用于 Remove 的 key
	Save(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// NewSink 根据 upload.backend 创建对应的 Sink
func NewSink(ctx context.Context, upload config.UploadConfig, minioCfg config.MinIOConfig) (Sink, error) {
	switch upload.Backend {
	case "local":
		return NewLocalSink(upload.Dir)
	case "minio":
		return NewMinIOSink(ctx, minioCfg)
	default:
		return nil, fmt.Errorf("unsupported upload backend %q", upload.Backend)
	}
}

// objectName 生成 prefix/uuid.ext，原文件名只保留扩展名
func objectName(prefix, filename string) string {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
