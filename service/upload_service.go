package service

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/pkg/metrics"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

const (
	ServiceName = "admin-service"

	KindMaterial = "material"
	KindPyqPaper = "pyq_paper"
)

var allowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
}

// UploadError 上传被拒绝（缺少文件、类型不允许、超过大小），对应 400
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return e.Reason
}

func ErrNoFile() error {
	return &UploadError{Reason: "No file uploaded"}
}

func ErrInvalidFileType() error {
	return &UploadError{Reason: "Invalid file type. Only PDF, DOC, DOCX, PPT, PPTX files are allowed."}
}

func ErrFileTooLarge(maxBytes int64) error {
	return &UploadError{Reason: fmt.Sprintf("File too large. Maximum size is %s", humanBytes(maxBytes))}
}

// FileInfo 是写入记录的文件元数据
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
}

type UploadService interface {
	// MaxBytes 单个文件允许的最大字节数
	MaxBytes() int64
	Inspect(fh *multipart.FileHeader) (*FileInfo, error)
	CreateMaterial(ctx context.Context, fh *multipart.FileHeader, in models.InsertMaterial) (*models.Material, error)
	CreatePyqPaper(ctx context.Context, fh *multipart.FileHeader, in models.InsertPyqPaper) (*models.PyqPaper, error)
}

type UploadServiceImpl struct {
	repo     repository.Storage
	sink     storage.Sink
	maxBytes int64
	log      *logrus.Logger
}

func NewUploadService(repo repository.Storage, sink storage.Sink, maxBytes int64, log *logrus.Logger) UploadService {
	return &UploadServiceImpl{repo: repo, sink: sink, maxBytes: maxBytes, log: log}
}

func (s *UploadServiceImpl) MaxBytes() int64 {
	return s.maxBytes
}

// Inspect 检查文件是否存在、大小和类型。声明的 Content-Type 缺失或为
// application/octet-stream 时根据内容识别类型。
func (s *UploadServiceImpl) Inspect(fh *multipart.FileHeader) (*FileInfo, error) {
	if fh == nil {
		return nil, ErrNoFile()
	}
	if fh.Size > s.maxBytes {
		return nil, ErrFileTooLarge(s.maxBytes)
	}
	// 没有扩展名时只看类型
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != "" && !allowedExtensions[ext] {
		return nil, ErrInvalidFileType()
	}

	contentType := ""
	if declared := fh.Header.Get("Content-Type"); declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			contentType = mediaType
		}
	}
	if contentType == "" || contentType == "application/octet-stream" {
		detected, err := sniff(fh)
		if err != nil {
			return nil, err
		}
		contentType = detected
	}
	if !isAllowedType(contentType) {
		return nil, ErrInvalidFileType()
	}

	return &FileInfo{Name: fh.Filename, Size: fh.Size, ContentType: contentType}, nil
}

func (s *UploadServiceImpl) CreateMaterial(ctx context.Context, fh *multipart.FileHeader, in models.InsertMaterial) (*models.Material, error) {
	info, err := s.Inspect(fh)
	if err != nil {
		s.reject(KindMaterial, fh, err)
		return nil, err
	}
	in.FileName, in.FileSize, in.FileType = info.Name, info.Size, info.ContentType
	if err := models.Validate(in); err != nil {
		s.reject(KindMaterial, fh, err)
		return nil, err
	}

	var created *models.Material
	err = s.persist(ctx, KindMaterial, fh, info, func() error {
		var err error
		created, err = s.repo.CreateMaterial(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *UploadServiceImpl) CreatePyqPaper(ctx context.Context, fh *multipart.FileHeader, in models.InsertPyqPaper) (*models.PyqPaper, error) {
	info, err := s.Inspect(fh)
	if err != nil {
		s.reject(KindPyqPaper, fh, err)
		return nil, err
	}
	in.FileName, in.FileSize = info.Name, info.Size
	if err := models.Validate(in); err != nil {
		s.reject(KindPyqPaper, fh, err)
		return nil, err
	}

	var created *models.PyqPaper
	err = s.persist(ctx, KindPyqPaper, fh, info, func() error {
		var err error
		created, err = s.repo.CreatePyqPaper(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// persist 先写文件再写记录，记录写入失败时删除已写入的文件
func (s *UploadServiceImpl) persist(ctx context.Context, kind string, fh *multipart.FileHeader, info *FileInfo, insert func() error) error {
	f, err := fh.Open()
	if err != nil {
		metrics.RecordUpload(ServiceName, kind, "failed", 0)
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	key, err := s.sink.Save(ctx, kind, info.Name, f, info.Size, info.ContentType)
	if err != nil {
		metrics.RecordUpload(ServiceName, kind, "failed", 0)
		return err
	}

	if err := insert(); err != nil {
		metrics.RecordUpload(ServiceName, kind, "failed", 0)
		if rmErr := s.sink.Remove(ctx, key); rmErr != nil {
			s.log.WithError(rmErr).WithField("key", key).Error("UploadService persist: failed to remove orphaned file")
		}
		return fmt.Errorf("failed to save %s record: %w", kind, err)
	}

	metrics.RecordUpload(ServiceName, kind, "success", info.Size)
	s.log.WithFields(logrus.Fields{
		"kind": kind, "key": key, "file": info.Name, "size": info.Size, "type": info.ContentType,
	}).Info("UploadService persist: stored")
	return nil
}

func (s *UploadServiceImpl) reject(kind string, fh *multipart.FileHeader, err error) {
	metrics.RecordUpload(ServiceName, kind, "rejected", 0)
	entry := s.log.WithField("kind", kind)
	if fh != nil {
		entry = entry.WithFields(logrus.Fields{"file": fh.Filename, "size": fh.Size})
	}
	entry.WithError(err).Warn("UploadService: upload rejected")
}

func sniff(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	for _, allowed := range allowedTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return mt.String(), nil
}

func isAllowedType(contentType string) bool {
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

func humanBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
