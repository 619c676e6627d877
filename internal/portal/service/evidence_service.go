package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// EvidenceService 评估证据附件存储。优先写 MinIO，没有配置时落本地磁盘。
type EvidenceService struct {
	minioClient *minio.Client
	bucketName  string
	localDir    string
}

func NewEvidenceService(minioClient *minio.Client, bucketName, localDir string) *EvidenceService {
	return &EvidenceService{
		minioClient: minioClient,
		bucketName:  bucketName,
		localDir:    localDir,
	}
}

// Upload 保存证据文件，返回可回填到 Evaluation 的对象路径
func (s *EvidenceService) Upload(ctx context.Context, reader io.Reader, fileName string, fileSize int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("evidence/%s/%s%s",
		time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))

	if s.minioClient != nil {
		_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return "", fmt.Errorf("upload evidence: %w", err)
		}
		return fmt.Sprintf("minio://%s/%s", s.bucketName, objectName), nil
	}

	localPath := filepath.Join(s.localDir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create evidence file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, reader); err != nil {
		return "", fmt.Errorf("write evidence file: %w", err)
	}
	return "file://" + localPath, nil
}

// Download 按对象路径取回证据，仅支持 MinIO 存储的对象
func (s *EvidenceService) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if s.minioClient == nil {
		return nil, fmt.Errorf("object storage not configured")
	}
	obj, err := s.minioClient.GetObject(ctx, s.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch evidence: %w", err)
	}
	return obj, nil
}
