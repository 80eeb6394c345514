package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/entity"
)

// AttachmentService stores attachment bytes in the object store. Objects
// are keyed by (table, refID); the caller persists only the returned
// reference on the document header.
type AttachmentService struct {
	minioClient *minio.Client
	bucket      string
	publicBase  string
}

func NewAttachmentService(minioClient *minio.Client, bucket, publicBase string) *AttachmentService {
	return &AttachmentService{
		minioClient: minioClient,
		bucket:      bucket,
		publicBase:  publicBase,
	}
}

// Upload streams one file into the store and returns its reference.
func (s *AttachmentService) Upload(ctx context.Context, table, refID, filename, description string, reader io.Reader, size int64, contentType string) (*entity.Attachment, error) {
	if s.minioClient == nil {
		return nil, fmt.Errorf("attachment storage not configured")
	}
	if filename == "" {
		return nil, validationErr("filename")
	}

	objectName := fmt.Sprintf("%s/%s/%d_%s%s",
		table, refID, time.Now().Unix(), uuid.New().String()[:8], filepath.Ext(filename))

	_, err := s.minioClient.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	return &entity.Attachment{
		Name:        filename,
		Description: description,
		URL:         fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectName),
	}, nil
}
