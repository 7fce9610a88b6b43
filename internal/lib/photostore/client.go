package photostore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"dharma_realty/internal/config"
)

// PresignedURLTTL — время жизни presigned-ссылок на фотографии.
const PresignedURLTTL = 15 * time.Minute

// Client — хранилище фотографий объектов недвижимости.
type Client interface {
	// Upload сохраняет фото и возвращает ключ объекта в бакете.
	Upload(ctx context.Context, propertyID uuid.UUID, fileName, contentType string, r io.Reader, size int64) (string, error)
	// List возвращает ключи всех фото объекта.
	List(ctx context.Context, propertyID uuid.UUID) ([]string, error)
	// DownloadURL возвращает presigned-ссылку на фото.
	DownloadURL(ctx context.Context, key string) (string, error)
	// Delete удаляет фото по ключу.
	Delete(ctx context.Context, key string) error
}

type minioStore struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

// New создаёт MinIO-хранилище фотографий и гарантирует существование бакета.
func New(ctx context.Context, cfg config.MinioConfig, log *slog.Logger) (Client, error) {
	const op = "photostore.New"

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("created photo bucket", slog.String("bucket", cfg.Bucket))
	}

	return &minioStore{client: client, bucket: cfg.Bucket, log: log}, nil
}

func (s *minioStore) Upload(ctx context.Context, propertyID uuid.UUID, fileName, contentType string, r io.Reader, size int64) (string, error) {
	const op = "photostore.minioStore.Upload"

	// UUID-суффикс защищает от перезаписи файлов с одинаковыми именами
	ext := path.Ext(fileName)
	key := fmt.Sprintf("properties/%s/%s%s", propertyID, uuid.New().String()[:8], ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

func (s *minioStore) List(ctx context.Context, propertyID uuid.UUID) ([]string, error) {
	const op = "photostore.minioStore.List"

	prefix := fmt.Sprintf("properties/%s/", propertyID)
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (s *minioStore) DownloadURL(ctx context.Context, key string) (string, error) {
	const op = "photostore.minioStore.DownloadURL"

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, PresignedURLTTL, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return u.String(), nil
}

func (s *minioStore) Delete(ctx context.Context, key string) error {
	const op = "photostore.minioStore.Delete"

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
