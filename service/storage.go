package service

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/pacahon/slideshare/library/log"
	"github.com/pkg/errors"
)

// ErrNoBucket is returned by Upload when no bucket is configured.
var ErrNoBucket = errors.New("storage bucket is not configured")

type Storage interface {
	Upload(ctx context.Context, rc io.ReadCloser, fileName string) (string, error)
}

type StorageService struct {
	bucket string
}

func NewStorage(bucket string) Storage {
	return &StorageService{bucket: bucket}
}

// Upload copies rc into a publicly readable object and returns its URL.
func (s *StorageService) Upload(ctx context.Context, rc io.ReadCloser, fileName string) (string, error) {
	defer rc.Close()
	if s.bucket == "" {
		return "", ErrNoBucket
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", errors.Wrap(err, "create storage client")
	}
	defer client.Close()

	w := client.Bucket(s.bucket).Object(fileName).NewWriter(ctx)
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}
	w.CacheControl = "no-cache"

	n, err := io.Copy(w, rc)
	if err != nil {
		w.Close()
		return "", errors.Wrapf(err, "write %s", fileName)
	}

	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", fileName)
	}

	log.Infof(ctx, "uploaded %s (%d bytes) to bucket %s", fileName, n, s.bucket)
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, fileName), nil
}
