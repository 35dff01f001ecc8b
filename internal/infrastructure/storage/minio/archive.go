package minio

import (
	"bytes"
	"context"
	"path"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/pkg/errors"
)

var (
	ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "object not found")
	ErrInvalidRequest = errors.New(errors.ErrCodeValidation, "invalid request")
)

const jsonContentType = "application/json"

// Archive stores one JSON document per extraction run.
type Archive interface {
	Put(ctx context.Context, runID string, at time.Time, data []byte) (*UploadResult, error)
	Exists(ctx context.Context, objectKey string) (bool, error)
	List(ctx context.Context, day time.Time) ([]ObjectMetadata, error)
	Delete(ctx context.Context, objectKey string) error
}

// UploadResult describes a stored run.
type UploadResult struct {
	Bucket     string
	ObjectKey  string
	ETag       string
	Size       int64
	UploadedAt time.Time
}

// ObjectMetadata describes a listed object.
type ObjectMetadata struct {
	ObjectKey    string
	Size         int64
	ETag         string
	LastModified time.Time
}

type extractionArchive struct {
	client *MinIOClient
	logger logging.Logger
}

// NewExtractionArchive returns an Archive over client's bucket.
func NewExtractionArchive(client *MinIOClient, log logging.Logger) Archive {
	return &extractionArchive{client: client, logger: log}
}

// ObjectKey returns "{prefix}/{yyyy}/{mm}/{dd}/{runID}.json" for the UTC day
// of at.
func ObjectKey(prefix, runID string, at time.Time) string {
	return path.Join(prefix, at.UTC().Format("2006/01/02"), runID+".json")
}

func (a *extractionArchive) Put(ctx context.Context, runID string, at time.Time, data []byte) (*UploadResult, error) {
	if a.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	if runID == "" || len(data) == 0 {
		return nil, ErrInvalidRequest
	}

	key := ObjectKey(a.client.config.Prefix, runID, at)
	opts := minio.PutObjectOptions{
		ContentType:  jsonContentType,
		UserMetadata: map[string]string{"run-id": runID},
	}

	info, err := a.client.GetClient().PutObject(ctx, a.client.Bucket(), key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "upload failed")
	}

	a.logger.Info("Extraction archived",
		logging.String("bucket", a.client.Bucket()),
		logging.String("key", key),
		logging.Int64("size", info.Size))

	return &UploadResult{
		Bucket:     a.client.Bucket(),
		ObjectKey:  key,
		ETag:       info.ETag,
		Size:       info.Size,
		UploadedAt: time.Now(),
	}, nil
}

func (a *extractionArchive) Exists(ctx context.Context, objectKey string) (bool, error) {
	_, err := a.client.GetClient().StatObject(ctx, a.client.Bucket(), objectKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrCodeStorageError, "stat failed")
	}
	return true, nil
}

// List returns the runs archived on the UTC day of day.
func (a *extractionArchive) List(ctx context.Context, day time.Time) ([]ObjectMetadata, error) {
	prefix := path.Join(a.client.config.Prefix, day.UTC().Format("2006/01/02")) + "/"
	ch := a.client.GetClient().ListObjects(ctx, a.client.Bucket(), minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var out []ObjectMetadata
	for obj := range ch {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeStorageError, "list failed")
		}
		out = append(out, ObjectMetadata{
			ObjectKey:    obj.Key,
			Size:         obj.Size,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
		})
	}
	return out, nil
}

func (a *extractionArchive) Delete(ctx context.Context, objectKey string) error {
	if err := a.client.GetClient().RemoveObject(ctx, a.client.Bucket(), objectKey, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "delete failed")
	}
	return nil
}

//Personal.AI order the ending
