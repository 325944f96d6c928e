package listing

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"theaterwecker/core/storage"
)

// Archive keeps raw listing documents in object storage so markup drift can
// be investigated after the fact. A nil *Archive stores nothing.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewArchive creates an Archive writing to bucket under prefix.
func NewArchive(client storage.Client, bucket, prefix string, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// ObjectKey returns <prefix>/<yyyy>/<mm>/<timestamp>.html.
func (a *Archive) ObjectKey(w Window, at time.Time) string {
	return path.Join(
		a.prefix,
		fmt.Sprintf("%04d", w.Year),
		fmt.Sprintf("%02d", int(w.Month)),
		at.UTC().Format("20060102T150405Z")+".html",
	)
}

// Store uploads body and returns the object key.
func (a *Archive) Store(ctx context.Context, w Window, body []byte, at time.Time) (string, error) {
	if a == nil || a.client == nil {
		return "", nil
	}

	key := a.ObjectKey(w, at)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/html; charset=utf-8"})
	if err != nil {
		return "", fmt.Errorf("failed to archive listing %s: %w", w, err)
	}

	a.logger.Debug("Archived listing window",
		zap.String("window", w.String()),
		zap.String("bucket", a.bucket),
		zap.String("key", key))

	return key, nil
}

// Prune removes archived documents last modified before cutoff and returns
// how many were removed.
func (a *Archive) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	if a == nil || a.client == nil {
		return 0, nil
	}

	prefix := a.prefix
	if prefix != "" {
		prefix += "/"
	}

	// Cancelling stops the listing goroutine when we return early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	removed := 0
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return removed, fmt.Errorf("failed to list archived listings: %w", obj.Err)
		}
		if !obj.LastModified.Before(cutoff) {
			continue
		}
		if err := a.client.RemoveObject(ctx, a.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove archived listing %s: %w", obj.Key, err)
		}
		removed++
	}

	if removed > 0 {
		a.logger.Info("Pruned archived listings",
			zap.Int("removed", removed),
			zap.Time("cutoff", cutoff))
	}
	return removed, nil
}
