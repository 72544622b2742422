package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"leaderboard-payouts/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrPublish marks every failure to archive a report.
var ErrPublish = errors.New("report publish failed")

var contentTypes = map[string]string{
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Publisher archives report files to object storage.
type Publisher struct {
	client storage.Client
	bucket string
	prefix string
	region string
}

// New creates a publisher writing under {bucket}/{prefix}.
func New(client storage.Client, bucket, prefix, region string) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		region: region,
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (p *Publisher) EnsureBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket %s: %w", ErrPublish, p.bucket, err)
	}
	if exists {
		return nil
	}
	if err := p.client.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
		return fmt.Errorf("%w: create bucket %s: %w", ErrPublish, p.bucket, err)
	}
	return nil
}

// ObjectName returns the key a report of this run is stored under.
func (p *Publisher) ObjectName(runID, filePath string) string {
	return path.Join(p.prefix, runID, filepath.Base(filePath))
}

// Publish uploads one report file and returns its object key.
func (p *Publisher) Publish(ctx context.Context, runID, filePath string) (string, error) {
	objectName := p.ObjectName(runID, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return objectName, fmt.Errorf("%w: open %s: %w", ErrPublish, filePath, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return objectName, fmt.Errorf("%w: stat %s: %w", ErrPublish, filePath, err)
	}

	opts := minio.PutObjectOptions{ContentType: contentTypes[strings.ToLower(filepath.Ext(filePath))]}
	if opts.ContentType == "" {
		opts.ContentType = "application/octet-stream"
	}

	if _, err := p.client.PutObject(ctx, p.bucket, objectName, file, info.Size(), opts); err != nil {
		return objectName, fmt.Errorf("%w: upload %s: %w", ErrPublish, objectName, err)
	}
	return objectName, nil
}
