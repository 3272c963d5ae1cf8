package draws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"megasena-monitor/core/reconcile"
	"megasena-monitor/core/storage"

	"github.com/minio/minio-go/v7"
)

// ArchivePrefix is the folder holding one JSON document per draw.
const ArchivePrefix = "draws/"

// ArchiveStore keeps confirmed draws as JSON objects in a bucket.
type ArchiveStore struct {
	client storage.Client
	bucket string
}

// NewArchiveStore creates an archive store in bucket.
func NewArchiveStore(client storage.Client, bucket string) *ArchiveStore {
	return &ArchiveStore{client: client, bucket: bucket}
}

// ObjectName returns the object key for a draw.
func ObjectName(number int) string {
	return fmt.Sprintf("%s%06d.json", ArchivePrefix, number)
}

// Get reads an archived draw, or returns reconcile.ErrDrawNotStored.
func (s *ArchiveStore) Get(ctx context.Context, number int) (*reconcile.DrawResult, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ObjectName(number), minio.GetObjectOptions{})
	if err != nil {
		return nil, archiveErr(number, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, archiveErr(number, err)
	}

	var result reconcile.DrawResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode archived draw %d: %w", number, err)
	}
	return &result, nil
}

// Save writes a draw document. Draws are immutable, so rewriting one is harmless.
func (s *ArchiveStore) Save(ctx context.Context, draw *reconcile.DrawResult) error {
	data, err := json.Marshal(draw)
	if err != nil {
		return fmt.Errorf("failed to encode draw %d: %w", draw.Number, err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, ObjectName(draw.Number), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to archive draw %d: %w", draw.Number, err)
	}
	return nil
}

// List returns the archived draw numbers.
func (s *ArchiveStore) List(ctx context.Context) ([]int, error) {
	var numbers []int
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: ArchivePrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archived draws: %w", obj.Err)
		}
		var n int
		if _, err := fmt.Sscanf(obj.Key, ArchivePrefix+"%d.json", &n); err == nil && n > 0 {
			numbers = append(numbers, n)
		}
	}
	return reconcile.Distinct(numbers), nil
}

func archiveErr(number int, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return reconcile.ErrDrawNotStored
	}
	return fmt.Errorf("failed to read archived draw %d: %w", number, err)
}
