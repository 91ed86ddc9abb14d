package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// Service stores uploaded note attachments and returns the URL under which
// they are served.
type Service interface {
	Put(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, filename string) error
	List(ctx context.Context) ([]ObjectInfo, error)
	Exists(ctx context.Context, filename string) (bool, error)
}
