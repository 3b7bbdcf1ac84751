// Package storage holds the BlobStore drivers used for uploaded images.
//
// Two drivers are available:
//   - "local": files under a root directory, served from /storage (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2)
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/airhost/ops/internal/core/ports"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures a driver.
type Config struct {
	Driver string

	// local
	Root    string
	BaseURL string

	// s3
	Bucket    string
	Region    string
	Key       string
	Secret    string
	Endpoint  string
	PublicURL string
}

// New returns the BlobStore for cfg.Driver.
func New(ctx context.Context, cfg Config) (ports.BlobStore, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocal(cfg.Root, cfg.BaseURL), nil
	case DriverS3:
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// objectKey builds a collision-free key such as images/<order>/1700000000_1a2b3c4d.png.
// Only the extension of the client supplied filename survives.
func objectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String()[:8], ext)
	return path.Join(strings.Trim(dir, "/"), name)
}
