package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/airhost/ops/internal/core/ports"
)

// Local stores objects on the local filesystem.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) *Local {
	if root == "" {
		root = "storage"
	}
	if baseURL == "" {
		baseURL = "/storage"
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root is the directory objects are written under.
func (d *Local) Root() string { return d.root }

func (d *Local) Put(ctx context.Context, obj ports.BlobObject) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := objectKey(obj.Dir, obj.Filename)
	full := d.abs(key)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, obj.Body); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	return d.baseURL + "/" + key, nil
}

// Delete removes the object at key. Missing objects are not an error.
func (d *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(d.abs(strings.TrimPrefix(key, d.baseURL+"/")))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

func (d *Local) abs(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(filepath.Clean("/"+key)))
}
