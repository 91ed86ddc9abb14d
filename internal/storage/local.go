package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalService stores uploads on the local filesystem and serves them under
// the /uploads/ URL prefix.
type LocalService struct {
	root string
}

func NewLocalService(root string) (*LocalService, error) {
	if root == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalService{root: filepath.Clean(root)}, nil
}

// path resolves filename inside the root, rejecting traversal attempts.
func (s *LocalService) path(filename string) (string, error) {
	base := filepath.Base(filename)
	if base == "" || base == "." || base == ".." {
		return "", fmt.Errorf("invalid filename")
	}
	return filepath.Join(s.root, base), nil
}

func (s *LocalService) Put(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	path, err := s.path(filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return "/uploads/" + filepath.Base(path), nil
}

func (s *LocalService) Delete(_ context.Context, filename string) error {
	path, err := s.path(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return os.ErrNotExist
		}
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

func (s *LocalService) Exists(_ context.Context, filename string) (bool, error) {
	path, err := s.path(filename)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat upload file: %w", err)
	}
	return true, nil
}

func (s *LocalService) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	var objects []ObjectInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mod := info.ModTime()
		objects = append(objects, ObjectInfo{
			Key:          entry.Name(),
			Size:         info.Size(),
			LastModified: &mod,
		})
	}
	return objects, nil
}

// Root returns the directory backing this service, for static file serving.
func (s *LocalService) Root() string {
	return s.root
}

var _ Service = (*LocalService)(nil)
