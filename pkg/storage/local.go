package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"Foodgram/config"
)

// Local 本地磁盘存储，文件由 HTTP 服务以 BaseURL 为前缀静态暴露
type Local struct {
	root   string
	prefix urlPrefix
}

func NewLocal(conf *config.LocalConfig) *Local {
	root := conf.Root
	if root == "" {
		root = "media"
	}
	base := conf.BaseURL
	if base == "" {
		base = "/media"
	}
	return &Local{root: root, prefix: urlPrefix(base)}
}

func (l *Local) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	path, err := l.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, io.LimitReader(r, size)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return l.prefix.url(key), nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	path, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) KeyOf(url string) (string, bool) {
	return l.prefix.keyOf(url)
}

// Root 本地文件根目录
func (l *Local) Root() string {
	return l.root
}

// BaseURL 对外访问前缀
func (l *Local) BaseURL() string {
	return string(l.prefix)
}

func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}
