// Package storage puts recipe images into an object store and returns their public URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"Foodgram/config"
)

// Storage 对象存储
type Storage interface {
	// Put 写入对象并返回可公开访问的 URL
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete 删除对象，对象不存在不算错误
	Delete(ctx context.Context, key string) error
	// KeyOf 从 Put 返回的 URL 还原对象 key；不是本存储的 URL 时 ok 为 false
	KeyOf(url string) (key string, ok bool)
}

// New 按配置选择存储驱动
func New(conf *config.Storage) (Storage, error) {
	switch conf.Driver {
	case config.StorageLocal, "":
		if conf.Local == nil {
			return nil, fmt.Errorf("storage: missing local config")
		}
		return NewLocal(conf.Local), nil
	case config.StorageOSS:
		if conf.Oss == nil {
			return nil, fmt.Errorf("storage: missing oss config")
		}
		return NewOss(conf.Oss), nil
	case config.StorageS3:
		if conf.S3 == nil {
			return nil, fmt.Errorf("storage: missing s3 config")
		}
		return NewS3(context.Background(), conf.S3)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", conf.Driver)
	}
}

type urlPrefix string

func (p urlPrefix) url(key string) string {
	return strings.TrimRight(string(p), "/") + "/" + key
}

func (p urlPrefix) keyOf(url string) (string, bool) {
	prefix := strings.TrimRight(string(p), "/") + "/"
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
