package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"Foodgram/config"
	"Foodgram/pkg/errs"
	"Foodgram/pkg/log"
	"Foodgram/pkg/snowflake"
	"Foodgram/pkg/storage"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

var allowedImageFormats = map[string]string{
	"jpeg": "jpg",
	"png":  "png",
	"gif":  "gif",
	"webp": "webp",
}

// DecodedImage 已校验的图片内容
type DecodedImage struct {
	Data   []byte
	Format string
	Ext    string
	Width  int
	Height int
}

func (d *DecodedImage) ContentType() string {
	return "image/" + d.Format
}

var _ IImageService = (*ImageService)(nil)

type IImageService interface {
	// Decode 解析 data:image/<ext>;base64,<payload>，不写入任何存储
	Decode(dataURI string) (*DecodedImage, error)
	// Store 写入对象存储并返回 URL
	Store(ctx context.Context, img *DecodedImage) (string, error)
	// Remove 尽力删除，失败只记录日志
	Remove(ctx context.Context, url string)
}

type ImageService struct {
	Config  *config.Recipe
	Storage storage.Storage
}

func (s *ImageService) Decode(dataURI string) (*DecodedImage, error) {
	header, payload, ok := strings.Cut(dataURI, ";base64,")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return nil, errs.Validation("image", "expected a base64 data URI")
	}

	limit := s.Config.MaxImageBytes
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > limit+2 {
		return nil, errs.Validation("image", "image exceeds %d bytes", limit)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errs.Validation("image", "invalid base64 payload").Wrap(err)
	}
	if int64(len(data)) > limit {
		return nil, errs.Validation("image", "image exceeds %d bytes", limit)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Validation("image", "undecodable image").Wrap(err)
	}
	ext, ok := allowedImageFormats[format]
	if !ok {
		return nil, errs.Validation("image", "unsupported image format %q", format)
	}

	return &DecodedImage{
		Data:   data,
		Format: format,
		Ext:    ext,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func (s *ImageService) Store(ctx context.Context, img *DecodedImage) (string, error) {
	key := fmt.Sprintf("recipes/%s/%d.%s",
		time.Now().Format("2006/01/02"),
		snowflake.GenID(),
		img.Ext,
	)
	url, err := s.Storage.Put(ctx, key, bytes.NewReader(img.Data), int64(len(img.Data)), img.ContentType())
	if err != nil {
		return "", fmt.Errorf("store image %s: %w", key, err)
	}
	log.L.Debug("image stored",
		zap.String("key", key),
		zap.String("format", img.Format),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("bytes", len(img.Data)),
	)
	return url, nil
}

func (s *ImageService) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key, ok := s.Storage.KeyOf(url)
	if !ok {
		return
	}
	if err := s.Storage.Delete(ctx, key); err != nil {
		log.L.Warn("delete image failed", zap.String("key", key), zap.Error(err))
	}
}
