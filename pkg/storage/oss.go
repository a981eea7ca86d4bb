package storage

import (
	"context"
	"fmt"
	"io"

	"Foodgram/config"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// Oss 阿里云 OSS 存储
type Oss struct {
	client *oss.Client
	bucket string
	prefix urlPrefix
}

func NewOss(conf *config.OssConfig) *Oss {
	var provider credentials.CredentialsProvider
	if conf.AccessKeyID != "" {
		provider = credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret)
	} else {
		provider = credentials.NewEnvironmentVariableCredentialsProvider()
	}
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(provider).
		WithEndpoint(conf.Endpoint).
		WithRegion(conf.Region)

	public := conf.PublicURL
	if public == "" {
		public = fmt.Sprintf("https://%s.%s", conf.Bucket, conf.Endpoint)
	}
	return &Oss{
		client: oss.NewClient(cfg),
		bucket: conf.Bucket,
		prefix: urlPrefix(public),
	}
}

func (o *Oss) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := o.client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket:        oss.Ptr(o.bucket),
		Key:           oss.Ptr(key),
		Body:          io.LimitReader(r, size),
		ContentLength: oss.Ptr(size),
		ContentType:   oss.Ptr(contentType),
	})
	if err != nil {
		return "", err
	}
	return o.prefix.url(key), nil
}

func (o *Oss) Delete(ctx context.Context, key string) error {
	_, err := o.client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(o.bucket),
		Key:    oss.Ptr(key),
	})
	return err
}

func (o *Oss) KeyOf(url string) (string, bool) {
	return o.prefix.keyOf(url)
}
