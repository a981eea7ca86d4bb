package config

const (
	StorageLocal = "local"
	StorageOSS   = "oss"
	StorageS3    = "s3"
)

// Storage selects where recipe images are written.
type Storage struct {
	Driver string       `json:"driver" yaml:"driver"`
	Local  *LocalConfig `json:"local" yaml:"local"`
	Oss    *OssConfig   `json:"oss" yaml:"oss"`
	S3     *S3Config    `json:"s3" yaml:"s3"`
}

type LocalConfig struct {
	Root    string `json:"root" yaml:"root"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
	PublicURL       string `json:"public_url" yaml:"public_url"`
}

type S3Config struct {
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	PublicURL string `json:"public_url" yaml:"public_url"`
}

func ProvideStorageConfig(cfg *Config) *Storage {
	return cfg.Storage
}
