package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App           *App           `json:"app" yaml:"app"`
	Server        *Server        `json:"server" yaml:"server"`
	Database      *Database      `json:"database" yaml:"database"`
	Redis         *Redis         `json:"redis" yaml:"redis"`
	Jwt           *Jwt           `json:"jwt" yaml:"jwt"`
	Storage       *Storage       `json:"storage" yaml:"storage"`
	Recipe        *Recipe        `json:"recipe" yaml:"recipe"`
	RelationCache *RelationCache `json:"relation_cache" yaml:"relation_cache"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}
	return conf
}

// Parse decodes YAML content and fills in defaults for omitted sections.
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.withDefaults()
	return &conf, nil
}

func (c *Config) withDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8000
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMySQL
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpiresIn == 0 {
		c.Jwt.ExpiresIn = 7 * 24 * 3600
	}
	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageLocal
	}
	if c.Storage.Driver == StorageLocal && c.Storage.Local == nil {
		c.Storage.Local = &LocalConfig{Root: "media", BaseURL: "/media"}
	}
	if c.Recipe == nil {
		c.Recipe = &Recipe{}
	}
	c.Recipe.withDefaults()
	if c.RelationCache == nil {
		c.RelationCache = &RelationCache{}
	}
	if c.RelationCache.TTLSeconds == 0 {
		c.RelationCache.TTLSeconds = 300
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
