package config

import "time"

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

// RelationCache controls the favorite/cart/follow membership sets kept in Redis.
type RelationCache struct {
	TTLSeconds int64 `json:"ttl_seconds" yaml:"ttl_seconds"`
}

func (r *RelationCache) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}
