package redis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomform/config"
	"roomform/infras/redis"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "cache.internal"
	cfg.Cache.Redis.Primary.Port = "6380"
	cfg.Cache.Redis.Primary.Password = "secret"
	cfg.Cache.Redis.Primary.DB = 2

	opts := redis.Options(cfg)

	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestNew_DisabledLimiterDoesNotDial(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Redis.Primary.Host = "127.0.0.1"
	cfg.Cache.Redis.Primary.Port = "1"

	client := redis.New(cfg)
	defer client.Close()

	assert.Equal(t, "127.0.0.1:1", client.Options().Addr)
}
