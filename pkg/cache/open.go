package cache

import (
	"context"

	"github.com/matzehuels/carousel/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend  string // file (default), redis or none
	Dir      string // FileCache directory
	RedisURL string
	Prefix   string // Redis key prefix
}

// Open builds the cache described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache requires a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create cache dir %s", opts.Dir)
		}
		return c, nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache requires redis_url")
		}
		c, err := NewRedisCache(ctx, opts.RedisURL, opts.Prefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to redis")
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown cache backend %q", opts.Backend)
	}
}
