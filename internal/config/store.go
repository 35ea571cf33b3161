package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/dfakit/pkg/adapters/file"
	"github.com/aretw0/dfakit/pkg/adapters/memory"
	"github.com/aretw0/dfakit/pkg/adapters/redis"
	"github.com/aretw0/dfakit/pkg/ports"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// OpenStore builds the configured automaton store.
// The returned close function releases backend connections and is never nil.
func (c *Config) OpenStore() (ports.AutomatonStore, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(c.Store.Backend) {
	case BackendMemory:
		return memory.NewStore(), noop, nil
	case BackendFile:
		return file.New(c.Store.Dir), noop, nil
	case BackendRedis:
		var opts []redis.Option
		if c.Store.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(c.Store.Redis.Prefix))
		}
		if c.Store.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(c.Store.Redis.TTL))
		}
		s := redis.New(c.Store.Redis.Addr, c.Store.Redis.Password, c.Store.Redis.DB, opts...)
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Store.Backend)
	}
}
