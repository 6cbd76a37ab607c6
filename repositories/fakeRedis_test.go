package repositories

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// fakeRedis is an in-memory cache.Client. Scan returns every match in a
// single page.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis(keys ...string) *fakeRedis {
	f := &fakeRedis{data: map[string]string{}}
	for _, key := range keys {
		f.data[key] = "{}"
	}
	return f
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Scan(_ context.Context, _ uint64, match string, _ int64) *redis.ScanCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for key := range f.data {
		if ok, _ := path.Match(match, key); ok {
			keys = append(keys, key)
		}
	}
	return redis.NewScanCmdResult(keys, 0, nil)
}

func (f *fakeRedis) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.data))
	for key := range f.data {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
