package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const localCacheSize = 512

type localEntry struct {
	payload   []byte
	expiresAt time.Time
}

var (
	localOnce sync.Once
	local     *lru.Cache
)

func localTier() *lru.Cache {
	localOnce.Do(func() {
		c, err := lru.New(localCacheSize)
		if err != nil {
			panic(err)
		}
		local = c
	})
	return local
}

func localGet(key string) ([]byte, bool) {
	v, ok := localTier().Get(key)
	if !ok {
		return nil, false
	}
	e := v.(localEntry)
	if time.Now().After(e.expiresAt) {
		localTier().Remove(key)
		return nil, false
	}
	return e.payload, true
}

func localSet(key string, payload []byte, ttl time.Duration) {
	localTier().Add(key, localEntry{payload: payload, expiresAt: time.Now().Add(ttl)})
}

func localDel(key string) {
	localTier().Remove(key)
}

// ResetLocal drops every entry of the in-process tier.
func ResetLocal() {
	localTier().Purge()
}
