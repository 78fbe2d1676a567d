// Package cache keeps short-lived copies of external lookups on disk so that
// repeated check-ins do not hit the weather service every time.
// Session state (records and plans) is never written here.
package cache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Cache is a TTL key/value cache. Misses and errors are indistinguishable to
// callers; both fall through to the network.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool) { return nil, false }
func (Nop) Put(string, []byte)        {}

// Disk is a diskv-backed Cache.
type Disk struct {
	d   *diskv.Diskv
	ttl time.Duration
	now func() time.Time
	log io.Writer
}

type envelope struct {
	Stored time.Time       `json:"stored"`
	Value  json.RawMessage `json:"value"`
}

// Open returns a Disk cache rooted at path, or Nop when path is empty.
func Open(path string, ttl time.Duration) Cache {
	if path == "" || ttl <= 0 {
		return Nop{}
	}
	return NewDisk(path, ttl)
}

// NewDisk creates a Disk cache rooted at path.
func NewDisk(path string, ttl time.Duration) *Disk {
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:     path,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		ttl: ttl,
		now: time.Now,
		log: os.Stderr,
	}
}

// Get returns a value stored less than ttl ago.
func (c *Disk) Get(key string) ([]byte, bool) {
	k := toKey(key)
	if !c.d.Has(k) {
		return nil, false
	}
	raw, err := c.d.Read(k)
	if err != nil {
		fmt.Fprintf(c.log, "cache: read %s: %v\n", key, err)
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		_ = c.d.Erase(k)
		return nil, false
	}
	if c.now().Sub(env.Stored) >= c.ttl {
		_ = c.d.Erase(k)
		return nil, false
	}
	return env.Value, true
}

// Put stores value, which must be valid JSON.
func (c *Disk) Put(key string, value []byte) {
	raw, err := json.Marshal(envelope{Stored: c.now(), Value: value})
	if err != nil {
		fmt.Fprintf(c.log, "cache: encode %s: %v\n", key, err)
		return
	}
	if err := c.d.Write(toKey(key), raw); err != nil {
		fmt.Fprintf(c.log, "cache: write %s: %v\n", key, err)
	}
}

// toKey makes a key safe to use as a file name.
func toKey(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}
