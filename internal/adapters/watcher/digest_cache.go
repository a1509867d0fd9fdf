package watcher

import (
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
)

type digest struct {
	sum    uint64
	exists bool
}

// DigestCache remembers the content digest of watched files so that events
// which leave the content untouched, such as a save without edits, are
// dropped.
type DigestCache struct {
	mu      sync.Mutex
	digests map[string]digest
}

// NewDigestCache creates an empty cache.
func NewDigestCache() *DigestCache {
	return &DigestCache{digests: make(map[string]digest)}
}

// Prime records the current digest of each path.
func (c *DigestCache) Prime(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range paths {
		c.digests[p] = fileDigest(p)
	}
}

// Changed returns the paths whose content differs from the recorded digest
// and records the new digests. Unknown paths always count as changed.
func (c *DigestCache) Changed(paths []string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var changed []string
	for _, p := range paths {
		current := fileDigest(p)
		if old, ok := c.digests[p]; !ok || old != current {
			changed = append(changed, p)
		}
		c.digests[p] = current
	}
	return changed
}

func fileDigest(path string) digest {
	f, err := os.Open(path) //nolint:gosec // Path is a watched config file
	if err != nil {
		return digest{}
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return digest{}
	}
	return digest{sum: h.Sum64(), exists: true}
}
