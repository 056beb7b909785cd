package github

import (
	"sync"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/git"
)

// apiCache provides in-memory caching for GitHub API responses.
// All fields are protected by a read-write mutex for concurrent safety.
// Caches have a single-run lifetime (not persisted).
type apiCache struct {
	mu sync.RWMutex

	head          *git.Commit
	defaultBranch string
	tags          []git.Tag
	tagsFetched   bool
	commitCount   *int64

	// "base...head" → comparison result.
	comparisons map[string]comparison
}

// comparison is the reduced result of a compare API call.
type comparison struct {
	status  string
	aheadBy int64
}

func newCache() *apiCache {
	return &apiCache{
		comparisons: make(map[string]comparison),
	}
}

// Head cache.

func (c *apiCache) getHead() (git.Commit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.head == nil {
		return git.Commit{}, false
	}
	return *c.head, true
}

func (c *apiCache) putHead(commit git.Commit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head = &commit
}

// Default branch cache.

func (c *apiCache) getDefaultBranch() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultBranch, c.defaultBranch != ""
}

func (c *apiCache) putDefaultBranch(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultBranch = name
}

// Tags cache.

func (c *apiCache) getTags() ([]git.Tag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags, c.tagsFetched
}

func (c *apiCache) putTags(tags []git.Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = tags
	c.tagsFetched = true
}

// Commit count cache.

func (c *apiCache) getCommitCount() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.commitCount == nil {
		return 0, false
	}
	return *c.commitCount, true
}

func (c *apiCache) putCommitCount(n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commitCount = &n
}

// Comparison cache.

func (c *apiCache) getComparison(base, head string) (comparison, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cmp, ok := c.comparisons[comparisonKey(base, head)]
	return cmp, ok
}

func (c *apiCache) putComparison(base, head string, cmp comparison) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.comparisons[comparisonKey(base, head)] = cmp
}

// comparisonKey is order-sensitive: base...head differs from head...base.
func comparisonKey(base, head string) string {
	return base + "..." + head
}
