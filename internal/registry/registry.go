// Package registry holds built corpora in memory. A corpus id binds exactly
// once: trees are immutable after construction, so readers run concurrently
// under the read lock with no further coordination.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wenjia-h/corpustree/internal/tree"
)

// Corpus is one built tree plus its provenance.
type Corpus struct {
	ID        string
	Name      string
	Filename  string
	Tree      *tree.Tree
	Summary   tree.Summary
	CreatedAt time.Time
}

// Registry is a thread-safe corpus store with write-once semantics per id
// and optional TTL eviction.
type Registry struct {
	mu      sync.RWMutex
	corpora map[string]*Corpus
	ttl     time.Duration
}

// New creates a registry. A non-positive ttl disables eviction.
func New(ttl time.Duration) *Registry {
	return &Registry{
		corpora: make(map[string]*Corpus),
		ttl:     ttl,
	}
}

// Put binds a corpus to its id. Rebinding an id fails: the tree is built once
// per conversion run and never replaced underneath readers.
func (r *Registry) Put(c *Corpus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.corpora[c.ID]; exists {
		return fmt.Errorf("corpus %q already built", c.ID)
	}
	r.corpora[c.ID] = c
	return nil
}

// Get returns the corpus for id.
func (r *Registry) Get(id string) (*Corpus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.corpora[id]
	return c, ok
}

// List returns all corpora, oldest first.
func (r *Registry) List() []*Corpus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Corpus, 0, len(r.corpora))
	for _, c := range r.corpora {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Cleanup removes corpora older than the TTL.
func (r *Registry) Cleanup() {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, c := range r.corpora {
		if now.Sub(c.CreatedAt) > r.ttl {
			delete(r.corpora, id)
		}
	}
}
