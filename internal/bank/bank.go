// Package bank is the static fallback question catalog: pre-authored,
// structurally valid items that are always available. It is the
// correctness oracle of last resort for every other question source.
package bank

import (
	"math/rand"
	"sync"
	"time"

	"clarion/internal/domain"
)

// Catalog is an immutable set of pre-authored questions partitioned by
// category, with a random-sample accessor.
type Catalog struct {
	mu      sync.Mutex
	rng     *rand.Rand
	byCat   map[domain.Category][]domain.Question
	ordered []domain.Question
}

// Default returns the baked-in catalog with a time-seeded sampler.
func Default() *Catalog {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// New builds the catalog around the given random source. Tests pass a
// seeded source for determinism.
func New(rng *rand.Rand) *Catalog {
	c := &Catalog{
		rng:   rng,
		byCat: make(map[domain.Category][]domain.Question),
	}
	for _, q := range catalogData {
		q.Source = domain.SourceBank
		c.byCat[q.Category] = append(c.byCat[q.Category], q)
		c.ordered = append(c.ordered, q)
	}
	return c
}

// Size returns the number of items available for the given categories
// (all items when categories is empty).
func (c *Catalog) Size(categories []domain.Category) int {
	return len(c.union(categories))
}

// Sample returns up to count valid questions drawn from the union of
// the requested categories, randomly ordered, without repetition until
// the union is exhausted, after which items may repeat. It never fails;
// it returns fewer than count only if the whole catalog holds fewer.
func (c *Catalog) Sample(categories []domain.Category, count int) []domain.Question {
	if count <= 0 {
		return nil
	}

	pool := c.union(categories)
	if len(pool) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Question, 0, count)
	for len(out) < count {
		idx := c.rng.Perm(len(pool))
		for _, i := range idx {
			out = append(out, pool[i])
			if len(out) == count {
				break
			}
		}
	}
	return out
}

// union gathers the items for the requested categories, falling back to
// the full catalog when no known category is requested.
func (c *Catalog) union(categories []domain.Category) []domain.Question {
	var pool []domain.Question
	for _, cat := range categories {
		pool = append(pool, c.byCat[cat]...)
	}
	if len(pool) == 0 {
		pool = c.ordered
	}
	return pool
}
